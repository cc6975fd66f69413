// Package onepole provides a clamped single-pole exponential low-pass filter.
//
// Each output is the previous output moved a fraction beta towards the
// current input:
//
//	y[n] = clamp(y[n-1] - beta*(y[n-1] - x[n]), lo, hi)
//
// with y[-1] = 0 and [lo, hi] = [-1, 1] by default. The recurrence is causal,
// holds one scalar of state, and is applied strictly in sample order.
// Beta is not validated: values outside (0, 1) are accepted and may make the
// output oscillate or saturate at the limits.
//
// A Filter is not safe for concurrent use.
package onepole

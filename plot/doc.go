// Package plot renders an input signal and its filtered counterpart as a
// titled two-panel PNG chart.
//
// Each panel is drawn by go-chart with its own caption, gridlines, tick
// labels and legend, then composited below a title banner on a single
// canvas. Values outside the configured y range are clipped for display
// only; the signals themselves are never modified.
package plot

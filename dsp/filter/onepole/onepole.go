package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// DefaultBeta is the smoothing coefficient of the reference pipeline.
const DefaultBeta = 0.3

// Option mutates constructor configuration.
type Option func(*config)

type config struct {
	lo, hi  float64
	initial float64
}

func defaultConfig() config {
	return config{lo: -1, hi: 1}
}

// WithLimits sets the closed output range. Inverted or empty ranges are ignored.
func WithLimits(lo, hi float64) Option {
	return func(cfg *config) {
		if lo < hi {
			cfg.lo = lo
			cfg.hi = hi
		}
	}
}

// WithInitialState sets the state the filter starts from and returns to on Reset.
func WithInitialState(y0 float64) Option {
	return func(cfg *config) {
		cfg.initial = y0
	}
}

// Filter is a stateful single-pole smoothing filter.
type Filter struct {
	beta  float64
	cfg   config
	state float64
}

// New creates a filter with smoothing coefficient beta.
func New(beta float64, opts ...Option) *Filter {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Filter{
		beta:  beta,
		cfg:   cfg,
		state: cfg.initial,
	}
}

// Beta returns the smoothing coefficient.
func (f *Filter) Beta() float64 { return f.beta }

// Limits returns the output range.
func (f *Filter) Limits() (lo, hi float64) { return f.cfg.lo, f.cfg.hi }

// State returns the last output value.
func (f *Filter) State() float64 { return f.state }

// Reset restores the initial state.
func (f *Filter) Reset() { f.state = f.cfg.initial }

// ProcessSample filters one input sample and returns the new output.
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.state - f.beta*(f.state-x)
	y = core.Clamp(y, f.cfg.lo, f.cfg.hi)
	f.state = y
	return y
}

// ProcessBlock filters in into a new slice. State carries over between calls.
func (f *Filter) ProcessBlock(in []float64) []float64 {
	return f.ProcessBlockInto(nil, in)
}

// ProcessBlockInto filters in into dst, reusing dst's capacity when possible,
// and returns the resized dst.
func (f *Filter) ProcessBlockInto(dst, in []float64) []float64 {
	dst = core.EnsureLen(dst, len(in))
	for i, x := range in {
		dst[i] = f.ProcessSample(x)
	}
	return dst
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Apply filters in with a freshly initialized filter. The result depends only
// on in and beta.
func Apply(in []float64, beta float64, opts ...Option) []float64 {
	return New(beta, opts...).ProcessBlock(in)
}

// CutoffHz returns the -3 dB corner frequency of the RC low-pass that beta
// discretizes at sampleRate: fc = -fs*ln(1-beta)/(2*pi).
func CutoffHz(beta, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("onepole: sample rate must be > 0: %f", sampleRate)
	}
	if !(beta > 0 && beta < 1) {
		return 0, fmt.Errorf("onepole: beta must be in (0, 1) for a cutoff: %f", beta)
	}
	return -sampleRate * math.Log1p(-beta) / (2 * math.Pi), nil
}

// BetaForCutoff is the inverse of CutoffHz: beta = 1 - exp(-2*pi*fc/fs).
func BetaForCutoff(cutoffHz, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("onepole: sample rate must be > 0: %f", sampleRate)
	}
	if cutoffHz <= 0 {
		return 0, fmt.Errorf("onepole: cutoff must be > 0: %f", cutoffHz)
	}
	return -math.Expm1(-2 * math.Pi * cutoffHz / sampleRate), nil
}

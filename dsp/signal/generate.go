package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-lowpass/dsp/core"
)

// Generator creates deterministic test signals from a seeded random source.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg       core.ProcessorConfig
	seed      int64
	amplitude float64
	rng       *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithAmplitude sets the peak amplitude of random samples. Negative values are ignored.
func WithAmplitude(amplitude float64) Option {
	return func(g *Generator) {
		if amplitude >= 0 {
			g.amplitude = amplitude
		}
	}
}

// NewGenerator creates a generator with seed 1 and unit amplitude.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:       core.ApplyProcessorOptions(coreOpts...),
		seed:      1,
		amplitude: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the seed the random source was last initialized with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed re-initializes the random source.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// unitSteps is the resolution of the closed unit interval used by Sample.
const unitSteps = 1 << 53

// Sample draws one value uniformly from the closed interval
// [-amplitude, amplitude] and advances the random source. The result is kept
// inside the configured output range.
func (g *Generator) Sample() float64 {
	v := scaleClosed(g.rng.Int63n(unitSteps+1), g.amplitude)
	return core.Clamp(v, g.cfg.MinValue, g.cfg.MaxValue)
}

// scaleClosed maps k in [0, unitSteps] onto [-amplitude, amplitude], both ends included.
func scaleClosed(k int64, amplitude float64) float64 {
	return (float64(k)/unitSteps*2 - 1) * amplitude
}

// UniformNoise fills a new buffer of the given length with consecutive Sample values.
func (g *Generator) UniformNoise(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = g.Sample()
	}
	return out, nil
}

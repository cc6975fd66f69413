package core

// ProcessorConfig defines common settings shared by generators and filters.
type ProcessorConfig struct {
	SampleRate float64
	// MinValue and MaxValue bound every sample a processor emits.
	MinValue float64
	MaxValue float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the normalized full-scale range [-1, 1] at 48 kHz.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		MinValue:   -1,
		MaxValue:   1,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithRange sets the closed output range. Empty or inverted ranges are ignored.
func WithRange(lo, hi float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if lo < hi {
			cfg.MinValue = lo
			cfg.MaxValue = hi
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Package pipeline wires the generate, filter and plot stages of the
// lowpass-plot command.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/filter/onepole"
	"github.com/cwbudde/algo-lowpass/dsp/signal"
	"github.com/cwbudde/algo-lowpass/dsp/spectrum"
	"github.com/cwbudde/algo-lowpass/internal/fileout"
	"github.com/cwbudde/algo-lowpass/internal/wavio"
	"github.com/cwbudde/algo-lowpass/plot"
	timestats "github.com/cwbudde/algo-lowpass/stats/time"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Config holds every tunable of a run.
type Config struct {
	Samples   int
	Beta      float64
	Seed      int64
	Amplitude float64

	Plot          plot.Config
	InputCaption  string
	OutputCaption string
	Output        string

	// WAVOutput, when set, also writes input (left) and output (right) as audio.
	WAVOutput  string
	SampleRate int

	// Analyze adds spectral attenuation of the upper half band to the report.
	Analyze bool
}

// DefaultConfig returns 100 samples, beta 0.3 and a 1920x1080 chart.
func DefaultConfig() Config {
	return Config{
		Samples:       100,
		Beta:          onepole.DefaultBeta,
		Seed:          1,
		Amplitude:     1,
		Plot:          plot.DefaultConfig(),
		InputCaption:  "Raw Signal",
		OutputCaption: "Lowpass Filtered Signal",
		Output:        "lowpass_filter.png",
		SampleRate:    48000,
	}
}

// Validate checks parameters before any work or file output happens.
func (c Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("pipeline: samples must be > 0: %d", c.Samples)
	}
	if c.Amplitude < 0 {
		return fmt.Errorf("pipeline: amplitude must be >= 0: %f", c.Amplitude)
	}
	if c.Output == "" {
		return fmt.Errorf("pipeline: output path must not be empty")
	}
	if c.WAVOutput != "" && c.WAVOutput == c.Output {
		return fmt.Errorf("pipeline: image and wav output share a path: %s", c.Output)
	}
	if (c.WAVOutput != "" || c.Analyze) && c.SampleRate <= 0 {
		return fmt.Errorf("pipeline: sample rate must be > 0: %d", c.SampleRate)
	}
	return c.Plot.Validate()
}

// Report summarizes a completed run.
type Report struct {
	Input  []float64
	Output []float64

	ImagePath string
	WAVPath   string

	InputStats  timestats.Stats
	OutputStats timestats.Stats

	// CutoffHz is zero when beta has no equivalent RC corner.
	CutoffHz float64
	// HighBandAttenuationDB is set when Config.Analyze is true and the
	// signal is long enough to resolve the upper half band; NaN otherwise.
	HighBandAttenuationDB float64
}

// Generate draws cfg.Samples uniform samples from a generator seeded with cfg.Seed.
func Generate(cfg Config) ([]float64, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(cfg.SampleRate))},
		signal.WithSeed(cfg.Seed),
		signal.WithAmplitude(cfg.Amplitude),
	)
	return g.UniformNoise(cfg.Samples)
}

// Run generates the input, filters it, renders the chart and writes the
// optional WAV file. Every output is fully produced before any of them is
// moved into place, so a failed run leaves existing files untouched.
func Run(cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	in, err := Generate(cfg)
	if err != nil {
		return Report{}, err
	}
	out := onepole.Apply(in, cfg.Beta)

	rep := Report{
		Input:                 in,
		Output:                out,
		InputStats:            timestats.Calculate(in),
		OutputStats:           timestats.Calculate(out),
		HighBandAttenuationDB: math.NaN(),
	}
	if fc, err := onepole.CutoffHz(cfg.Beta, float64(cfg.SampleRate)); err == nil {
		rep.CutoffHz = fc
	}

	if cfg.Analyze {
		db, err := highBandAttenuation(in, out, cfg.SampleRate)
		if err != nil {
			return Report{}, err
		}
		rep.HighBandAttenuationDB = db
	}

	var img bytes.Buffer
	upper := plot.Panel{Caption: cfg.InputCaption, Signal: in, Color: chart.ColorRed}
	lower := plot.Panel{Caption: cfg.OutputCaption, Signal: out, Color: chart.ColorBlue}
	if err := plot.Render(&img, cfg.Plot, upper, lower); err != nil {
		return Report{}, err
	}

	var staged []*fileout.Staged
	discard := func() {
		for _, s := range staged {
			s.Discard()
		}
	}

	if cfg.WAVOutput != "" {
		s, err := wavio.StageStereo(cfg.WAVOutput, in, out, cfg.SampleRate)
		if err != nil {
			return Report{}, err
		}
		staged = append(staged, s)
	}

	s, err := fileout.Stage(cfg.Output, func(f *os.File) error {
		_, err := f.Write(img.Bytes())
		return err
	})
	if err != nil {
		discard()
		return Report{}, fmt.Errorf("plot: write %s: %w", cfg.Output, err)
	}
	staged = append(staged, s)

	for i, st := range staged {
		if err := st.Commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.Discard()
			}
			return Report{}, fmt.Errorf("pipeline: %s: %w", st.Path(), err)
		}
	}

	rep.ImagePath = cfg.Output
	if cfg.WAVOutput != "" {
		rep.WAVPath = cfg.WAVOutput
	}
	return rep, nil
}

// highBandAttenuation measures the filter's attenuation between fs/4 and
// fs/2. Signals too short to resolve the band yield NaN instead of an error.
func highBandAttenuation(in, out []float64, sampleRate int) (float64, error) {
	sc := spectrum.DefaultConfig()
	sc.SampleRate = float64(sampleRate)
	db, err := spectrum.BandAttenuationDB(in, out, sc.SampleRate/4, sc.SampleRate/2, sc)
	if errors.Is(err, spectrum.ErrNoEnergy) {
		return math.NaN(), nil
	}
	if err != nil {
		return 0, fmt.Errorf("pipeline: analyze: %w", err)
	}
	return db, nil
}

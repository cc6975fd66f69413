package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-lowpass/dsp/core"
	"github.com/cwbudde/algo-lowpass/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrNoEnergy is returned by BandAttenuationDB when the reference signal has
// no energy in the requested band, e.g. when it is too short to resolve it.
var ErrNoEnergy = errors.New("spectrum: no input energy in band")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Spectrum is a one-sided magnitude spectrum, bins 0..FFTSize/2.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
}

// Config controls Analyze.
type Config struct {
	SampleRate float64
	// FFTSize defaults to the next power of two >= len(signal).
	FFTSize int
	Window  window.Type
}

// DefaultConfig returns a Hann-windowed analysis at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Window:     window.TypeHann,
	}
}

// Analyze windows signal, zero-pads it to the FFT size and returns the
// one-sided magnitude spectrum.
func Analyze(signal []float64, cfg Config) (Spectrum, error) {
	if len(signal) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: empty signal")
	}
	if cfg.SampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("spectrum: sample rate must be > 0: %f", cfg.SampleRate)
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}
	if fftSize < len(signal) {
		return Spectrum{}, fmt.Errorf("spectrum: fft size %d shorter than signal %d", fftSize, len(signal))
	}
	if fftSize < 2 {
		fftSize = 2
	}

	frame := make([]float64, len(signal))
	copy(frame, signal)
	window.Apply(cfg.Window, frame)

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum forward fft: %w", err)
	}

	return Spectrum{
		SampleRate: cfg.SampleRate,
		FFTSize:    fftSize,
		Magnitude:  Magnitude(out[:fftSize/2+1]),
	}, nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (s Spectrum) BinFrequency(k int) float64 {
	if s.FFTSize == 0 {
		return 0
	}
	return float64(k) * s.SampleRate / float64(s.FFTSize)
}

// BandEnergy sums |X[k]|^2 over bins whose centre lies in [loHz, hiHz].
func (s Spectrum) BandEnergy(loHz, hiHz float64) float64 {
	energy := 0.0
	for k, m := range s.Magnitude {
		f := s.BinFrequency(k)
		if f >= loHz && f <= hiHz {
			energy += m * m
		}
	}
	return energy
}

// BandAttenuationDB reports how much the energy in [loHz, hiHz] dropped from
// in to out, in dB. Positive values mean out carries less energy.
func BandAttenuationDB(in, out []float64, loHz, hiHz float64, cfg Config) (float64, error) {
	if len(in) != len(out) {
		return 0, fmt.Errorf("spectrum: length mismatch: %d vs %d", len(in), len(out))
	}
	if loHz > hiHz {
		return 0, fmt.Errorf("spectrum: invalid band [%f, %f]", loHz, hiHz)
	}

	sin, err := Analyze(in, cfg)
	if err != nil {
		return 0, err
	}
	sout, err := Analyze(out, cfg)
	if err != nil {
		return 0, err
	}

	ein := sin.BandEnergy(loHz, hiHz)
	eout := sout.BandEnergy(loHz, hiHz)
	if ein == 0 {
		return 0, fmt.Errorf("%w [%f, %f]", ErrNoEnergy, loHz, hiHz)
	}

	return core.LinearPowerToDB(ein / eout), nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

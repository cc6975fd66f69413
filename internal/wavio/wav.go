// Package wavio writes and reads the 16-bit PCM WAV files used to audition
// a signal next to its filtered version.
package wavio

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-lowpass/internal/fileout"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// WriteStereo writes left and right as a two-channel 16-bit WAV file.
// The parent directory must exist. A failed write leaves path untouched.
func WriteStereo(path string, left, right []float64, sampleRate int) error {
	s, err := StageStereo(path, left, right, sampleRate)
	if err != nil {
		return err
	}
	return s.Commit()
}

// StageStereo encodes left and right into a temporary file next to path.
// The caller commits or discards the result.
func StageStereo(path string, left, right []float64, sampleRate int) (*fileout.Staged, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("wavio: left/right length mismatch: %d vs %d", len(left), len(right))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	data := make([]float32, len(left)*2)
	for i := range left {
		data[i*2] = float32(left[i])
		data[i*2+1] = float32(right[i])
	}

	s, err := fileout.Stage(path, func(f *os.File) error {
		enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
		buf := &audio.Float32Buffer{
			Format: &audio.Format{
				SampleRate:  sampleRate,
				NumChannels: 2,
			},
			Data:           data,
			SourceBitDepth: 16,
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finalize: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}
	return s, nil
}

// ReadStereo decodes a two-channel WAV file into left and right float slices.
func ReadStereo(path string) (left, right []float64, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, nil, 0, fmt.Errorf("wavio: invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("wavio: decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels != 2 {
		return nil, nil, 0, fmt.Errorf("wavio: expected stereo buffer: %s", path)
	}

	frames := len(buf.Data) / 2
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = float64(buf.Data[i*2])
		right[i] = float64(buf.Data[i*2+1])
	}
	return left, right, buf.Format.SampleRate, nil
}

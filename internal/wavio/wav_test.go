package wavio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-lowpass/dsp/filter/onepole"
	"github.com/cwbudde/algo-lowpass/internal/testutil"
)

func TestWriteStereoReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.wav")
	in := testutil.DeterministicNoise(2, 0.9, 100)
	out := onepole.Apply(in, 0.3)

	if err := WriteStereo(path, in, out, 48000); err != nil {
		t.Fatalf("WriteStereo() error = %v", err)
	}

	left, right, rate, err := ReadStereo(path)
	if err != nil {
		t.Fatalf("ReadStereo() error = %v", err)
	}
	if rate != 48000 {
		t.Fatalf("sample rate = %d, want 48000", rate)
	}
	// 16-bit quantization
	testutil.RequireSliceNearlyEqual(t, left, in, 1e-3)
	testutil.RequireSliceNearlyEqual(t, right, out, 1e-3)
}

func TestWriteStereoValidation(t *testing.T) {
	dir := t.TempDir()
	if err := WriteStereo(filepath.Join(dir, "a.wav"), []float64{1}, nil, 48000); err == nil {
		t.Fatal("expected error for length mismatch")
	}
	if err := WriteStereo(filepath.Join(dir, "b.wav"), nil, nil, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	path := filepath.Join(dir, "missing", "c.wav")
	if err := WriteStereo(path, []float64{0}, []float64{0}, 48000); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err = %v", err)
	}
}

func TestWriteStereoKeepsExistingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.wav")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := WriteStereo(path, []float64{0}, []float64{0}, 48000); err == nil {
		t.Fatal("expected error for directory target")
	}
	if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
		t.Fatalf("existing directory was modified: fi=%v err=%v", fi, err)
	}
}

func TestStageStereoDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.wav")
	s, err := StageStereo(path, []float64{0.5}, []float64{-0.5}, 48000)
	if err != nil {
		t.Fatalf("StageStereo() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected nothing at destination before commit, stat err = %v", err)
	}
	s.Discard()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected nothing at destination after discard, stat err = %v", err)
	}
}

func TestReadStereoMissing(t *testing.T) {
	if _, _, _, err := ReadStereo(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

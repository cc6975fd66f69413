// Package fileout writes output files through a temporary sibling so that a
// failed write never truncates or removes a path that existed before.
package fileout

import (
	"fmt"
	"os"
	"path/filepath"
)

// Staged is a fully written temporary file waiting to be moved onto its
// destination.
type Staged struct {
	path string
	tmp  string
}

// Stage creates a temporary file next to path, passes it to write and closes
// it. On any error the temporary file is removed and path is left untouched.
func Stage(path string, write func(f *os.File) error) (*Staged, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return nil, fmt.Errorf("fileout: %s is a directory", path)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("fileout: %w", err)
	}
	tmp := f.Name()

	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("fileout: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("fileout: %w", err)
	}

	return &Staged{path: path, tmp: tmp}, nil
}

// Path returns the destination path.
func (s *Staged) Path() string { return s.path }

// Commit moves the staged file onto its destination.
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmp, s.path); err != nil {
		_ = os.Remove(s.tmp)
		return fmt.Errorf("fileout: %w", err)
	}
	return nil
}

// Discard removes the staged file without touching the destination.
func (s *Staged) Discard() {
	_ = os.Remove(s.tmp)
}

// WriteFile stages data and commits it.
func WriteFile(path string, data []byte) error {
	s, err := Stage(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
	if err != nil {
		return err
	}
	return s.Commit()
}

package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
)

// FS is a store on top of an afero filesystem.
type FS struct {
	fs afero.Fs
}

// NewFS returns a store that reads the assets from fs.
func NewFS(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// Fs returns the underlying filesystem.
func (s *FS) Fs() afero.Fs {
	return s.fs
}

// Fetch implements the Store interface.
func (s *FS) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}
	return afero.ReadFile(s.fs, name)
}

// CheckStatus implements the Store interface.
func (s *FS) CheckStatus(ctx context.Context) (time.Duration, error) {
	before := time.Now()
	if _, err := s.fs.Stat("."); err != nil && !os.IsNotExist(err) {
		return 0, err
	}
	return time.Since(before), nil
}

// Kind implements the Store interface.
func (s *FS) Kind() string {
	return "fs"
}

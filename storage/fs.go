package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSStore stores objects as flat files under a configured base directory.
type FSStore struct {
	baseDir string
}

// NewFSStore creates the base directory if it does not exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{baseDir: baseDir}, nil
}

// objectPath refuses names that would escape the base directory. Object names
// are generated by GenerateName, but serving endpoints pass client-supplied
// path segments through here as well.
func (s *FSStore) objectPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", ErrObjectNotFound
	}
	return filepath.Join(s.baseDir, name), nil
}

func (s *FSStore) Put(ctx context.Context, name string, r io.Reader) error {
	p, err := s.objectPath(name)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return f.Close()
}

func (s *FSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrObjectNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete is idempotent: removing a missing object is not an error.
func (s *FSStore) Delete(ctx context.Context, name string) error {
	p, err := s.objectPath(name)
	if err != nil {
		return nil
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *FSStore) Exists(ctx context.Context, name string) (bool, error) {
	p, err := s.objectPath(name)
	if err != nil {
		return false, nil
	}

	_, err = os.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

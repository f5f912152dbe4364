package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned by Open when no object exists under the name.
// Delete treats a missing object as a no-op.
var ErrObjectNotFound = errors.New("object not found")

// Store is a blob store addressed by generated object name. Implementations:
// the filesystem backend (default) and the S3-compatible backend.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// GenerateName builds a collision-resistant, path-safe object name that still
// ends in the sanitized original filename, so downloads keep a recognizable
// name and extension.
func GenerateName(originalFilename string) string {
	return uuid.New().String() + "_" + SanitizeFilename(originalFilename)
}

// SanitizeFilename strips directory components and any character that could be
// meaningful to a filesystem path. Uploaded filenames are untrusted input.
func SanitizeFilename(name string) string {
	// Handle both the local separator and forward slashes from foreign clients.
	name = filepath.Base(name)
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// Package storage persists uploaded photo content and hands back opaque
// reference strings. The rest of the service never touches the bytes.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"entregas/internal/apperr"
)

// allowed photo extensions; anything else is rejected before writing
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// PhotoStore saves photo content and returns an opaque reference to it.
type PhotoStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

// LocalStore writes photos to a directory and serves them under /uploads.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Save stores the content under a random name, keeping the original
// extension. Unknown extensions yield apperr.ErrInvalid.
func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperr.ErrInvalid
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close photo file: %w", err)
	}

	return path.Join("/uploads", name), nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys that would escape the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// Object describes a stored blob.
type Object struct {
	Key  string
	URL  string
	Size int64
}

// BlobStore keeps uploaded media.
type BlobStore interface {
	Put(ctx context.Context, folder, fileName string, r io.Reader) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// LocalStore writes blobs under a directory served at baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &LocalStore{dir: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the absolute root directory.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || strings.Contains(key, "..") || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

// Put stores r under folder with a generated name that keeps the extension of fileName.
func (s *LocalStore) Put(ctx context.Context, folder, fileName string, r io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := path.Join(folder, uuid.New().String()+strings.ToLower(path.Ext(fileName)))
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob %s: %w", key, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	return &Object{Key: key, URL: s.baseURL + "/" + key, Size: n}, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

// LocalStorage reads dump files from the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage. Keys are resolved against basePath;
// with an empty basePath a key is used as a path as-is.
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// Open opens the file at key for reading.
func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath := s.getFullPath(key)
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("dump file not found: %s", key), err)
		}
		return nil, apperrors.Wrap(apperrors.CodeReadError, "failed to stat file", err)
	}
	if info.IsDir() {
		return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("%s is a directory", key))
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeReadError, "failed to open file", err)
	}

	return file, nil
}

// Exists checks if a file exists at the specified key.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	_, err := os.Stat(s.getFullPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}

	return true, nil
}

// GetURL returns the file path for local storage.
func (s *LocalStorage) GetURL(key string) string {
	return s.getFullPath(key)
}

// getFullPath returns the full filesystem path for the given key.
func (s *LocalStorage) getFullPath(key string) string {
	if s.basePath == "" {
		return key
	}
	return filepath.Join(s.basePath, key)
}

// GetBasePath returns the base path for the local storage.
func (s *LocalStorage) GetBasePath() string {
	return s.basePath
}

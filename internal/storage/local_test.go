package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

func TestLocalStorage_Open(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dumps"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dumps", "a.txt"), []byte("hello"), 0644))

	ctx := context.Background()

	t.Run("BasePath", func(t *testing.T) {
		s := NewLocalStorage(dir)

		rc, err := s.Open(ctx, "dumps/a.txt")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("EmptyBasePathUsesKeyAsPath", func(t *testing.T) {
		s := NewLocalStorage("")

		rc, err := s.Open(ctx, filepath.Join(dir, "dumps", "a.txt"))
		require.NoError(t, err)
		rc.Close()
	})

	t.Run("NotFound", func(t *testing.T) {
		s := NewLocalStorage(dir)

		rc, err := s.Open(ctx, "missing.txt")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Contains(t, err.Error(), "missing.txt")
	})

	t.Run("Directory", func(t *testing.T) {
		s := NewLocalStorage(dir)

		_, err := s.Open(ctx, "dumps")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetErrorCode(err))
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewLocalStorage(dir).Open(cctx, "dumps/a.txt")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorage_Exists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644))
	s := NewLocalStorage(dir)

	ok, err := s.Exists(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "b.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_GetURL(t *testing.T) {
	assert.Equal(t, filepath.Join("/data", "x.txt"), NewLocalStorage("/data").GetURL("x.txt"))
	assert.Equal(t, "rel/x.txt", NewLocalStorage("").GetURL("rel/x.txt"))
	assert.Equal(t, "/data", NewLocalStorage("/data").GetBasePath())
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entregas/internal/apperr"
)

func TestLocalStore_Save(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "Proof.JPG", strings.NewReader("img-bytes"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ref, "/uploads/"), "ref %q", ref)
	assert.Equal(t, ".jpg", filepath.Ext(ref))
	assert.NotContains(t, ref, "Proof", "original name must not leak into the reference")

	data, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "img-bytes", string(data))
}

func TestLocalStore_Save_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "x.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "x.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestLocalStore_Save_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"doc.pdf", "script.sh", "noext", "photo.gif"} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"))
		require.ErrorIs(t, err, apperr.ErrInvalid, "name %q", name)
	}

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not leave files behind")
}

func TestNewLocalStore_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"printshop-backend/internal/storage"
)

func TestLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStore_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(ctx, "1700000000000-abc-flyer.pdf", strings.NewReader("hello"), 5, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "1700000000000-abc-flyer.pdf"), path)

	rc, err := store.Open(ctx, "1700000000000-abc-flyer.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Remove(ctx, "1700000000000-abc-flyer.pdf"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_MissingFile(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotExist)

	err = store.Remove(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestLocalStore_RefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(ctx, "same", strings.NewReader("a"), 1, "")
	require.NoError(t, err)

	_, err = store.Save(ctx, "same", strings.NewReader("b"), 1, "")
	assert.Error(t, err)
}

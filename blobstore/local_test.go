package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	// Missing blob
	_, err = store.Open(ctx, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)

	// Put and read back
	require.NoError(t, store.Put(ctx, "features/paper.bin", []byte("0123456789")))

	blob, err := store.Open(ctx, "features/paper.bin")
	require.NoError(t, err)
	require.Equal(t, int64(10), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 3)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("3456"), buf)

	// Zero-copy access
	m, ok := blob.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), data)

	// Range read
	r, err := blob.ReadRange(ctx, 2, 3)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, []byte("234"), got)

	require.NoError(t, blob.Close())

	// List
	require.NoError(t, store.Put(ctx, "features/author.bin", []byte("x")))
	require.NoError(t, store.Put(ctx, "manifest.json", []byte("{}")))

	names, err := store.List(ctx, "features/")
	require.NoError(t, err)
	require.Equal(t, []string{"features/author.bin", "features/paper.bin"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Delete
	require.NoError(t, store.Delete(ctx, "manifest.json"))
	require.NoError(t, store.Delete(ctx, "manifest.json"))
	_, err = store.Open(ctx, "manifest.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_CreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	w, err := store.Create(ctx, "part.bin")
	require.NoError(t, err)

	_, err = w.Write([]byte("half"))
	require.NoError(t, err)

	// Not visible before Close.
	_, err = os.Stat(filepath.Join(dir, "part.bin"))
	require.True(t, os.IsNotExist(err))

	_, err = w.Write([]byte("done"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := os.ReadFile(filepath.Join(dir, "part.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte("halfdone"), got)
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "a/one", []byte("one")))

	w, err := store.Create(ctx, "a/two")
	require.NoError(t, err)
	_, err = w.Write([]byte("two"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	require.Equal(t, []string{"a/one", "a/two"}, names)

	blob, err := store.Open(ctx, "a/one")
	require.NoError(t, err)
	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), data)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "a/one"))
	_, err = store.Open(ctx, "a/one")
	require.ErrorIs(t, err, ErrNotFound)
}

package blobstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch/resource"
)

func TestMirror(t *testing.T) {
	ctx := context.Background()

	src := NewMemoryStore()
	var names []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("features/f%d.bin", i)
		names = append(names, name)
		require.NoError(t, src.Put(ctx, name, []byte(fmt.Sprintf("payload-%d", i))))
	}

	dst, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{MaxConcurrentFetches: 2})
	require.NoError(t, Mirror(ctx, src, dst, names, WithConcurrency(4), WithController(rc)))

	for i, name := range names {
		blob, err := dst.Open(ctx, name)
		require.NoError(t, err)
		data, err := ReadAll(ctx, blob)
		require.NoError(t, err)
		assert.Equal(t, []byte(fmt.Sprintf("payload-%d", i)), data)
		require.NoError(t, blob.Close())
	}
}

func TestMirror_SkipExisting(t *testing.T) {
	ctx := context.Background()

	src := NewMemoryStore()
	require.NoError(t, src.Put(ctx, "f.bin", []byte("remote")))

	dst := NewMemoryStore()
	require.NoError(t, dst.Put(ctx, "f.bin", []byte("local!")))

	// Same size, existing copy wins.
	require.NoError(t, Mirror(ctx, src, dst, []string{"f.bin"}))

	blob, err := dst.Open(ctx, "f.bin")
	require.NoError(t, err)
	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("local!"), data)
	require.NoError(t, blob.Close())

	// Size mismatch forces a re-copy.
	require.NoError(t, src.Put(ctx, "f.bin", []byte("remote-v2")))
	require.NoError(t, Mirror(ctx, src, dst, []string{"f.bin"}))

	blob, err = dst.Open(ctx, "f.bin")
	require.NoError(t, err)
	data, err = ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("remote-v2"), data)
	require.NoError(t, blob.Close())
}

func TestMirror_MissingSource(t *testing.T) {
	ctx := context.Background()

	dst := NewMemoryStore()
	err := Mirror(ctx, NewMemoryStore(), dst, []string{"nope.bin"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMirror_Observer(t *testing.T) {
	ctx := context.Background()

	src := NewMemoryStore()
	require.NoError(t, src.Put(ctx, "a.bin", []byte("12345")))
	require.NoError(t, src.Put(ctx, "b.bin", []byte("678")))

	dst := NewMemoryStore()
	require.NoError(t, dst.Put(ctx, "b.bin", []byte("678")))

	var mu sync.Mutex
	copied := make(map[string]int64)
	observe := func(name string, n int64, err error) {
		mu.Lock()
		defer mu.Unlock()
		require.NoError(t, err)
		copied[name] = n
	}

	require.NoError(t, Mirror(ctx, src, dst, []string{"a.bin", "b.bin"}, WithObserver(observe)))

	// Skipped blobs report zero copied bytes.
	assert.Equal(t, map[string]int64{"a.bin": 5, "b.bin": 0}, copied)
}

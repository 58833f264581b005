package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch/cache"
)

func TestCachingStore_ReadAt(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	payload := make([]byte, 1000)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	require.NoError(t, inner.Put(ctx, "feat.bin", payload))

	c := cache.NewLRUBlockCache(1<<20, nil)
	store := NewCachingStore(inner, c, 64)

	blob, err := store.Open(ctx, "feat.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(1000), blob.Size())

	// Crosses several block boundaries.
	buf := make([]byte, 300)
	n, err := blob.ReadAt(ctx, buf, 50)
	require.NoError(t, err)
	require.Equal(t, 300, n)
	assert.Equal(t, payload[50:350], buf)

	// Tail read past the last full block.
	buf = make([]byte, 100)
	n, err = blob.ReadAt(ctx, buf, 950)
	require.Equal(t, 50, n)
	assert.Equal(t, payload[950:], buf[:n])

	// Second read of the same range is served from cache.
	hitsBefore, _ := c.Stats()
	buf = make([]byte, 300)
	_, err = blob.ReadAt(ctx, buf, 50)
	require.NoError(t, err)
	hitsAfter, _ := c.Stats()
	assert.Greater(t, hitsAfter, hitsBefore)
}

func TestCachingStore_InvalidateOnPut(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "feat.bin", []byte("old-old-old-old-")))

	c := cache.NewLRUBlockCache(1<<20, nil)
	store := NewCachingStore(inner, c, 4)

	blob, err := store.Open(ctx, "feat.bin")
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), buf)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Put(ctx, "feat.bin", []byte("new-new-new-new-")))

	blob, err = store.Open(ctx, "feat.bin")
	require.NoError(t, err)
	defer blob.Close()

	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), buf)
}

func TestCachingStore_ReadRange(t *testing.T) {
	ctx := context.Background()

	inner := NewMemoryStore()
	require.NoError(t, inner.Put(ctx, "feat.bin", []byte("0123456789")))

	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 4)

	blob, err := store.Open(ctx, "feat.bin")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 8, 10)
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, 10)
	n, _ := r.Read(buf)
	assert.Equal(t, []byte("89"), buf[:n])
}

package s3

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch/blobstore"
)

// Integration test against a real bucket. Skipped unless S3_BUCKET is set.
func TestStore_Integration(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := NewClient(ctx)
	require.NoError(t, err)

	store := NewStore(client, bucket, "graphbatch-test/")

	name := "it/feature.bin"
	payload := []byte("integration payload 0123456789")

	require.NoError(t, store.Put(ctx, name, payload))
	defer func() { _ = store.Delete(ctx, name) }()

	blob, err := store.Open(ctx, name)
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), blob.Size())

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 20)
	require.Equal(t, 10, n)
	require.NoError(t, err)
	require.Equal(t, payload[20:30], buf)
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "it/")
	require.NoError(t, err)
	require.Contains(t, names, name)

	// Streaming upload path
	w, err := store.Create(ctx, "it/streamed.bin")
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	defer func() { _ = store.Delete(ctx, "it/streamed.bin") }()

	blob, err = store.Open(ctx, "it/streamed.bin")
	require.NoError(t, err)
	data, err := blobstore.ReadAll(ctx, blob)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.NoError(t, blob.Close())
}

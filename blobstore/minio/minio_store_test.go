package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch/blobstore"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skipped when none is reachable.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-graphbatch"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "it/")

	// Put and Open
	data := []byte("0123456789abcdef")
	require.NoError(t, store.Put(ctx, "features/paper.bin", data))

	blob, err := store.Open(ctx, "features/paper.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	// Range read
	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd"), buf)
	require.NoError(t, blob.Close())

	// Streaming upload
	w, err := store.Create(ctx, "features/streamed.bin")
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	blob, err = store.Open(ctx, "features/streamed.bin")
	require.NoError(t, err)
	got, err := blobstore.ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	require.NoError(t, blob.Close())

	// List and Delete
	names, err := store.List(ctx, "features/")
	require.NoError(t, err)
	assert.Contains(t, names, "features/paper.bin")

	require.NoError(t, store.Delete(ctx, "features/paper.bin"))
	require.NoError(t, store.Delete(ctx, "features/streamed.bin"))
	require.NoError(t, store.Delete(ctx, "features/missing.bin"))

	_, err = store.Open(ctx, "features/paper.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

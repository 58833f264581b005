package feature

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch"
	"github.com/yxy235/graphbatch/blobstore"
)

func TestLoad_MixedBackends(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	feat, err := NewFloat32Array(4, 2, []float32{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	labels, err := NewInt64Array(4, 1, []int64{0, 1, 0, 1})
	require.NoError(t, err)

	require.NoError(t, WriteFile(filepath.Join(root, "feat.gbft"), feat, CompressionNone))
	require.NoError(t, WriteFile(filepath.Join(root, "labels.gbft"), labels, CompressionZSTD))

	store, err := Load(root, []Descriptor{
		{Domain: DomainNode, TypeName: "paper", Name: "feat", Path: "feat.gbft"},
		{Domain: DomainNode, TypeName: "paper", Name: "label", Path: "labels.gbft", InMemory: true},
	})
	require.NoError(t, err)
	defer store.Close()

	f, err := store.Feature(Key{Domain: DomainNode, TypeName: "paper", Name: "feat"})
	require.NoError(t, err)
	_, ok := f.(*DiskFeature)
	assert.True(t, ok)

	got, err := f.Read(ctx, []int64{2})
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 5}, got.Float32s())

	l, err := store.Feature(Key{Domain: DomainNode, TypeName: "paper", Name: "label"})
	require.NoError(t, err)
	_, ok = l.(*MemoryFeature)
	assert.True(t, ok)

	lg, err := l.Read(ctx, []int64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1}, lg.Int64s())
}

func TestLoad_CompressedNeedsInMemory(t *testing.T) {
	root := t.TempDir()

	arr, err := NewFloat32Array(2, 2, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, WriteFile(filepath.Join(root, "f.gbft"), arr, CompressionLZ4))

	_, err = Load(root, []Descriptor{
		{Domain: DomainNode, Name: "f", Path: "f.gbft"},
	})
	require.ErrorIs(t, err, ErrBadFormat)
}

func TestLoad_MissingFileCleansUp(t *testing.T) {
	root := t.TempDir()

	arr, err := NewFloat32Array(2, 2, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, WriteFile(filepath.Join(root, "a.gbft"), arr, CompressionNone))

	_, err = Load(root, []Descriptor{
		{Domain: DomainNode, Name: "a", Path: "a.gbft"},
		{Domain: DomainNode, Name: "b", Path: "missing.gbft"},
	})
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	arr, err := NewFloat32Array(3, 2, []float32{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	encoded, err := Encode(arr, CompressionNone)
	require.NoError(t, err)

	src := blobstore.NewMemoryStore()
	require.NoError(t, src.Put(ctx, "features/feat.gbft", encoded))

	localDir := t.TempDir()
	descs := []Descriptor{
		{Domain: DomainNode, TypeName: "paper", Name: "feat", Path: "features/feat.gbft"},
	}

	store, err := Fetch(ctx, src, localDir, descs)
	require.NoError(t, err)

	f, err := store.Feature(descs[0].Key())
	require.NoError(t, err)
	got, err := f.Read(ctx, []int64{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 4, 5}, got.Float32s())
	require.NoError(t, store.Close())

	// A second fetch reuses the staged copy.
	store, err = Fetch(ctx, src, localDir, descs)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestFetch_LogsArtifacts(t *testing.T) {
	ctx := context.Background()

	arr, err := NewFloat32Array(2, 2, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	encoded, err := Encode(arr, CompressionNone)
	require.NoError(t, err)

	src := blobstore.NewMemoryStore()
	require.NoError(t, src.Put(ctx, "feat.gbft", encoded))

	var buf bytes.Buffer
	logger := graphbatch.NewLogger(slog.NewTextHandler(&buf, nil))

	store, err := Fetch(ctx, src, t.TempDir(),
		[]Descriptor{{Domain: DomainNode, Name: "feat", Path: "feat.gbft"}},
		WithFetchLogger(logger))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out := buf.String()
	assert.Contains(t, out, "artifact fetched")
	assert.Contains(t, out, "artifact=feat.gbft")
	assert.Contains(t, out, fmt.Sprintf("bytes=%d", len(encoded)))
}

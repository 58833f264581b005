package feature

import (
	"context"
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionedFeature_Read(t *testing.T) {
	ctx := context.Background()

	// Partition owns global rows 10, 20, 30, 40, stored as local rows
	// 0..3.
	inner := newTestFeature(t, 4, 2)
	owned := roaring64.BitmapOf(10, 20, 30, 40)

	f, err := NewPartitionedFeature(inner, owned)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, f.Owns(20))
	assert.False(t, f.Owns(15))
	assert.False(t, f.Owns(-1))

	got, err := f.Read(ctx, []int64{40, 10})
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 7, 0, 1}, got.Float32s())
}

func TestPartitionedFeature_NotOwned(t *testing.T) {
	ctx := context.Background()
	inner := newTestFeature(t, 2, 2)
	f, err := NewPartitionedFeature(inner, roaring64.BitmapOf(5, 9))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Read(ctx, []int64{5, 7})
	var notOwned *ErrRowNotOwned
	require.ErrorAs(t, err, &notOwned)
	assert.Equal(t, int64(7), notOwned.Row)
}

func TestPartitionedFeature_Update(t *testing.T) {
	ctx := context.Background()
	inner := newTestFeature(t, 3, 1)
	f, err := NewPartitionedFeature(inner, roaring64.BitmapOf(100, 200, 300))
	require.NoError(t, err)
	defer f.Close()

	vals, err := NewFloat32Array(1, 1, []float32{42})
	require.NoError(t, err)
	require.NoError(t, f.Update(ctx, []int64{200}, vals))

	got, err := inner.Read(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []float32{42}, got.Float32s())
}

func TestPartitionedFeature_CardinalityMismatch(t *testing.T) {
	inner := newTestFeature(t, 4, 2)

	_, err := NewPartitionedFeature(inner, roaring64.BitmapOf(1, 2, 3))
	var shapeErr *ErrShapeMismatch
	require.ErrorAs(t, err, &shapeErr)
}

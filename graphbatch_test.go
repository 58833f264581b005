package graphbatch

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniqueAndCompact_DispatchInt64(t *testing.T) {
	unique, compacted, err := UniqueAndCompact(context.Background(), []int64{2, 5, 7, 2}, []int64{5, 2})
	require.NoError(t, err)
	require.Equal(t, []int64{5, 2, 7}, unique)
	require.Equal(t, []int64{1, 0, 2, 1}, compacted)
}

func TestUniqueAndCompact_DispatchInt32(t *testing.T) {
	unique, compacted, err := UniqueAndCompact(context.Background(), []int32{2, 5, 7, 2}, []int32{5, 2})
	require.NoError(t, err)
	require.Equal(t, []int32{5, 2, 7}, unique)
	require.Equal(t, []int32{1, 0, 2, 1}, compacted)
}

func TestUniqueAndCompact_NilSeeds(t *testing.T) {
	unique, compacted, err := UniqueAndCompact(context.Background(), []int64{3, 3, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, []int64{3}, unique)
	require.Equal(t, []int64{0, 0, 0}, compacted)
}

func TestUniqueAndCompact_UnsupportedWidth(t *testing.T) {
	_, _, err := UniqueAndCompact(context.Background(), []int16{1, 2}, nil)
	var unsupported *ErrUnsupportedKeyType
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "[]int16", unsupported.Type)
}

func TestUniqueAndCompact_WithLogger(t *testing.T) {
	logger, buf := newCapturedLogger(slog.LevelDebug)

	_, _, err := UniqueAndCompact(context.Background(),
		[]int64{2, 5, 7, 2}, []int64{5, 2},
		WithLogger(logger), WithGrain(1))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "compaction completed")
	require.Contains(t, out, "num_seeds=2")
	require.Contains(t, out, "num_indices=4")
	require.Contains(t, out, "num_unique=3")
}

func TestUniqueAndCompact_WidthMismatch(t *testing.T) {
	_, _, err := UniqueAndCompact(context.Background(), []int64{1, 2}, []int32{1})
	var mismatch *ErrKeyTypeMismatch
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "[]int64", mismatch.IndicesType)
	require.Equal(t, "[]int32", mismatch.SeedsType)
}

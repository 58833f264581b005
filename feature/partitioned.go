package feature

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ErrRowNotOwned is returned when a global row id is not part of the
// partition.
type ErrRowNotOwned struct {
	Row int64
}

func (e *ErrRowNotOwned) Error() string {
	return fmt.Sprintf("feature: row %d not owned by partition", e.Row)
}

// PartitionedFeature serves a partition of a larger feature. The
// underlying feature stores only the owned rows, packed densely in
// ascending global-id order; the bitmap records which global ids those
// are. Global ids are translated to local rows by rank.
type PartitionedFeature struct {
	inner Feature
	owned *roaring64.Bitmap
}

// NewPartitionedFeature wraps a densely packed partition.
// The bitmap cardinality must equal the inner feature's row count.
func NewPartitionedFeature(inner Feature, owned *roaring64.Bitmap) (*PartitionedFeature, error) {
	if int64(owned.GetCardinality()) != inner.NumRows() {
		return nil, &ErrShapeMismatch{
			Want: fmt.Sprintf("%d owned rows", inner.NumRows()),
			Got:  fmt.Sprintf("%d bitmap entries", owned.GetCardinality()),
		}
	}
	return &PartitionedFeature{inner: inner, owned: owned}, nil
}

// Owns reports whether the partition holds the given global row.
func (f *PartitionedFeature) Owns(id int64) bool {
	return id >= 0 && f.owned.Contains(uint64(id))
}

// localize translates global row ids to local rows.
func (f *PartitionedFeature) localize(ids []int64) ([]int64, error) {
	local := make([]int64, len(ids))
	for i, id := range ids {
		if id < 0 || !f.owned.Contains(uint64(id)) {
			return nil, &ErrRowNotOwned{Row: id}
		}
		// Rank counts elements <= id, so owned ids map to 1..N.
		local[i] = int64(f.owned.Rank(uint64(id))) - 1
	}
	return local, nil
}

// Read gathers the given global rows.
func (f *PartitionedFeature) Read(ctx context.Context, ids []int64) (*Array, error) {
	local, err := f.localize(ids)
	if err != nil {
		return nil, err
	}
	return f.inner.Read(ctx, local)
}

// ReadAll returns all owned rows.
func (f *PartitionedFeature) ReadAll(ctx context.Context) (*Array, error) {
	return f.inner.ReadAll(ctx)
}

// Update writes values into the given global rows.
func (f *PartitionedFeature) Update(ctx context.Context, ids []int64, values *Array) error {
	local, err := f.localize(ids)
	if err != nil {
		return err
	}
	return f.inner.Update(ctx, local, values)
}

// NumRows returns the number of owned rows.
func (f *PartitionedFeature) NumRows() int64 {
	return f.inner.NumRows()
}

func (f *PartitionedFeature) Dim() int {
	return f.inner.Dim()
}

func (f *PartitionedFeature) DType() DType {
	return f.inner.DType()
}

func (f *PartitionedFeature) Close() error {
	return f.inner.Close()
}

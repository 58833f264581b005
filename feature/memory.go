package feature

import (
	"context"
	"fmt"
	"sync"

	"github.com/yxy235/graphbatch/internal/parallel"
)

// MemoryFeature keeps all rows in heap memory.
// Reads may run concurrently; Update takes an exclusive lock.
type MemoryFeature struct {
	mu  sync.RWMutex
	arr *Array
}

// NewMemoryFeature wraps an Array. The Array is retained, not copied.
func NewMemoryFeature(arr *Array) *MemoryFeature {
	return &MemoryFeature{arr: arr}
}

func (f *MemoryFeature) NumRows() int64 {
	return int64(f.arr.Rows())
}

func (f *MemoryFeature) Dim() int {
	return f.arr.Dim()
}

func (f *MemoryFeature) DType() DType {
	return f.arr.DType()
}

func (f *MemoryFeature) Read(ctx context.Context, ids []int64) (*Array, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return gatherRows(ctx, f.arr, ids)
}

func (f *MemoryFeature) ReadAll(ctx context.Context) (*Array, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.arr.Clone(), nil
}

func (f *MemoryFeature) Update(ctx context.Context, ids []int64, values *Array) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return scatterRows(ctx, f.arr, ids, values)
}

func (f *MemoryFeature) Close() error {
	return nil
}

// gatherRows collects the given rows of src into a fresh Array.
// Large batches are gathered in parallel.
func gatherRows(ctx context.Context, src *Array, ids []int64) (*Array, error) {
	numRows := int64(src.Rows())
	out := Empty(src.DType(), len(ids), src.Dim())
	rs := src.rowSize()

	err := parallel.For(ctx, len(ids), parallel.DefaultGrain, func(start, end int) error {
		for i := start; i < end; i++ {
			id := ids[i]
			if id < 0 || id >= numRows {
				return &ErrRowOutOfRange{Row: id, NumRows: numRows}
			}
			copy(out.data[i*rs:(i+1)*rs], src.Row(int(id)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scatterRows writes the rows of values into dst at the given ids.
func scatterRows(ctx context.Context, dst *Array, ids []int64, values *Array) error {
	if values.DType() != dst.DType() {
		return &ErrDTypeMismatch{Want: dst.DType(), Got: values.DType()}
	}
	if values.Dim() != dst.Dim() || values.Rows() != len(ids) {
		return &ErrShapeMismatch{
			Want: fmt.Sprintf("%dx%d", len(ids), dst.Dim()),
			Got:  fmt.Sprintf("%dx%d", values.Rows(), values.Dim()),
		}
	}

	numRows := int64(dst.Rows())
	rs := dst.rowSize()

	return parallel.For(ctx, len(ids), parallel.DefaultGrain, func(start, end int) error {
		for i := start; i < end; i++ {
			id := ids[i]
			if id < 0 || id >= numRows {
				return &ErrRowOutOfRange{Row: id, NumRows: numRows}
			}
			copy(dst.data[id*int64(rs):(id+1)*int64(rs)], values.Row(i))
		}
		return nil
	})
}

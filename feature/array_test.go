package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_TypedViews(t *testing.T) {
	vals := []float32{1, 2, 3, 4, 5, 6}
	arr, err := NewFloat32Array(2, 3, vals)
	require.NoError(t, err)

	assert.Equal(t, Float32, arr.DType())
	assert.Equal(t, 2, arr.Rows())
	assert.Equal(t, 3, arr.Dim())
	assert.Equal(t, vals, arr.Float32s())

	// Views alias the input.
	arr.Float32s()[0] = 42
	assert.Equal(t, float32(42), vals[0])

	assert.Panics(t, func() { arr.Int64s() })
}

func TestArray_ShapeValidation(t *testing.T) {
	_, err := NewFloat32Array(2, 3, []float32{1, 2, 3})
	var shapeErr *ErrShapeMismatch
	require.ErrorAs(t, err, &shapeErr)

	_, err = NewArray(Int64, 2, 2, make([]byte, 32))
	require.NoError(t, err)
}

func TestArray_RowAndClone(t *testing.T) {
	arr, err := NewInt64Array(3, 2, []int64{10, 11, 20, 21, 30, 31})
	require.NoError(t, err)

	row := arr.Row(1)
	assert.Len(t, row, 16)

	clone := arr.Clone()
	clone.Int64s()[0] = 99
	assert.Equal(t, int64(10), arr.Int64s()[0])
}

func TestDType_Size(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 4, Int32.Size())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, 1, Uint8.Size())
	assert.Equal(t, 0, DType(99).Size())
}

func TestEmpty(t *testing.T) {
	arr := Empty(Float64, 4, 8)
	assert.Equal(t, 4, arr.Rows())
	assert.Equal(t, 8, arr.Dim())
	assert.Len(t, arr.Bytes(), 4*8*8)
	assert.Equal(t, float64(0), arr.Float64s()[0])
}

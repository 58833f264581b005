package feature

import (
	"fmt"
	"unsafe"
)

// DType identifies the element type of a feature.
type DType uint8

const (
	Float32 DType = iota
	Float64
	Int32
	Int64
	Uint8
)

// Size returns the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		return 0
	}
}

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// Array is a dense 2D array of rows x dim elements backed by a flat
// byte buffer. The buffer may be heap memory or a memory-mapped region;
// typed views are zero-copy either way.
type Array struct {
	dtype DType
	dim   int
	rows  int
	data  []byte
}

// NewArray wraps raw bytes. len(data) must equal rows*dim*dtype.Size().
func NewArray(dtype DType, rows, dim int, data []byte) (*Array, error) {
	want := rows * dim * dtype.Size()
	if len(data) != want {
		return nil, &ErrShapeMismatch{
			Want: fmt.Sprintf("%d bytes (%dx%d %s)", want, rows, dim, dtype),
			Got:  fmt.Sprintf("%d bytes", len(data)),
		}
	}
	return &Array{dtype: dtype, dim: dim, rows: rows, data: data}, nil
}

// NewFloat32Array builds an Array over float32 values. The values are
// aliased, not copied.
func NewFloat32Array(rows, dim int, vals []float32) (*Array, error) {
	return NewArray(Float32, rows, dim, bytesView(vals))
}

// NewFloat64Array builds an Array over float64 values.
func NewFloat64Array(rows, dim int, vals []float64) (*Array, error) {
	return NewArray(Float64, rows, dim, bytesView(vals))
}

// NewInt32Array builds an Array over int32 values.
func NewInt32Array(rows, dim int, vals []int32) (*Array, error) {
	return NewArray(Int32, rows, dim, bytesView(vals))
}

// NewInt64Array builds an Array over int64 values.
func NewInt64Array(rows, dim int, vals []int64) (*Array, error) {
	return NewArray(Int64, rows, dim, bytesView(vals))
}

// Empty allocates a zeroed Array.
func Empty(dtype DType, rows, dim int) *Array {
	return &Array{
		dtype: dtype,
		dim:   dim,
		rows:  rows,
		data:  make([]byte, rows*dim*dtype.Size()),
	}
}

func (a *Array) DType() DType { return a.dtype }
func (a *Array) Dim() int     { return a.dim }
func (a *Array) Rows() int    { return a.rows }

// Bytes returns the backing buffer.
func (a *Array) Bytes() []byte { return a.data }

// rowSize returns the row width in bytes.
func (a *Array) rowSize() int {
	return a.dim * a.dtype.Size()
}

// Row returns the raw bytes of row i.
func (a *Array) Row(i int) []byte {
	rs := a.rowSize()
	return a.data[i*rs : (i+1)*rs : (i+1)*rs]
}

// Clone copies the array into fresh heap memory. Used to detach a
// result from a memory-mapped region.
func (a *Array) Clone() *Array {
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return &Array{dtype: a.dtype, dim: a.dim, rows: a.rows, data: data}
}

// Float32s returns a zero-copy typed view. Panics if the dtype differs.
func (a *Array) Float32s() []float32 {
	a.mustBe(Float32)
	return typedView[float32](a.data)
}

// Float64s returns a zero-copy typed view.
func (a *Array) Float64s() []float64 {
	a.mustBe(Float64)
	return typedView[float64](a.data)
}

// Int32s returns a zero-copy typed view.
func (a *Array) Int32s() []int32 {
	a.mustBe(Int32)
	return typedView[int32](a.data)
}

// Int64s returns a zero-copy typed view.
func (a *Array) Int64s() []int64 {
	a.mustBe(Int64)
	return typedView[int64](a.data)
}

// Uint8s returns a zero-copy typed view.
func (a *Array) Uint8s() []uint8 {
	a.mustBe(Uint8)
	return a.data
}

func (a *Array) mustBe(d DType) {
	if a.dtype != d {
		panic(fmt.Sprintf("feature: %s view of %s array", d, a.dtype))
	}
}

func typedView[T any](data []byte) []T {
	if len(data) == 0 {
		return nil
	}
	var zero T
	n := len(data) / int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

func bytesView[T any](vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*int(unsafe.Sizeof(zero)))
}

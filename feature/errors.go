package feature

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a feature key is not registered.
	ErrNotFound = errors.New("feature: not found")

	// ErrReadOnly is returned when updating a feature opened read-only.
	ErrReadOnly = errors.New("feature: read-only")

	// ErrClosed is returned when accessing a closed feature.
	ErrClosed = errors.New("feature: closed")

	// ErrChecksum is returned when a feature file fails integrity
	// validation.
	ErrChecksum = errors.New("feature: checksum mismatch")

	// ErrBadFormat is returned when a feature file cannot be parsed.
	ErrBadFormat = errors.New("feature: bad file format")
)

// ErrRowOutOfRange is returned when a row id is outside [0, NumRows).
type ErrRowOutOfRange struct {
	Row     int64
	NumRows int64
}

func (e *ErrRowOutOfRange) Error() string {
	return fmt.Sprintf("feature: row %d out of range [0, %d)", e.Row, e.NumRows)
}

// ErrShapeMismatch is returned when an update payload does not match
// the feature's row shape or count.
type ErrShapeMismatch struct {
	Want string
	Got  string
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("feature: shape mismatch: want %s, got %s", e.Want, e.Got)
}

// ErrDTypeMismatch is returned when an update payload has a different
// element type than the feature.
type ErrDTypeMismatch struct {
	Want DType
	Got  DType
}

func (e *ErrDTypeMismatch) Error() string {
	return fmt.Sprintf("feature: dtype mismatch: want %s, got %s", e.Want, e.Got)
}

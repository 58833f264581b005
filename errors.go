package graphbatch

import (
	"fmt"
)

// ErrUnsupportedKeyType indicates an id slice of a width the dispatcher
// has no instantiation for. Supported widths are []int32 and []int64.
type ErrUnsupportedKeyType struct {
	Type string
}

func (e *ErrUnsupportedKeyType) Error() string {
	return fmt.Sprintf("unsupported key type %s: want []int32 or []int64", e.Type)
}

// ErrKeyTypeMismatch indicates indices and seed ids of different widths.
type ErrKeyTypeMismatch struct {
	IndicesType string
	SeedsType   string
}

func (e *ErrKeyTypeMismatch) Error() string {
	return fmt.Sprintf("key type mismatch: indices are %s but seeds are %s", e.IndicesType, e.SeedsType)
}

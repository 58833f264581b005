package compact

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCSC indicates a CSC structure whose indptr and indices
// disagree with each other or with the seed nodes.
var ErrInvalidCSC = errors.New("compact: invalid csc format")

// CSC is a batch of sampled edges in compressed sparse column form:
// Indices[Indptr[j]:Indptr[j+1]] are the in-neighbors of the j-th seed.
type CSC[T Signed] struct {
	Indptr  []T
	Indices []T
}

func (c CSC[T]) validate(numDst int) error {
	if len(c.Indptr) == 0 || int(c.Indptr[len(c.Indptr)-1]) != len(c.Indices) {
		return fmt.Errorf("%w: last indptr entry must equal len(indices)=%d", ErrInvalidCSC, len(c.Indices))
	}
	if numDst >= 0 && numDst+1 != len(c.Indptr) {
		return fmt.Errorf("%w: %d seed nodes need %d indptr entries, got %d", ErrInvalidCSC, numDst, numDst+1, len(c.Indptr))
	}
	return nil
}

// UniqueAndCompactCSC compacts the indices of CSC-form edge batches per
// edge type and returns the unique nodes per (source) node type. Indptr
// is structural and passes through unchanged.
//
// uniqueDst provides the per-node-type seed prefix, same contract as
// UniqueAndCompact.
func UniqueAndCompactCSC[T Signed](ctx context.Context, formats map[string]CSC[T], uniqueDst map[string][]T, optFns ...func(*Options)) (map[string][]T, map[string]CSC[T], error) {
	etypes := sortedKeys(formats)

	indices := make(map[string][][]T)
	for _, etype := range etypes {
		f := formats[etype]
		if err := f.validate(-1); err != nil {
			return nil, nil, fmt.Errorf("edge type %q: %w", etype, err)
		}
		srcType, _, _, err := ParseEdgeType(etype)
		if err != nil {
			return nil, nil, err
		}
		indices[srcType] = append(indices[srcType], f.Indices)
	}

	uniqueIDs := make(map[string][]T, len(indices))
	compactedRuns := make(map[string][]T, len(indices))
	for _, ntype := range sortedKeys(indices) {
		u, c, err := UniqueAndCompact(ctx, flatten(indices[ntype]), uniqueDst[ntype], optFns...)
		if err != nil {
			return nil, nil, err
		}
		uniqueIDs[ntype] = u
		compactedRuns[ntype] = c
	}

	compacted := make(map[string]CSC[T], len(formats))
	for _, etype := range etypes {
		srcType, _, _, err := ParseEdgeType(etype)
		if err != nil {
			return nil, nil, err
		}
		f := formats[etype]
		n := len(f.Indices)
		compacted[etype] = CSC[T]{
			Indptr:  f.Indptr,
			Indices: compactedRuns[srcType][:n:n],
		}
		compactedRuns[srcType] = compactedRuns[srcType][n:]
	}

	return uniqueIDs, compacted, nil
}

// CompactCSC relabels CSC-form edge batches without deduplication: row c
// of the output id list is the c-th endpoint in (seeds, indices) order,
// and every index is rewritten to its own position. Duplicated endpoints
// stay duplicated, which is what link-prediction style samplers want.
func CompactCSC[T Signed](formats map[string]CSC[T], dstNodes map[string][]T) (map[string][]T, map[string]CSC[T], error) {
	rowIDs := make(map[string][]T, len(dstNodes))
	for ntype, nodes := range dstNodes {
		rowIDs[ntype] = append([]T(nil), nodes...)
	}

	compacted := make(map[string]CSC[T], len(formats))
	for _, etype := range sortedKeys(formats) {
		f := formats[etype]
		srcType, _, dstType, err := ParseEdgeType(etype)
		if err != nil {
			return nil, nil, err
		}
		if err := f.validate(len(dstNodes[dstType])); err != nil {
			return nil, nil, fmt.Errorf("edge type %q: %w", etype, err)
		}

		offset := len(rowIDs[srcType])
		indices := make([]T, len(f.Indices))
		for i := range indices {
			indices[i] = T(offset + i)
		}
		rowIDs[srcType] = append(rowIDs[srcType], f.Indices...)

		compacted[etype] = CSC[T]{
			Indptr:  f.Indptr,
			Indices: indices,
		}
	}

	return rowIDs, compacted, nil
}

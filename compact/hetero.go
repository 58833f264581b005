package compact

import (
	"context"
)

// UniqueAndCompactBatch compacts several id slices against one shared
// compact space. All slices are deduplicated together; the compacted
// output keeps the input split.
//
// This is the homogeneous-graph entry point: a sampler emits one id slice
// per hop and wants a single local index space for the whole minibatch.
func UniqueAndCompactBatch[T Signed](ctx context.Context, batches [][]T, optFns ...func(*Options)) (uniqueIDs []T, compacted [][]T, err error) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	flat := make([]T, 0, total)
	for _, b := range batches {
		flat = append(flat, b...)
	}

	uniqueIDs, flatCompacted, err := UniqueAndCompact(ctx, flat, nil, optFns...)
	if err != nil {
		return nil, nil, err
	}

	compacted = make([][]T, len(batches))
	off := 0
	for i, b := range batches {
		compacted[i] = flatCompacted[off : off+len(b) : off+len(b)]
		off += len(b)
	}

	return uniqueIDs, compacted, nil
}

// UniqueAndCompactTyped compacts node id slices per node type. Each type
// gets its own independent compact space starting at zero.
//
// This is the heterogeneous-graph entry point.
func UniqueAndCompactTyped[T Signed](ctx context.Context, nodes map[string][][]T, optFns ...func(*Options)) (map[string][]T, map[string][][]T, error) {
	uniqueIDs := make(map[string][]T, len(nodes))
	compacted := make(map[string][][]T, len(nodes))

	for ntype, batches := range nodes {
		u, c, err := UniqueAndCompactBatch(ctx, batches, optFns...)
		if err != nil {
			return nil, nil, err
		}
		uniqueIDs[ntype] = u
		compacted[ntype] = c
	}

	return uniqueIDs, compacted, nil
}

package compact

import (
	"context"

	"github.com/yxy235/graphbatch/internal/parallel"
)

// Options configures a compaction run.
type Options struct {
	// Grain is the minimum number of ids handled per worker chunk.
	// Defaults to parallel.DefaultGrain.
	Grain int
}

// WithGrain overrides the per-worker chunk size. Mainly useful in tests to
// force multi-goroutine execution on small inputs.
func WithGrain(grain int) func(*Options) {
	return func(o *Options) {
		o.Grain = grain
	}
}

// UniqueAndCompact deduplicates the identifiers in
// concat(uniqueDstIDs, indices) and relabels indices into the dense
// compact space.
//
// uniqueDstIDs must contain no duplicates (unchecked; a duplicate resolves
// to the first occurrence's id) and every id must be non-negative.
//
// Postconditions:
//   - uniqueIDs[0:len(uniqueDstIDs)] equals uniqueDstIDs in order.
//   - uniqueIDs holds every distinct input id exactly once.
//   - len(compacted) == len(indices) and
//     uniqueIDs[compacted[i]] == indices[i] for every i.
//
// The mapping for non-seed ids is consistent within a run but may differ
// between runs; which goroutine first inserts a given id is unspecified.
func UniqueAndCompact[T Signed](ctx context.Context, indices, uniqueDstIDs []T, optFns ...func(*Options)) (uniqueIDs, compacted []T, err error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	m, uniqueIDs, err := build(ctx, indices, uniqueDstIDs, opts.Grain)
	if err != nil {
		return nil, nil, err
	}

	compacted, err = mapIDs(ctx, m, indices, opts.Grain)
	if err != nil {
		return nil, nil, err
	}

	return uniqueIDs, compacted, nil
}

// build populates a fresh ConcurrentIDMap from concat(uniqueDstIDs,
// indices) and returns the ordered unique id sequence. The seed prefix is
// inserted with positional id suppliers so its order is exact regardless
// of scheduling; everything else draws from the shared counter. The
// errgroup Wait inside parallel.For is the build barrier: once build
// returns, the table is sealed and safe for concurrent read-only lookups.
func build[T Signed](ctx context.Context, indices, uniqueDstIDs []T, grain int) (*ConcurrentIDMap[T], []T, error) {
	numDst := len(uniqueDstIDs)
	total := numDst + len(indices)

	m := NewConcurrentIDMap[T](total)
	m.next.Store(int64(numDst))

	// Side array indexed by compact id, filled by whichever goroutine wins
	// each insertion. Compact ids never exceed the total input length, and
	// distinct winners write distinct elements.
	uniqueIDs := make([]T, total)

	err := parallel.For(ctx, numDst, grain, func(start, end int) error {
		for k := start; k < end; k++ {
			raw := uniqueDstIDs[k]
			pos := int64(k)
			id, inserted, err := m.InsertOrGet(raw, func() int64 { return pos })
			if err != nil {
				return err
			}
			if inserted {
				uniqueIDs[id] = raw
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = parallel.For(ctx, len(indices), grain, func(start, end int) error {
		for _, raw := range indices[start:end] {
			id, inserted, err := m.InsertOrGet(raw, m.NextID)
			if err != nil {
				return err
			}
			if inserted {
				uniqueIDs[id] = raw
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return m, uniqueIDs[:m.Size()], nil
}

// mapIDs gathers the compact id of every element of indices. Pure reads
// against a sealed table; each chunk writes an independent slice of the
// output.
func mapIDs[T Signed](ctx context.Context, m *ConcurrentIDMap[T], indices []T, grain int) ([]T, error) {
	compacted := make([]T, len(indices))

	err := parallel.For(ctx, len(indices), grain, func(start, end int) error {
		for i := start; i < end; i++ {
			id, err := m.Lookup(indices[i])
			if err != nil {
				return err
			}
			compacted[i] = T(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return compacted, nil
}

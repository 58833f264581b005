package graphbatch

import (
	"context"
	"fmt"

	"github.com/yxy235/graphbatch/compact"
)

// Options configures a dispatch-level compaction run.
type Options struct {
	logger  *Logger
	compact []func(*compact.Options)
}

// WithLogger emits a log event per compaction run.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) {
		o.logger = l
	}
}

// WithGrain overrides the per-worker chunk size of the underlying
// compaction; see compact.WithGrain.
func WithGrain(grain int) func(*Options) {
	return func(o *Options) {
		o.compact = append(o.compact, compact.WithGrain(grain))
	}
}

// UniqueAndCompact deduplicates concat(uniqueDstIDs, indices) and relabels
// indices into the dense compact space, dispatching on the id width at
// call time. indices and uniqueDstIDs must both be []int32 or both []int64;
// uniqueDstIDs may be nil, in which case it defaults to an empty slice of
// the indices width.
//
// The returned slices have the same dynamic type as the inputs. See
// compact.UniqueAndCompact for the width-specific contract.
func UniqueAndCompact(ctx context.Context, indices, uniqueDstIDs any, optFns ...func(*Options)) (uniqueIDs, compactedIndices any, err error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	switch idx := indices.(type) {
	case []int32:
		dst, err := seedsAs[int32](indices, uniqueDstIDs)
		if err != nil {
			return nil, nil, err
		}
		return dispatch(ctx, idx, dst, &opts)
	case []int64:
		dst, err := seedsAs[int64](indices, uniqueDstIDs)
		if err != nil {
			return nil, nil, err
		}
		return dispatch(ctx, idx, dst, &opts)
	default:
		return nil, nil, &ErrUnsupportedKeyType{Type: fmt.Sprintf("%T", indices)}
	}
}

func dispatch[T compact.Signed](ctx context.Context, indices, uniqueDstIDs []T, opts *Options) (any, any, error) {
	uniqueIDs, compacted, err := compact.UniqueAndCompact(ctx, indices, uniqueDstIDs, opts.compact...)
	if opts.logger != nil {
		opts.logger.LogCompact(ctx, len(uniqueDstIDs), len(indices), len(uniqueIDs), err)
	}
	if err != nil {
		return nil, nil, err
	}
	return uniqueIDs, compacted, nil
}

func seedsAs[T compact.Signed](indices, seeds any) ([]T, error) {
	if seeds == nil {
		return nil, nil
	}
	dst, ok := seeds.([]T)
	if !ok {
		return nil, &ErrKeyTypeMismatch{
			IndicesType: fmt.Sprintf("%T", indices),
			SeedsType:   fmt.Sprintf("%T", seeds),
		}
	}
	return dst, nil
}

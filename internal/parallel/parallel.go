// Package parallel provides chunked parallel iteration helpers used by the
// compaction and feature gather hot paths.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultGrain is the minimum chunk size per worker. Splitting finer than
// this costs more in scheduling than it gains in parallelism.
const DefaultGrain = 2048

// For runs fn over contiguous chunks of [0, n) using up to
// runtime.GOMAXPROCS(0) goroutines and blocks until every chunk has
// completed. The returned error is the first error produced by any chunk;
// Wait acts as a full synchronization barrier either way.
//
// Inputs smaller than grain run inline on the calling goroutine.
func For(ctx context.Context, n, grain int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if grain <= 0 {
		grain = DefaultGrain
	}
	if n <= grain {
		return fn(0, n)
	}

	workers := runtime.GOMAXPROCS(0)
	chunks := (n + grain - 1) / grain
	if chunks > workers {
		chunks = workers
	}
	chunkSize := (n + chunks - 1) / chunks

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			return fn(start, end)
		})
	}

	return g.Wait()
}

package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/yxy235/graphbatch/resource"
)

// MirrorOptions configures Mirror.
type MirrorOptions struct {
	// Concurrency is the maximum number of blobs copied in parallel.
	Concurrency int

	// Controller throttles fetch slots and IO bandwidth. Optional.
	Controller *resource.Controller

	// SkipExisting skips blobs that already exist in dst with the
	// same size.
	SkipExisting bool

	// Observe is called once per requested blob with the number of
	// bytes copied (0 when skipped) and the copy error, if any.
	// Optional; must be safe for concurrent calls.
	Observe func(name string, copied int64, err error)
}

// WithConcurrency sets the maximum number of parallel copies.
func WithConcurrency(n int) func(*MirrorOptions) {
	return func(o *MirrorOptions) {
		o.Concurrency = n
	}
}

// WithController attaches a resource controller to the mirror run.
func WithController(rc *resource.Controller) func(*MirrorOptions) {
	return func(o *MirrorOptions) {
		o.Controller = rc
	}
}

// WithSkipExisting skips blobs already present in the destination.
func WithSkipExisting(skip bool) func(*MirrorOptions) {
	return func(o *MirrorOptions) {
		o.SkipExisting = skip
	}
}

// WithObserver reports the outcome of every staged blob, typically for
// logging.
func WithObserver(fn func(name string, copied int64, err error)) func(*MirrorOptions) {
	return func(o *MirrorOptions) {
		o.Observe = fn
	}
}

// Mirror copies the named blobs from src to dst. It is used to stage
// remote dataset artifacts on local disk before they are memory-mapped.
// Copies run in parallel; the first error cancels the rest.
func Mirror(ctx context.Context, src, dst BlobStore, names []string, optFns ...func(*MirrorOptions)) error {
	opts := MirrorOptions{
		Concurrency:  4,
		SkipExisting: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := opts.Controller.AcquireFetch(gctx); err != nil {
				return err
			}
			defer opts.Controller.ReleaseFetch()

			copied, err := mirrorOne(gctx, src, dst, name, &opts)
			if opts.Observe != nil {
				opts.Observe(name, copied, err)
			}
			if err != nil {
				return fmt.Errorf("mirror %q: %w", name, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func mirrorOne(ctx context.Context, src, dst BlobStore, name string, opts *MirrorOptions) (int64, error) {
	srcBlob, err := src.Open(ctx, name)
	if err != nil {
		return 0, err
	}
	defer srcBlob.Close()

	if opts.SkipExisting {
		if existing, err := dst.Open(ctx, name); err == nil {
			same := existing.Size() == srcBlob.Size()
			existing.Close()
			if same {
				return 0, nil
			}
		} else if !errors.Is(err, ErrNotFound) {
			return 0, err
		}
	}

	r, err := srcBlob.ReadRange(ctx, 0, srcBlob.Size())
	if err != nil {
		return 0, err
	}
	defer r.Close()

	var reader io.Reader = r
	if opts.Controller != nil {
		reader = resource.NewRateLimitedReader(ctx, r, opts.Controller)
	}

	w, err := dst.Create(ctx, name)
	if err != nil {
		return 0, err
	}

	copied, err := io.Copy(w, reader)
	if err != nil {
		w.Close()
		return copied, err
	}
	return copied, w.Close()
}

package feature

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yxy235/graphbatch/blobstore"
	"github.com/yxy235/graphbatch/cache"
	"github.com/yxy235/graphbatch/internal/parallel"
)

// remoteGrain is the per-worker chunk size for remote row gathers.
// Remote reads are latency-bound, so chunks are much smaller than for
// in-memory gathers.
const remoteGrain = 64

// RemoteFeature serves rows straight from a blobstore without staging
// the file locally. Row gathers become ranged blob reads; with a block
// cache attached the reads go through a caching store, so hot rows are
// served from memory.
//
// Payload checksums are not validated at open, since that would read
// the whole remote file. Use Fetch for staged, checksummed access.
type RemoteFeature struct {
	blob   blobstore.Blob
	header Header
}

// RemoteOptions configures OpenRemote.
type RemoteOptions struct {
	// Cache routes reads through a block-level read cache.
	Cache cache.BlockCache

	// BlockSize is the cache block size in bytes. Defaults to 4KB.
	BlockSize int64
}

// WithRemoteCache attaches a block cache to the remote read path.
func WithRemoteCache(bc cache.BlockCache, blockSize int64) func(*RemoteOptions) {
	return func(o *RemoteOptions) {
		o.Cache = bc
		o.BlockSize = blockSize
	}
}

// OpenRemote opens the feature file stored under name in a blobstore.
// The file must be written with CompressionNone so rows are addressable
// by offset.
func OpenRemote(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*RemoteOptions)) (*RemoteFeature, error) {
	var opts RemoteOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Cache != nil {
		store = blobstore.NewCachingStore(store, opts.Cache, opts.BlockSize)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, headerSize)
	n, err := blob.ReadAt(ctx, buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		blob.Close()
		return nil, err
	}
	if n < headerSize {
		blob.Close()
		return nil, fmt.Errorf("%w: file smaller than header", ErrBadFormat)
	}

	h, err := decodeHeader(buf)
	if err != nil {
		blob.Close()
		return nil, err
	}
	if h.Compression != CompressionNone {
		blob.Close()
		return nil, fmt.Errorf("%w: cannot address rows in %s-compressed file", ErrBadFormat, h.Compression)
	}
	if blob.Size() < headerSize+h.PayloadSize {
		blob.Close()
		return nil, fmt.Errorf("%w: truncated payload", ErrBadFormat)
	}

	return &RemoteFeature{blob: blob, header: h}, nil
}

func (f *RemoteFeature) NumRows() int64 {
	return f.header.Rows
}

func (f *RemoteFeature) Dim() int {
	return f.header.Dim
}

func (f *RemoteFeature) DType() DType {
	return f.header.DType
}

func (f *RemoteFeature) Read(ctx context.Context, ids []int64) (*Array, error) {
	out := Empty(f.header.DType, len(ids), f.header.Dim)
	rs := int64(f.header.DType.Size() * f.header.Dim)

	err := parallel.For(ctx, len(ids), remoteGrain, func(start, end int) error {
		for i := start; i < end; i++ {
			id := ids[i]
			if id < 0 || id >= f.header.Rows {
				return &ErrRowOutOfRange{Row: id, NumRows: f.header.Rows}
			}
			if err := f.readFull(ctx, out.data[int64(i)*rs:int64(i+1)*rs], headerSize+id*rs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *RemoteFeature) ReadAll(ctx context.Context) (*Array, error) {
	buf := make([]byte, f.header.PayloadSize)
	if err := f.readFull(ctx, buf, headerSize); err != nil {
		return nil, err
	}
	return NewArray(f.header.DType, int(f.header.Rows), f.header.Dim, buf)
}

// Update is not supported; remote feature files are immutable.
func (f *RemoteFeature) Update(ctx context.Context, ids []int64, values *Array) error {
	return ErrReadOnly
}

func (f *RemoteFeature) Close() error {
	return f.blob.Close()
}

// readFull reads exactly len(p) bytes at off. Offsets are validated
// against the payload bounds before the call, so a short read means the
// backing blob changed underneath us.
func (f *RemoteFeature) readFull(ctx context.Context, p []byte, off int64) error {
	n, err := f.blob.ReadAt(ctx, p, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(p) {
		return fmt.Errorf("%w: short read at offset %d", ErrBadFormat, off)
	}
	return nil
}

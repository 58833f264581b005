package feature

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/yxy235/graphbatch/internal/hash"
	"github.com/yxy235/graphbatch/internal/mmap"
)

// DiskFeature serves a feature file through a memory mapping. Reads
// gather rows straight out of the mapped payload without loading the
// file into the heap.
//
// Only files written with CompressionNone can be mapped; compressed
// files must be loaded with ReadFile instead.
type DiskFeature struct {
	mu       sync.RWMutex
	m        *mmap.Mapping
	header   Header
	arr      *Array // view over the mapped payload
	writable bool
	closed   bool
}

// DiskOptions configures OpenDisk.
type DiskOptions struct {
	// Writable maps the file read-write so Update can patch rows in
	// place. Changes are flushed on Close.
	Writable bool

	// SkipChecksum skips payload validation at open. Useful for very
	// large files where the full scan is too expensive.
	SkipChecksum bool
}

// WithWritable maps the file read-write.
func WithWritable(writable bool) func(*DiskOptions) {
	return func(o *DiskOptions) {
		o.Writable = writable
	}
}

// WithSkipChecksum skips payload validation at open.
func WithSkipChecksum(skip bool) func(*DiskOptions) {
	return func(o *DiskOptions) {
		o.SkipChecksum = skip
	}
}

// OpenDisk memory-maps the feature file at path.
func OpenDisk(path string, optFns ...func(*DiskOptions)) (*DiskFeature, error) {
	var opts DiskOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var m *mmap.Mapping
	var err error
	if opts.Writable {
		m, err = mmap.OpenRW(path)
	} else {
		m, err = mmap.Open(path)
	}
	if err != nil {
		return nil, err
	}

	data := m.Bytes()
	h, err := decodeHeader(data)
	if err != nil {
		m.Close()
		return nil, err
	}
	if h.Compression != CompressionNone {
		m.Close()
		return nil, fmt.Errorf("%w: cannot map %s-compressed file", ErrBadFormat, h.Compression)
	}
	if int64(len(data)) < headerSize+h.PayloadSize {
		m.Close()
		return nil, fmt.Errorf("%w: truncated payload", ErrBadFormat)
	}

	region, err := m.Region(headerSize, int(h.PayloadSize))
	if err != nil {
		m.Close()
		return nil, err
	}
	payload := region.Bytes()

	if !opts.SkipChecksum && hash.CRC32C(payload) != h.Checksum {
		m.Close()
		return nil, ErrChecksum
	}

	// Row gathers are random access.
	_ = region.Advise(mmap.AccessRandom)

	arr, err := NewArray(h.DType, int(h.Rows), h.Dim, payload)
	if err != nil {
		m.Close()
		return nil, err
	}

	return &DiskFeature{
		m:        m,
		header:   h,
		arr:      arr,
		writable: opts.Writable,
	}, nil
}

func (f *DiskFeature) NumRows() int64 {
	return f.header.Rows
}

func (f *DiskFeature) Dim() int {
	return f.header.Dim
}

func (f *DiskFeature) DType() DType {
	return f.header.DType
}

func (f *DiskFeature) Read(ctx context.Context, ids []int64) (*Array, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, ErrClosed
	}
	return gatherRows(ctx, f.arr, ids)
}

func (f *DiskFeature) ReadAll(ctx context.Context) (*Array, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, ErrClosed
	}
	return f.arr.Clone(), nil
}

// Update patches rows in the mapped payload. The file must have been
// opened with WithWritable.
func (f *DiskFeature) Update(ctx context.Context, ids []int64, values *Array) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return ErrReadOnly
	}
	return scatterRows(ctx, f.arr, ids, values)
}

// Flush recomputes the payload checksum and syncs dirty pages to disk.
func (f *DiskFeature) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return nil
	}

	f.rewriteChecksum()
	return f.m.Flush()
}

// Close flushes pending updates and unmaps the file.
func (f *DiskFeature) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.writable {
		f.rewriteChecksum()
	}
	return f.m.Close()
}

// rewriteChecksum updates the header checksum to match the payload.
// Callers hold the write lock.
func (f *DiskFeature) rewriteChecksum() {
	sum := hash.CRC32C(f.arr.Bytes())
	f.header.Checksum = sum
	binary.LittleEndian.PutUint32(f.m.Bytes()[12:], sum)
}

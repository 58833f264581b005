package feature

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yxy235/graphbatch"
	"github.com/yxy235/graphbatch/blobstore"
	"github.com/yxy235/graphbatch/resource"
)

// Descriptor names one feature file of a dataset.
type Descriptor struct {
	Domain   Domain
	TypeName string
	Name     string

	// Path is the file path relative to the dataset root.
	Path string

	// InMemory loads the file into the heap instead of mapping it.
	// Required for compressed files.
	InMemory bool

	// Writable maps the file read-write. Ignored with InMemory.
	Writable bool
}

// Key returns the store key of the descriptor.
func (d Descriptor) Key() Key {
	return Key{Domain: d.Domain, TypeName: d.TypeName, Name: d.Name}
}

// Load opens the described feature files under root and registers them
// in a fresh store. On error, features opened so far are closed.
func Load(root string, descs []Descriptor) (*BasicStore, error) {
	store := NewBasicStore()

	for _, d := range descs {
		f, err := loadOne(root, d)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("load feature %s: %w", d.Key(), err)
		}
		store.Add(d.Key(), f)
	}

	return store, nil
}

func loadOne(root string, d Descriptor) (Feature, error) {
	path := filepath.Join(root, filepath.FromSlash(d.Path))

	if d.InMemory {
		arr, _, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		return NewMemoryFeature(arr), nil
	}

	return OpenDisk(path, WithWritable(d.Writable))
}

// FetchOptions configures Fetch.
type FetchOptions struct {
	// Controller throttles the staging copies. Optional.
	Controller *resource.Controller

	// Concurrency is the maximum number of files staged in parallel.
	Concurrency int

	// Logger emits one event per staged artifact. Optional.
	Logger *graphbatch.Logger
}

// WithFetchController attaches a resource controller.
func WithFetchController(rc *resource.Controller) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.Controller = rc
	}
}

// WithFetchConcurrency sets the staging parallelism.
func WithFetchConcurrency(n int) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.Concurrency = n
	}
}

// WithFetchLogger logs every staged artifact.
func WithFetchLogger(l *graphbatch.Logger) func(*FetchOptions) {
	return func(o *FetchOptions) {
		o.Logger = l
	}
}

// Fetch stages the described feature files from a remote store into
// localDir and loads them from there. Files already staged with the
// right size are not copied again.
func Fetch(ctx context.Context, src blobstore.BlobStore, localDir string, descs []Descriptor, optFns ...func(*FetchOptions)) (*BasicStore, error) {
	opts := FetchOptions{Concurrency: 4}
	for _, fn := range optFns {
		fn(&opts)
	}

	local, err := blobstore.NewLocalStore(localDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Path
	}

	mirrorOpts := []func(*blobstore.MirrorOptions){
		blobstore.WithConcurrency(opts.Concurrency),
		blobstore.WithController(opts.Controller),
	}
	if opts.Logger != nil {
		mirrorOpts = append(mirrorOpts, blobstore.WithObserver(func(name string, copied int64, err error) {
			opts.Logger.LogFetch(ctx, name, copied, err)
		}))
	}

	if err := blobstore.Mirror(ctx, src, local, names, mirrorOpts...); err != nil {
		return nil, err
	}

	return Load(local.Root(), descs)
}

package cache

import "context"

// CacheKind separates key spaces and tuning.
type CacheKind uint8

const (
	CacheKindUnknown  CacheKind = iota
	CacheKindFeature            // feature payload blocks
	CacheKindTopology           // graph topology blocks (indptr/indices)
	CacheKindManifest           // dataset manifests
	CacheKindBlob               // generic blob store blocks
)

// CacheKey must be stable across processes.
type CacheKey struct {
	Kind CacheKind
	// Path identifies the source artifact (blob name).
	Path string
	// Offset is a logical block identifier (block index within the artifact).
	Offset uint64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key CacheKey) (b []byte, ok bool)
	// Set caches a block. Implementations may copy or retain; caller must treat b as immutable.
	Set(ctx context.Context, key CacheKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key CacheKey) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}

// Package blobstore provides storage abstraction for dataset artifacts.
//
// BlobStore is the interface for reading and writing immutable dataset
// artifacts (feature payload files, graph topology partitions, dataset
// manifests). Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap-backed reads
//   - MemoryStore: In-memory store for tests
//   - CachingStore: Block-level read caching on top of another store
//   - s3.Store: Amazon S3 with range reads and parallel uploads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends.
// For remote backends, implement ReadRange for efficient partial reads
// so that feature slices can be fetched without downloading whole files.
package blobstore

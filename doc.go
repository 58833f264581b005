// Package graphbatch provides minibatch-construction primitives for
// graph-structured learning pipelines: concurrent deduplication and
// relabeling of sampled node identifiers, feature access for the
// resulting compact id spaces, and blob storage for dataset artifacts.
//
// The core operation is UniqueAndCompact, which maps arbitrary global
// node ids onto dense local indices while preserving the caller's seed
// order as the index prefix. Width-specific generic entry points live in
// the compact package; this package adds runtime dispatch over the
// supported integer widths:
//
//	unique, compacted, err := graphbatch.UniqueAndCompact(ctx, indices, seeds)
//
// Feature data for compacted minibatches is served by the feature
// package, backed either by memory, by memory-mapped local files, or by
// artifacts fetched through the blobstore package (local disk, S3,
// MinIO).
package graphbatch

// Package feature provides storage for dense node, edge, and graph
// features keyed by (domain, type, name).
//
// A Feature is a two-dimensional array of fixed-width rows addressed by
// row id. Reads gather arbitrary row sets, which is the access pattern
// of minibatch sampling: the sampled seed and neighbor ids of a batch
// are looked up against each registered feature.
//
// MemoryFeature keeps rows in a heap slice and supports in-place
// updates. DiskFeature memory-maps a feature file and serves reads
// zero-copy; files written with CompressionNone can also be opened
// writable for in-place updates. RemoteFeature gathers rows straight
// from a blobstore, optionally through a block cache, without staging
// the file locally.
//
// PartitionedFeature serves a partition of a larger feature: a bitmap
// records which global rows the partition owns, and ranks translate
// global ids to local rows.
package feature

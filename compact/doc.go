// Package compact implements concurrent deduplication and relabeling of
// node identifiers for minibatch construction.
//
// Sampled subgraphs reference nodes by arbitrary, possibly overlapping
// global identifiers. Downstream computation wants small contiguous local
// indices instead. UniqueAndCompact builds the unique id set and rewrites
// every reference into the dense [0, U) space in two phases: a parallel
// insert phase over a shared lock-free hash table, and a parallel read-only
// gather once the table is sealed.
//
// Seed (destination) identifiers keep their input order as the compact-id
// prefix [0, len(seeds)); every other identifier receives an id >= len(seeds)
// whose exact value is stable within a run but not across runs.
package compact

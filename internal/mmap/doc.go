// Package mmap provides memory-mapped file access for feature payloads
// and other large on-disk artifacts.
//
// A Mapping owns the mapped byte slice and is responsible for unmapping
// it on Close. Read-only mappings are the common case; OpenRW maps a
// file read-write so that in-place feature updates can be flushed back
// to disk with Flush.
//
// Regions are bounds-checked views into a Mapping that do not own the
// memory. They are used to expose the payload section of a feature file
// without copying.
package mmap

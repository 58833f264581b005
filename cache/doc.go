// Package cache provides block caches for remote artifact reads.
//
// Remote feature and topology files are read in fixed-size blocks; the
// caches here keep hot blocks in memory so repeated row lookups do not
// hit the backing store. Cached bytes can be charged against a global
// memory budget via resource.Controller.
package cache

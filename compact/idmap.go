package compact

import (
	"math/bits"
	"runtime"
	"sync/atomic"
)

// Signed is the set of integer widths node identifiers come in. The
// concrete width is chosen by the caller per invocation; see the root
// package for runtime dispatch.
type Signed interface {
	~int32 | ~int64
}

const (
	// emptyKey marks an unoccupied slot. Identifiers must be non-negative,
	// matching the id domain of graph datasets; -1 is reserved.
	emptyKey = int64(-1)

	// unpublished marks a slot whose owning inserter has claimed the key
	// but not yet published the compact id.
	unpublished = int64(-1)

	// spinBudget is how many empty reads a loser performs on an
	// unpublished slot before yielding the processor. Publication is one
	// counter increment plus one store away, so the wait is short.
	spinBudget = 64
)

// ConcurrentIDMap maps raw node identifiers to dense compact identifiers.
// It is an open-addressed table with atomic compare-and-swap insertion,
// safe for concurrent InsertOrGet during the build phase and concurrent
// Lookup after the build barrier. The table is created per invocation,
// never resized, and never reused.
//
// Keys and values are widened to int64 regardless of the instantiated
// width so that slot state fits the hardware CAS primitives.
type ConcurrentIDMap[T Signed] struct {
	keys   []atomic.Int64
	values []atomic.Int64
	mask   uint64
	next   atomic.Int64
}

// NewConcurrentIDMap creates a table sized for n distinct insertions at a
// load factor of at most 0.5: capacity is the next power of two at or
// above 2n.
func NewConcurrentIDMap[T Signed](n int) *ConcurrentIDMap[T] {
	capacity := nextPow2(2 * n)
	m := &ConcurrentIDMap[T]{
		keys:   make([]atomic.Int64, capacity),
		values: make([]atomic.Int64, capacity),
		mask:   uint64(capacity - 1),
	}
	// Single-threaded construction; plain stores are fine before the
	// table is shared.
	for i := range m.keys {
		m.keys[i].Store(emptyKey)
		m.values[i].Store(unpublished)
	}
	return m
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// mix64 is the splitmix64 finalizer. Raw node ids are often clustered
// (consecutive ranges per partition), so slots are spread by a full
// avalanche rather than masking the id directly.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// NextID draws a fresh compact id from the shared counter. It is the id
// supplier for identifiers outside the reserved seed prefix.
func (m *ConcurrentIDMap[T]) NextID() int64 {
	return m.next.Add(1) - 1
}

// InsertOrGet returns the compact id for raw, inserting it if absent.
// When the calling goroutine wins the insertion race it obtains the id
// from supply, publishes it, and returns inserted=true. Losers for the
// same key wait until the winner's publication is visible.
//
// supply runs at most once and only on the winning goroutine.
func (m *ConcurrentIDMap[T]) InsertOrGet(raw T, supply func() int64) (id int64, inserted bool, err error) {
	key := int64(raw)
	pos := mix64(uint64(key)) & m.mask
	delta := uint64(1)

	for probes := uint64(0); probes <= m.mask; probes++ {
		k := m.keys[pos].Load()
		if k == emptyKey {
			if m.keys[pos].CompareAndSwap(emptyKey, key) {
				id = supply()
				// Release store: pairs with the acquire load below and
				// in Lookup.
				m.values[pos].Store(id)
				return id, true, nil
			}
			// Lost the race for this slot; reread its owner.
			k = m.keys[pos].Load()
		}
		if k == key {
			return m.waitPublished(pos), false, nil
		}
		pos = (pos + delta) & m.mask
		delta++
	}

	return 0, false, ErrCapacityExceeded
}

// waitPublished spins until the slot's winner has stored the compact id.
func (m *ConcurrentIDMap[T]) waitPublished(pos uint64) int64 {
	spins := 0
	for {
		if v := m.values[pos].Load(); v != unpublished {
			return v
		}
		spins++
		if spins >= spinBudget {
			spins = 0
			runtime.Gosched()
		}
	}
}

// Lookup returns the compact id assigned to raw during the build phase.
// It must only be called after the build barrier; the table must cover
// raw, otherwise *ErrMissingID is returned.
func (m *ConcurrentIDMap[T]) Lookup(raw T) (int64, error) {
	key := int64(raw)
	pos := mix64(uint64(key)) & m.mask
	delta := uint64(1)

	for probes := uint64(0); probes <= m.mask; probes++ {
		k := m.keys[pos].Load()
		if k == emptyKey {
			return 0, &ErrMissingID{RawID: key}
		}
		if k == key {
			v := m.values[pos].Load()
			if v == unpublished {
				return 0, ErrInconsistentSlot
			}
			return v, nil
		}
		pos = (pos + delta) & m.mask
		delta++
	}

	return 0, &ErrMissingID{RawID: key}
}

// Size returns the number of compact ids handed out so far.
func (m *ConcurrentIDMap[T]) Size() int64 {
	return m.next.Load()
}

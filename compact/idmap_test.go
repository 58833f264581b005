package compact

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcurrentIDMap_InsertOrGet(t *testing.T) {
	m := NewConcurrentIDMap[int64](8)

	id, inserted, err := m.InsertOrGet(42, m.NextID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.Equal(t, int64(0), id)

	// Second insert of the same key returns the existing id.
	id, inserted, err = m.InsertOrGet(42, m.NextID)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, int64(0), id)

	id, inserted, err = m.InsertOrGet(7, m.NextID)
	require.NoError(t, err)
	require.True(t, inserted)
	require.Equal(t, int64(1), id)

	require.Equal(t, int64(2), m.Size())
}

func TestConcurrentIDMap_Lookup(t *testing.T) {
	m := NewConcurrentIDMap[int32](4)

	_, _, err := m.InsertOrGet(100, m.NextID)
	require.NoError(t, err)

	id, err := m.Lookup(100)
	require.NoError(t, err)
	require.Equal(t, int64(0), id)

	_, err = m.Lookup(999)
	var missing *ErrMissingID
	require.ErrorAs(t, err, &missing)
	require.Equal(t, int64(999), missing.RawID)
}

func TestConcurrentIDMap_CapacityExceeded(t *testing.T) {
	// Capacity 2: the third distinct key exhausts the probe sequence.
	m := NewConcurrentIDMap[int64](1)

	_, _, err := m.InsertOrGet(1, m.NextID)
	require.NoError(t, err)
	_, _, err = m.InsertOrGet(2, m.NextID)
	require.NoError(t, err)

	_, _, err = m.InsertOrGet(3, m.NextID)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestConcurrentIDMap_ConcurrentInsert(t *testing.T) {
	const (
		goroutines = 16
		numKeys    = 5000
	)

	m := NewConcurrentIDMap[int64](numKeys)

	// Every goroutine inserts the full overlapping key range, racing on
	// every slot.
	var wg sync.WaitGroup
	errCh := make(chan error, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := int64(0); k < numKeys; k++ {
				if _, _, err := m.InsertOrGet(k, m.NextID); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	require.Equal(t, int64(numKeys), m.Size())

	// The assignment must be a bijection onto [0, numKeys).
	seen := make(map[int64]int64, numKeys)
	for k := int64(0); k < numKeys; k++ {
		id, err := m.Lookup(k)
		require.NoError(t, err)
		require.GreaterOrEqual(t, id, int64(0))
		require.Less(t, id, int64(numKeys))
		prev, dup := seen[id]
		require.False(t, dup, "compact id %d assigned to both %d and %d", id, prev, k)
		seen[id] = k
	}
}

func TestConcurrentIDMap_SupplierRunsOnce(t *testing.T) {
	const goroutines = 8

	m := NewConcurrentIDMap[int64](4)

	var (
		mu    sync.Mutex
		calls int
		wg    sync.WaitGroup
	)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.InsertOrGet(77, func() int64 {
				mu.Lock()
				calls++
				mu.Unlock()
				return 0
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, calls)
}

package feature

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds features keyed by (domain, type, name).
type Store interface {
	// Feature returns the feature for key, or ErrNotFound.
	Feature(key Key) (Feature, error)

	// Keys returns the registered keys, sorted.
	Keys() []Key

	// Close closes all registered features.
	Close() error
}

// BasicStore is a map-backed Store.
type BasicStore struct {
	mu       sync.RWMutex
	features map[Key]Feature
}

// NewBasicStore creates an empty store.
func NewBasicStore() *BasicStore {
	return &BasicStore{
		features: make(map[Key]Feature),
	}
}

// Add registers a feature. Registering an existing key replaces the
// previous feature without closing it.
func (s *BasicStore) Add(key Key, f Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features[key] = f
}

// Feature returns the feature for key.
func (s *BasicStore) Feature(key Key) (Feature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.features[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return f, nil
}

// Keys returns the registered keys, sorted.
func (s *BasicStore) Keys() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]Key, 0, len(s.features))
	for k := range s.features {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Domain != keys[j].Domain {
			return keys[i].Domain < keys[j].Domain
		}
		if keys[i].TypeName != keys[j].TypeName {
			return keys[i].TypeName < keys[j].TypeName
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}

// Close closes all registered features. The first error is returned;
// remaining features are still closed.
func (s *BasicStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, f := range s.features {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.features = make(map[Key]Feature)
	return firstErr
}

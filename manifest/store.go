package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yxy235/graphbatch/blobstore"
)

// Store reads and writes manifests through a blobstore. Save writes the
// manifest under a fresh versioned name before moving the CURRENT
// pointer, so readers never observe a partially written manifest.
type Store struct {
	mu    sync.Mutex
	blobs blobstore.BlobStore
}

// NewStore creates a manifest store over the given blobstore.
func NewStore(blobs blobstore.BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Load reads the live manifest. When no manifest has been saved yet it
// returns an empty manifest with ID 0.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointer, err := s.readBlob(ctx, CurrentPointer)
	if errors.Is(err, blobstore.ErrNotFound) {
		return &Manifest{Version: CurrentVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := s.readBlob(ctx, string(bytes.TrimSpace(pointer)))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes m as the next manifest version and moves the CURRENT
// pointer to it. The manifest's Version, ID and CreatedAt are assigned
// here.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	m.ID++
	m.CreatedAt = time.Now().UTC()

	if err := m.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%06d.json", ManifestPrefix, m.ID)
	if err := s.blobs.Put(ctx, name, data); err != nil {
		return err
	}

	return s.blobs.Put(ctx, CurrentPointer, []byte(name))
}

func (s *Store) readBlob(ctx context.Context, name string) ([]byte, error) {
	b, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	return blobstore.ReadAll(ctx, b)
}

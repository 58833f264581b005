// Package manifest describes immutable dataset versions: which feature
// artifacts a dataset consists of and where they live relative to the
// dataset root.
//
// Manifests are written as versioned JSON blobs with a CURRENT pointer
// blob naming the live version. On a plain blobstore the pointer update
// is atomic per backend (rename locally); on the S3 commit store the
// pointer is maintained through the DynamoDB commit log.
package manifest

import (
	"fmt"
	"time"

	"github.com/yxy235/graphbatch/feature"
)

const (
	// ManifestPrefix prefixes versioned manifest blob names.
	ManifestPrefix = "MANIFEST"

	// CurrentPointer is the blob holding the name of the live manifest.
	CurrentPointer = "CURRENT"

	// CurrentVersion is the manifest format version this package writes.
	CurrentVersion = 1
)

// Manifest describes one version of a dataset.
type Manifest struct {
	Version   int           `json:"version"`
	ID        uint64        `json:"id"`
	Dataset   string        `json:"dataset"`
	CreatedAt time.Time     `json:"created_at"`
	Features  []FeatureInfo `json:"features"`
}

// FeatureInfo describes a single feature artifact.
type FeatureInfo struct {
	Domain   string `json:"domain"`
	TypeName string `json:"type,omitempty"`
	Name     string `json:"name"`

	// Path is the blob name relative to the dataset root.
	Path string `json:"path"`

	DType       string `json:"dtype"`
	Dim         int    `json:"dim"`
	Rows        int64  `json:"rows"`
	Compression string `json:"compression,omitempty"`

	// InMemory marks artifacts that must be decoded into the heap
	// instead of memory-mapped. Required for compressed payloads.
	InMemory bool `json:"in_memory,omitempty"`
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("manifest: unsupported version %d (expected %d)", m.Version, CurrentVersion)
	}

	seen := make(map[feature.Key]struct{}, len(m.Features))
	for _, fi := range m.Features {
		if fi.Name == "" {
			return fmt.Errorf("manifest: feature with empty name")
		}
		if fi.Path == "" {
			return fmt.Errorf("manifest: feature %s has no path", fi.Name)
		}
		d, err := feature.ParseDomain(fi.Domain)
		if err != nil {
			return fmt.Errorf("manifest: feature %s: %w", fi.Name, err)
		}
		key := feature.Key{Domain: d, TypeName: fi.TypeName, Name: fi.Name}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: duplicate feature %s", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Descriptors converts the manifest's feature entries into load
// descriptors for feature.Load and feature.Fetch.
func (m *Manifest) Descriptors() ([]feature.Descriptor, error) {
	descs := make([]feature.Descriptor, 0, len(m.Features))
	for _, fi := range m.Features {
		d, err := feature.ParseDomain(fi.Domain)
		if err != nil {
			return nil, fmt.Errorf("manifest: feature %s: %w", fi.Name, err)
		}
		descs = append(descs, feature.Descriptor{
			Domain:   d,
			TypeName: fi.TypeName,
			Name:     fi.Name,
			Path:     fi.Path,
			InMemory: fi.InMemory,
		})
	}
	return descs, nil
}

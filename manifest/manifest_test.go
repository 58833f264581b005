package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy235/graphbatch/blobstore"
	"github.com/yxy235/graphbatch/feature"
)

func testManifest() *Manifest {
	return &Manifest{
		Dataset: "ogbn-arxiv",
		Features: []FeatureInfo{
			{
				Domain: "node",
				Name:   "feat",
				Path:   "features/node_feat.gbft",
				DType:  "float32",
				Dim:    128,
				Rows:   169343,
			},
			{
				Domain:      "node",
				Name:        "label",
				Path:        "features/node_label.gbft",
				DType:       "int64",
				Dim:         1,
				Rows:        169343,
				Compression: "zstd",
				InMemory:    true,
			},
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStore(blobstore.NewMemoryStore())

	// Load before any save yields an empty manifest.
	m, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), m.ID)
	assert.Empty(t, m.Features)

	m = testManifest()
	require.NoError(t, s.Save(ctx, m))
	assert.Equal(t, uint64(1), m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ogbn-arxiv", got.Dataset)
	assert.Equal(t, m.Features, got.Features)
}

func TestStore_SaveAdvancesPointer(t *testing.T) {
	ctx := context.Background()
	s := NewStore(blobstore.NewMemoryStore())

	m := testManifest()
	require.NoError(t, s.Save(ctx, m))

	m.Features = m.Features[:1]
	require.NoError(t, s.Save(ctx, m))
	assert.Equal(t, uint64(2), m.ID)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
	assert.Len(t, got.Features, 1)
}

func TestManifest_Validate(t *testing.T) {
	m := testManifest()
	m.Version = CurrentVersion
	require.NoError(t, m.Validate())

	bad := testManifest()
	bad.Version = CurrentVersion
	bad.Features[0].Domain = "vertex"
	require.Error(t, bad.Validate())

	dup := testManifest()
	dup.Version = CurrentVersion
	dup.Features[1] = dup.Features[0]
	require.Error(t, dup.Validate())

	noPath := testManifest()
	noPath.Version = CurrentVersion
	noPath.Features[0].Path = ""
	require.Error(t, noPath.Validate())
}

func TestManifest_Descriptors(t *testing.T) {
	m := testManifest()

	descs, err := m.Descriptors()
	require.NoError(t, err)
	require.Len(t, descs, 2)

	assert.Equal(t, feature.Descriptor{
		Domain: feature.DomainNode,
		Name:   "feat",
		Path:   "features/node_feat.gbft",
	}, descs[0])
	assert.True(t, descs[1].InMemory)
}

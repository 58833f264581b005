package compact

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// HomoEdgeType is the canonical edge type used when a homogeneous graph is
// routed through the heterogeneous entry points.
const HomoEdgeType = "_N:_E:_N"

// Edges holds the endpoints of a batch of sampled edges of one edge type.
// Src[i] -> Dst[i] is one edge.
type Edges[T Signed] struct {
	Src []T
	Dst []T
}

// ParseEdgeType splits a canonical "src:relation:dst" edge type string.
func ParseEdgeType(etype string) (srcType, relation, dstType string, err error) {
	parts := strings.Split(etype, ":")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("compact: edge type %q is not in src:relation:dst form", etype)
	}
	return parts[0], parts[1], parts[2], nil
}

// UniqueAndCompactEdges compacts one homogeneous src/dst edge list.
// uniqueDst seeds the compact-id prefix; when nil it is computed as the
// sorted distinct values of dst.
func UniqueAndCompactEdges[T Signed](ctx context.Context, src, dst, uniqueDst []T, optFns ...func(*Options)) (uniqueIDs, compactedSrc, compactedDst []T, err error) {
	if uniqueDst == nil {
		uniqueDst = sortedUnique(dst)
	}

	indices := make([]T, 0, len(src)+len(dst))
	indices = append(indices, src...)
	indices = append(indices, dst...)

	uniqueIDs, compacted, err := UniqueAndCompact(ctx, indices, uniqueDst, optFns...)
	if err != nil {
		return nil, nil, nil, err
	}

	return uniqueIDs, compacted[:len(src):len(src)], compacted[len(src):], nil
}

// UniqueAndCompactPairs compacts node pairs per edge type and returns the
// unique nodes per node type. Endpoint ids of every edge type sharing a
// node type are compacted into that type's single space, so a node
// appearing as a source of one relation and a destination of another keeps
// one local index.
//
// uniqueDst optionally seeds the destination prefix per node type; missing
// or nil entries are computed from the observed destination nodes.
func UniqueAndCompactPairs[T Signed](ctx context.Context, pairs map[string]Edges[T], uniqueDst map[string][]T, optFns ...func(*Options)) (map[string][]T, map[string]Edges[T], error) {
	etypes := sortedKeys(pairs)

	// Segment endpoint ids per node type, sources before destinations,
	// edge types in sorted order. The same walk order is used to slice the
	// compacted output back apart.
	srcNodes := make(map[string][][]T)
	dstNodes := make(map[string][][]T)
	for _, etype := range etypes {
		srcType, _, dstType, err := ParseEdgeType(etype)
		if err != nil {
			return nil, nil, err
		}
		p := pairs[etype]
		srcNodes[srcType] = append(srcNodes[srcType], p.Src)
		dstNodes[dstType] = append(dstNodes[dstType], p.Dst)
	}

	ntypes := sortedKeyUnion(srcNodes, dstNodes)

	uniqueIDs := make(map[string][]T, len(ntypes))
	compactedSrc := make(map[string][]T, len(ntypes))
	compactedDst := make(map[string][]T, len(ntypes))

	for _, ntype := range ntypes {
		src := flatten(srcNodes[ntype])
		dst := flatten(dstNodes[ntype])

		seeds := uniqueDst[ntype]
		if seeds == nil {
			seeds = sortedUnique(dst)
		}

		u, cs, cd, err := UniqueAndCompactEdges(ctx, src, dst, seeds, optFns...)
		if err != nil {
			return nil, nil, err
		}
		uniqueIDs[ntype] = u
		compactedSrc[ntype] = cs
		compactedDst[ntype] = cd
	}

	// Map back, consuming the per-type compacted runs in the same order
	// they were appended.
	compactedPairs := make(map[string]Edges[T], len(pairs))
	for _, etype := range etypes {
		srcType, _, dstType, err := ParseEdgeType(etype)
		if err != nil {
			return nil, nil, err
		}
		n := len(pairs[etype].Src)
		compactedPairs[etype] = Edges[T]{
			Src: compactedSrc[srcType][:n:n],
			Dst: compactedDst[dstType][:n:n],
		}
		compactedSrc[srcType] = compactedSrc[srcType][n:]
		compactedDst[dstType] = compactedDst[dstType][n:]
	}

	return uniqueIDs, compactedPairs, nil
}

func flatten[T Signed](batches [][]T) []T {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	out := make([]T, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func sortedUnique[T Signed](ids []T) []T {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedKeyUnion[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	return sortedKeys(seen)
}

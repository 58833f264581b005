package compact

import "slices"

// AddReverseEdges appends the reversed edges onto a homogeneous edge
// batch, so that message passing can run in both directions over a
// sampled subgraph.
func AddReverseEdges[T Signed](edges Edges[T]) Edges[T] {
	src := make([]T, 0, 2*len(edges.Src))
	dst := make([]T, 0, 2*len(edges.Dst))
	src = append(append(src, edges.Src...), edges.Dst...)
	dst = append(append(dst, edges.Dst...), edges.Src...)
	return Edges[T]{Src: src, Dst: dst}
}

// AddReverseEdgesTyped appends reversed edges across edge types.
// reverseTypes maps an edge type to the type its reversed edges belong to;
// edge types without an entry are left untouched. Reversals are computed
// from the input batches, so mutually-reverse or cyclic mappings see the
// original edges, not each other's additions.
func AddReverseEdgesTyped[T Signed](edges map[string]Edges[T], reverseTypes map[string]string) map[string]Edges[T] {
	out := make(map[string]Edges[T], len(edges))
	for etype, e := range edges {
		out[etype] = Edges[T]{
			Src: slices.Clone(e.Src),
			Dst: slices.Clone(e.Dst),
		}
	}

	for _, etype := range sortedKeys(reverseTypes) {
		fwd, ok := edges[etype]
		if !ok {
			continue
		}
		rev := reverseTypes[etype]
		r := out[rev]
		r.Src = append(r.Src, fwd.Dst...)
		r.Dst = append(r.Dst, fwd.Src...)
		out[rev] = r
	}

	return out
}

package assembly

import (
	"github.com/golang/geo/s2"
)

// mergeMap maps a vertex to the canonical vertex it is merged into.
// Vertices not present in the map are their own representatives.
type mergeMap map[s2.Point]s2.Point

// buildMergeMap clusters the distinct edge endpoints: it finds the
// connected components of the graph whose edges join vertex pairs
// separated by at most the vertex merge radius (boundary inclusive),
// and picks a representative for each component.
//
// Representatives are existing input vertices rather than centroids.
// Recomputing a centroid after each merge can create brand new vertex
// pairs that themselves fall within the merge radius; sticking to an
// input vertex guarantees that all surviving vertices are separated by
// more than the merge radius. The cost is that chained merges can grow
// a cluster to roughly twice the radius in diameter.
//
// The component growth is a frontier expansion: every vertex enters the
// frontier at most once and is erased from the index when it does, so
// the traversal terminates without an iteration cap even though merges
// chain transitively. On return the index contains exactly the
// representatives, ready for edge splicing.
func (b *PolygonBuilder) buildMergeMap(index *pointIndex) mergeMap {
	vertices := b.distinctVertices()
	for _, p := range vertices {
		index.insert(p)
	}

	merged := make(mergeMap)
	var frontier []s2.Point
	for _, p := range vertices {
		if _, ok := merged[p]; ok {
			continue
		}
		// Grow a maximal mergeable component with p as representative.
		frontier = append(frontier[:0], p)
		for len(frontier) > 0 {
			q := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			for _, v := range index.queryCap(q) {
				if v == p {
					continue
				}
				// Erasing v ensures no vertex is merged twice.
				index.erase(v)
				frontier = append(frontier, v)
				merged[v] = p
			}
		}
	}
	return merged
}

// buildSnapMap moves every vertex to the center of its containing cell
// at the given level. It runs after radius clustering, discretizing the
// canonical vertex positions so that assembling the same geometry twice
// produces bit-identical output. The snap moves a vertex by at most
// half the max cell diagonal at that level, which the snap level choice
// keeps within the robustness radius.
func (b *PolygonBuilder) buildSnapMap(level int) mergeMap {
	merged := make(mergeMap)
	for _, p := range b.distinctVertices() {
		snapped := s2.CellFromPoint(p).ID().Parent(level).Point()
		if snapped != p {
			merged[p] = snapped
		}
	}
	return merged
}

// moveVertices rewrites every edge with at least one merged endpoint to
// use the canonical endpoints. Edges are erased and re-added through
// AddEdge so that XOR cancellation applies to edges that only become
// duplicates once their endpoints coincide.
func (b *PolygonBuilder) moveVertices(merged mergeMap) {
	if len(merged) == 0 {
		return
	}

	var edges []Edge
	for v0, vs := range b.edges {
		for _, v1 := range vs.vertices {
			_, ok0 := merged[v0]
			_, ok1 := merged[v1]
			if ok0 || ok1 {
				if !b.opts.UndirectedEdges || pointLess(v0, v1) {
					edges = append(edges, Edge{v0, v1})
				}
			}
		}
	}
	// Rewrite in the fixed edge ordering: the re-add order decides the
	// first-seen order of the canonical vertices, which in turn decides
	// where loop extraction starts.
	sortEdges(edges)

	for _, e := range edges {
		v0, v1 := e.V0, e.V1
		b.eraseEdge(v0, v1)
		if to, ok := merged[v0]; ok {
			v0 = to
		}
		if to, ok := merged[v1]; ok {
			v1 = to
		}
		b.AddEdge(v0, v1)
	}
}

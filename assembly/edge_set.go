package assembly

import (
	"sort"

	"github.com/golang/geo/s2"
)

// Edge is a directed edge between two points on the unit sphere.
type Edge struct {
	V0, V1 s2.Point
}

// pointLess is the fixed ordering used everywhere a set of points needs
// a deterministic order: lexicographic over the underlying vector.
func pointLess(a, b s2.Point) bool {
	return a.Cmp(b.Vector) < 0
}

// vertexSet is a multiset of points kept in the fixed point ordering.
// It holds the destination vertices of the edges leaving a common
// origin. Duplicates are permitted (parallel edges), and lookups are
// binary searches.
type vertexSet struct {
	vertices []s2.Point
}

func (vs *vertexSet) len() int { return len(vs.vertices) }

// search gives the index of the first element not less than p.
func (vs *vertexSet) search(p s2.Point) int {
	return sort.Search(len(vs.vertices), func(i int) bool {
		return vs.vertices[i].Cmp(p.Vector) >= 0
	})
}

// insert adds p, keeping the set ordered.
func (vs *vertexSet) insert(p s2.Point) {
	i := vs.search(p)
	vs.vertices = append(vs.vertices, s2.Point{})
	copy(vs.vertices[i+1:], vs.vertices[i:])
	vs.vertices[i] = p
}

// find gives the index of p, or len() if p is not present.
func (vs *vertexSet) find(p s2.Point) int {
	i := vs.search(p)
	if i < len(vs.vertices) && vs.vertices[i] == p {
		return i
	}
	return len(vs.vertices)
}

// erase removes the element at index i (one occurrence only).
func (vs *vertexSet) erase(i int) {
	if i >= 0 && i < len(vs.vertices) {
		vs.vertices = append(vs.vertices[:i], vs.vertices[i+1:]...)
	}
}

// sortPoints orders pts by the fixed point ordering.
func sortPoints(pts []s2.Point) {
	sort.Slice(pts, func(i, j int) bool { return pointLess(pts[i], pts[j]) })
}

// sortEdges orders edges by origin then destination in the fixed point
// ordering.
func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].V0 != edges[j].V0 {
			return pointLess(edges[i].V0, edges[j].V0)
		}
		return pointLess(edges[i].V1, edges[j].V1)
	})
}

// edgeSet maps each origin vertex to the set of destination vertices it
// has edges to. In undirected mode every edge is present under both of
// its endpoints, and the two siblings are always inserted and erased
// together.
type edgeSet map[s2.Point]*vertexSet

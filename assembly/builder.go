package assembly

import (
	"github.com/golang/geo/s2"
)

// PolygonBuilder accumulates edges and assembles them into loops or a
// polygon. It is configured once at construction; edges, loops and
// whole polygons can then be added incrementally. A single call to
// AssembleLoops or AssemblePolygon consumes the accumulated edges and
// produces the result together with any edges that could not be closed
// into a loop. The builder cannot resume incremental assembly after
// extraction, and is not safe for concurrent use.
type PolygonBuilder struct {
	opts  Options
	edges edgeSet

	// startingVertices records each vertex the first time an edge is
	// added at it. Loop extraction scans vertices in this order so that
	// results are reproducible for a given input order.
	startingVertices []s2.Point
}

// New creates a PolygonBuilder with the given options. Option problems
// are reported by the assembly calls, not here, so that construction
// cannot fail.
func New(opts Options) *PolygonBuilder {
	return &PolygonBuilder{
		opts:  opts,
		edges: make(edgeSet),
	}
}

// Options gives the options the builder was constructed with.
func (b *PolygonBuilder) Options() Options {
	return b.opts
}

// HasEdge reports whether the edge (v0, v1) is currently present.
func (b *PolygonBuilder) HasEdge(v0, v1 s2.Point) bool {
	if vs, ok := b.edges[v0]; ok {
		return vs.find(v1) != vs.len()
	}
	return false
}

// AddEdge adds the edge (v0, v1) to the accumulator. Degenerate edges
// (v0 == v1) are ignored. In XOR mode, adding an edge whose duplicate
// is already present cancels the pair instead. The return value
// indicates whether an edge is present in the accumulator afterwards
// that was not before.
func (b *PolygonBuilder) AddEdge(v0, v1 s2.Point) bool {
	if v0 == v1 {
		return false
	}
	// In undirected mode the sibling edge (v1, v0) is always stored
	// alongside (v0, v1), so this lookup also cancels same-direction
	// duplicates of undirected edges.
	if b.opts.XorEdges && b.HasEdge(v1, v0) {
		b.eraseEdge(v1, v0)
		return false
	}
	if _, ok := b.edges[v0]; !ok {
		b.edges[v0] = &vertexSet{}
		b.startingVertices = append(b.startingVertices, v0)
	}
	b.edges[v0].insert(v1)
	if b.opts.UndirectedEdges {
		if _, ok := b.edges[v1]; !ok {
			b.edges[v1] = &vertexSet{}
			b.startingVertices = append(b.startingVertices, v1)
		}
		b.edges[v1].insert(v0)
	}
	return true
}

// AddLoop adds the boundary edges of the loop. Holes are added in
// reversed order, so that a shared shell/hole boundary contributes the
// same directed edges twice and XORs away.
func (b *PolygonBuilder) AddLoop(loop *s2.Loop) {
	n := loop.NumVertices()
	if n == 0 {
		return
	}
	sign := loop.Sign()
	for i := n; i > 0; i-- {
		b.AddEdge(loop.Vertex(i%n), loop.Vertex(((i+sign)%n+n)%n))
	}
}

// AddPolygon adds the boundary edges of every loop of the polygon.
func (b *PolygonBuilder) AddPolygon(polygon *s2.Polygon) {
	for i := 0; i < polygon.NumLoops(); i++ {
		b.AddLoop(polygon.Loop(i))
	}
}

// eraseEdge removes one occurrence of the edge (v0, v1), together with
// its sibling in undirected mode. The edge must be present.
func (b *PolygonBuilder) eraseEdge(v0, v1 s2.Point) {
	if vs, ok := b.edges[v0]; ok {
		vs.erase(vs.find(v1))
		if vs.len() == 0 {
			delete(b.edges, v0)
		}
	}
	if b.opts.UndirectedEdges {
		if vs, ok := b.edges[v1]; ok {
			vs.erase(vs.find(v0))
			if vs.len() == 0 {
				delete(b.edges, v1)
			}
		}
	}
}

// allEdges gives a snapshot of the accumulated edges. In undirected
// mode each edge appears once, in its canonical direction.
func (b *PolygonBuilder) allEdges() []Edge {
	var out []Edge
	for v0, vs := range b.edges {
		for _, v1 := range vs.vertices {
			if !b.opts.UndirectedEdges || pointLess(v0, v1) {
				out = append(out, Edge{v0, v1})
			}
		}
	}
	return out
}

// distinctVertices gives every vertex that is an endpoint of an
// accumulated edge, in the fixed point ordering.
func (b *PolygonBuilder) distinctVertices() []s2.Point {
	seen := make(map[s2.Point]bool)
	var out []s2.Point
	add := func(p s2.Point) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for v0, vs := range b.edges {
		add(v0)
		for _, v1 := range vs.vertices {
			add(v1)
		}
	}
	sortPoints(out)
	return out
}

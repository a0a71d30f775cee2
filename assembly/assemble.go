package assembly

import (
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// nextVertex is the tie-break rule applied at every step of a loop
// walk: given the edge just traversed (v0, v1) and the candidate
// destinations of the edges leaving v1, it picks the destination making
// the sharpest left turn. Immediate backtracking to v0 is never chosen.
//
// It is a pure function of its arguments. The candidates must be in the
// fixed point ordering, which breaks exact geometric ties, so the
// choice at a junction of any degree is deterministic. Picking the
// leftmost turn keeps the walk on the boundary of the face to its left,
// which is what separates touching nested loops correctly instead of
// jumping between them.
func nextVertex(v0, v1 s2.Point, candidates []s2.Point) (s2.Point, bool) {
	var v2 s2.Point
	var found bool
	for _, v := range candidates {
		if v == v0 {
			continue
		}
		if !found || s2.OrderedCCW(v0, v2, v, v1) {
			v2 = v
		}
		found = true
	}
	return v2, found
}

// loopIsNormalized reports whether the loop encloses at most half the
// sphere, with slop proportional to the vertex count to keep exactly
// hemispherical loops from flapping between orientations.
func loopIsNormalized(l *s2.Loop) bool {
	return l.TurningAngle() >= -1e-14*float64(l.NumVertices())
}

// assembleLoop walks forward from the edge (v0, v1) until the path
// bites its own tail (yielding a loop) or every continuation has been
// exhausted (yielding nothing, with the dead-end edges reported as
// unused). Consumed dead-end edges are erased as the walk backtracks,
// so repeated calls always make progress.
func (b *PolygonBuilder) assembleLoop(v0, v1 s2.Point, unused *[]Edge) *s2.Loop {
	path := []s2.Point{v0, v1}
	pathIndex := map[s2.Point]int{v1: 1}

	for len(path) >= 2 {
		prev := path[len(path)-2]
		curr := path[len(path)-1]

		var candidates []s2.Point
		if vs, ok := b.edges[curr]; ok {
			candidates = vs.vertices
		}
		next, ok := nextVertex(prev, curr, candidates)
		if !ok {
			// Dead end: report the edge, remove it, backtrack.
			*unused = append(*unused, Edge{prev, curr})
			b.eraseEdge(prev, curr)
			delete(pathIndex, curr)
			path = path[:len(path)-1]
			continue
		}

		if at, seen := pathIndex[next]; seen {
			// The walk closed on itself. Any initial stretch before the
			// closing vertex is not part of the loop.
			path = path[at:]
			loop := s2.LoopFromPoints(append([]s2.Point(nil), path...))
			if b.opts.Validate {
				if loop.Validate() != nil || loopSelfIntersects(path) {
					b.rejectLoop(path, unused)
					b.eraseLoop(path)
					return nil
				}
			}
			if b.opts.UndirectedEdges && !loopIsNormalized(loop) {
				// The walk traced the loop clockwise; with undirected
				// edges still in place, retrace it the other way.
				return b.assembleLoop(path[1], path[0], unused)
			}
			return loop
		}
		pathIndex[next] = len(path)
		path = append(path, next)
	}
	return nil
}

// loopsCrossOrShareEdges reports whether any two of the loops have
// boundary edges that properly cross, or share an edge in either
// direction. The loops of a polygon may touch only at vertices; a
// shared edge means cancellation was expected but did not happen.
// Quadratic in the total edge count, which is acceptable at the loop
// counts this assembler produces.
func loopsCrossOrShareEdges(loops []*s2.Loop) bool {
	for i := 0; i < len(loops); i++ {
		for j := i + 1; j < len(loops); j++ {
			if loopPairCrosses(loops[i], loops[j]) {
				return true
			}
		}
	}
	return false
}

// loopSelfIntersects reports whether any two non-adjacent boundary
// edges of the loop through the given vertices properly cross.
// s2.Loop.Validate does not currently detect crossings between
// non-adjacent edges, so this check is applied alongside it.
func loopSelfIntersects(vertices []s2.Point) bool {
	n := len(vertices)
	for i := 0; i < n; i++ {
		a0, a1 := vertices[i], vertices[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				// Adjacent through the wraparound.
				continue
			}
			b0, b1 := vertices[j], vertices[(j+1)%n]
			if s2.CrossingSign(a0, a1, b0, b1) == s2.Cross {
				return true
			}
		}
	}
	return false
}

func loopPairCrosses(a, b *s2.Loop) bool {
	na, nb := a.NumVertices(), b.NumVertices()
	for i := 0; i < na; i++ {
		a0, a1 := a.Vertex(i), a.Vertex((i+1)%na)
		for j := 0; j < nb; j++ {
			b0, b1 := b.Vertex(j), b.Vertex((j+1)%nb)
			if (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0) {
				return true
			}
			if s2.CrossingSign(a0, a1, b0, b1) == s2.Cross {
				return true
			}
		}
	}
	return false
}

// eraseLoop removes the boundary edges of the loop through the given
// vertices from the accumulator.
func (b *PolygonBuilder) eraseLoop(vertices []s2.Point) {
	n := len(vertices)
	for i, j := n-1, 0; j < n; i, j = j, j+1 {
		b.eraseEdge(vertices[i], vertices[j])
	}
}

// rejectLoop reports the boundary edges of a rejected loop as unused.
func (b *PolygonBuilder) rejectLoop(vertices []s2.Point, unused *[]Edge) {
	n := len(vertices)
	for i, j := n-1, 0; j < n; i, j = j, j+1 {
		*unused = append(*unused, Edge{vertices[i], vertices[j]})
	}
}

// AssembleLoops consumes the accumulated edges and produces the maximal
// set of disjoint simple loops they form, together with the edges that
// could not be closed into any loop. Unused edges are expected for some
// inputs and are not an error; errors are reserved for invalid
// configuration and for iteration-cap exhaustion during splicing.
//
// Vertex merging, edge splicing and cell-center snapping run first,
// according to the options. The assembly is deterministic for a given
// configuration and input order.
func (b *PolygonBuilder) AssembleLoops() ([]*s2.Loop, []Edge, error) {
	if err := b.opts.check(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid builder options")
	}

	if b.opts.VertexMergeRadius > 0 {
		index := newPointIndex(b.opts.VertexMergeRadius, b.opts.EdgeSpliceFraction)
		b.moveVertices(b.buildMergeMap(index))
		if b.opts.EdgeSpliceFraction > 0 {
			if err := b.spliceEdges(index); err != nil {
				return nil, nil, err
			}
		}
	}
	// Snapping runs after merging and splicing so that clusters keep the
	// radius guarantee; it moves each canonical vertex by at most the
	// robustness radius on top of that.
	if level := b.opts.SnapLevel(); level >= 0 {
		b.moveVertices(b.buildSnapMap(level))
	}

	var (
		loops  []*s2.Loop
		unused []Edge
	)
	// Attempt a loop from every starting vertex in the order the
	// vertices were first seen. A vertex is only left behind once it
	// has no outgoing edges; every attempt either extracts a loop or
	// retires at least one edge, so this terminates.
	for i := 0; i < len(b.startingVertices); {
		v0 := b.startingVertices[i]
		vs, ok := b.edges[v0]
		if !ok {
			i++
			continue
		}
		v1 := vs.vertices[0]
		if loop := b.assembleLoop(v0, v1, &unused); loop != nil {
			loops = append(loops, loop)
			b.eraseLoop(loop.Vertices())
		}
	}
	return loops, unused, nil
}

// AssemblePolygon consumes the accumulated edges and produces a polygon
// whose shells are CCW and holes CW, together with the edges left over.
// This is intended for use with XOR options, so that boundaries shared
// between input shapes cancel. With Validate set, an output polygon
// that fails validation is an error, and its loop edges are reported as
// unused rather than returned as a broken polygon.
func (b *PolygonBuilder) AssemblePolygon() (*s2.Polygon, []Edge, error) {
	loops, unused, err := b.AssembleLoops()
	if err != nil {
		return nil, unused, err
	}

	// With undirected edges every assembled loop was normalized during
	// extraction; directed loops may come out clockwise.
	if !b.opts.UndirectedEdges {
		for _, loop := range loops {
			if !loopIsNormalized(loop) {
				loop.Invert()
			}
		}
	}

	if b.opts.Validate {
		for _, loop := range loops {
			err := loop.Validate()
			if err == nil && loopSelfIntersects(loop.Vertices()) {
				err = errors.New("loop boundary crosses itself")
			}
			if err != nil {
				for _, l := range loops {
					b.rejectLoop(l.Vertices(), &unused)
				}
				return nil, unused, errors.Wrap(err, "assembled loop failed validation")
			}
		}
		if loopsCrossOrShareEdges(loops) {
			for _, l := range loops {
				b.rejectLoop(l.Vertices(), &unused)
			}
			return nil, unused, errors.New("assembled loops cross or share edges")
		}
	}

	polygon := s2.PolygonFromLoops(loops)
	if b.opts.Validate {
		if err := polygon.Validate(); err != nil {
			for _, l := range loops {
				b.rejectLoop(l.Vertices(), &unused)
			}
			return nil, unused, errors.Wrap(err, "assembled polygon failed validation")
		}
	}
	return polygon, unused, nil
}

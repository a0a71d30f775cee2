package assembly

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/peterstace/sphereassembly/rtree"
)

// boxSlop absorbs the rounding difference between an angular tolerance
// and its chord-length conversion, so that exact-boundary candidates
// are never excluded by the box search. The exact angular comparison is
// always re-applied to each candidate.
const boxSlop = 1e-14

// chordLength converts an angular separation into the straight-line
// distance between two unit vectors separated by that angle.
func chordLength(angle s1.Angle) float64 {
	return 2 * math.Sin(math.Min(math.Pi, math.Max(0, angle.Radians()))/2)
}

// sagitta bounds how far a geodesic arc of the given length bulges away
// from its chord.
func sagitta(arc s1.Angle) float64 {
	return 1 - math.Cos(math.Min(math.Pi, arc.Radians())/2)
}

func pointBox(p s2.Point) rtree.Box {
	return rtree.Box{
		MinX: p.X, MinY: p.Y, MinZ: p.Z,
		MaxX: p.X, MaxY: p.Y, MaxZ: p.Z,
	}
}

func edgeBox(v0, v1 s2.Point) rtree.Box {
	return rtree.Box{
		MinX: math.Min(v0.X, v1.X),
		MinY: math.Min(v0.Y, v1.Y),
		MinZ: math.Min(v0.Z, v1.Z),
		MaxX: math.Max(v0.X, v1.X),
		MaxY: math.Max(v0.Y, v1.Y),
		MaxZ: math.Max(v0.Z, v1.Z),
	}
}

// pointIndex holds the candidate vertices for proximity queries during
// merging and splicing. Angular tolerances are converted to chord
// lengths for the box searches, and the exact angular test is applied
// to every candidate the boxes produce.
type pointIndex struct {
	tree         rtree.RTree
	points       []s2.Point
	ids          map[s2.Point]int
	vertexRadius s1.Angle
	edgeFraction float64
}

func newPointIndex(vertexRadius s1.Angle, edgeFraction float64) *pointIndex {
	return &pointIndex{
		ids:          make(map[s2.Point]int),
		vertexRadius: vertexRadius,
		edgeFraction: edgeFraction,
	}
}

// insert adds p to the index. Inserting a point that is already present
// is a no-op (the index has set semantics).
func (x *pointIndex) insert(p s2.Point) {
	if _, ok := x.ids[p]; ok {
		return
	}
	id := len(x.points)
	x.points = append(x.points, p)
	x.ids[p] = id
	x.tree.Insert(pointBox(p), id)
}

// erase removes p from the index if present.
func (x *pointIndex) erase(p s2.Point) {
	id, ok := x.ids[p]
	if !ok {
		return
	}
	x.tree.Delete(pointBox(p), id)
	delete(x.ids, p)
}

// queryCap gives the indexed points within the vertex radius of center,
// boundary included, in the fixed point ordering.
func (x *pointIndex) queryCap(center s2.Point) []s2.Point {
	margin := chordLength(x.vertexRadius)*(1+boxSlop) + boxSlop
	var out []s2.Point
	x.tree.RangeSearch(pointBox(center).Expand(margin), func(id int) error {
		p := x.points[id]
		if center.Distance(p) <= x.vertexRadius {
			out = append(out, p)
		}
		return nil
	})
	sortPoints(out)
	return out
}

// findNearbyEdgePoint finds an indexed point whose distance to the
// geodesic edge (v0, v1) is less than edgeFraction * vertexRadius and
// which is not equal to either endpoint. The closest such point is
// returned.
func (x *pointIndex) findNearbyEdgePoint(v0, v1 s2.Point) (s2.Point, bool) {
	margin := sagitta(v0.Distance(v1)) + chordLength(x.vertexRadius)*(1+boxSlop) + boxSlop
	var (
		best     s2.Point
		bestDist = 2 * x.vertexRadius
	)
	x.tree.RangeSearch(edgeBox(v0, v1).Expand(margin), func(id int) error {
		p := x.points[id]
		if p == v0 || p == v1 {
			return nil
		}
		if dist := s2.DistanceFromSegment(p, v0, v1); dist < bestDist {
			bestDist = dist
			best = p
		} else if dist == bestDist && pointLess(p, best) {
			// Geometric tie: fall back to the fixed point ordering so
			// the result does not depend on tree iteration order.
			best = p
		}
		return nil
	})
	return best, bestDist.Radians() < x.edgeFraction*x.vertexRadius.Radians()
}

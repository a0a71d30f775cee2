// Package assembly reconstructs simple closed loops and polygons on the
// unit sphere from an unordered collection of edges. Input edges may be
// noisy (endpoints perturbed away from their true positions) and
// redundant (shared boundaries between adjacent shapes appearing twice).
// Nearby vertices are merged within a configurable radius, vertices
// lying near an edge can be spliced into it, duplicate edges can be
// cancelled in pairs (XOR), and the surviving edges are walked into
// loops. Edges that cannot be closed into any loop are reported back to
// the caller rather than dropped.
package assembly

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// maxSpliceFraction is the largest edge splice fraction for which edge
// splicing is guaranteed to terminate (sqrt(3)/2). Above this value a
// splice can create two edges that are each close enough to further
// vertices to splice again without ever shrinking.
const maxSpliceFraction = 0.866

// Options configures a PolygonBuilder. The zero value is a directed,
// non-XOR, non-merging configuration; most callers should start from
// one of the DirectedXor, UndirectedXor or UndirectedUnion presets.
type Options struct {
	// UndirectedEdges treats each edge as an unordered vertex pair for
	// matching and cancellation purposes.
	UndirectedEdges bool

	// XorEdges removes pairs of edges connecting the same canonical
	// vertices instead of collapsing them, giving symmetric-difference
	// semantics for shared boundaries. An odd multiplicity leaves one
	// edge, an even multiplicity leaves none.
	XorEdges bool

	// Validate escalates internal invariant violations (degenerate or
	// self-intersecting loops, an invalid output polygon) to errors.
	// Without it the builder returns best-effort output and leaves the
	// sanity checking to the caller.
	Validate bool

	// VertexMergeRadius is the angular radius within which distinct
	// input vertices are unified. Zero disables merging entirely.
	VertexMergeRadius s1.Angle

	// EdgeSpliceFraction defines, as a fraction of VertexMergeRadius,
	// how close a vertex must be to an edge for the edge to be split
	// through that vertex. Zero disables splicing. Values above
	// maxSpliceFraction are a configuration error.
	EdgeSpliceFraction float64

	// SnapToCellCenters additionally snaps the canonical vertices to the
	// centers of their containing cells at SnapLevel after merging and
	// splicing. Snapped positions are drawn from a fixed discrete set,
	// so assembling the same geometry twice gives bit-identical vertices.
	// It requires a VertexMergeRadius of at least one leaf cell
	// diagonal; below that the snap pass is skipped.
	SnapToCellCenters bool
}

// DirectedXor are the options for assembling well-behaved input into
// polygons: all edges directed so that shells and holes have opposite
// orientations (CCW shells, CW holes), unless shells and holes are
// known not to share edges.
func DirectedXor() Options {
	return Options{
		XorEdges:           true,
		EdgeSpliceFraction: maxSpliceFraction,
	}
}

// UndirectedXor are the options for assembling polygons whose input
// does not follow the directed conventions, e.g. where edge directions
// vary within a single loop, or shells and holes share edges without
// opposite orientations.
func UndirectedXor() Options {
	return Options{
		UndirectedEdges:    true,
		XorEdges:           true,
		EdgeSpliceFraction: maxSpliceFraction,
	}
}

// UndirectedUnion are the options for extracting a collection of loops
// rather than a polygon, where edges may occur more than once and
// duplicates should collapse rather than cancel.
func UndirectedUnion() Options {
	return Options{
		UndirectedEdges:    true,
		EdgeSpliceFraction: maxSpliceFraction,
	}
}

// SetRobustnessRadius expresses the merge tolerance in terms of the
// maximum distance any vertex is allowed to move during assembly. It
// sets VertexMergeRadius to twice the given radius: a merged pair of
// vertices each move by at most half the merge radius.
func (o *Options) SetRobustnessRadius(radius s1.Angle) {
	o.VertexMergeRadius = 2 * radius
}

// RobustnessRadius is the maximum distance any vertex can move during
// assembly under the current options (half the vertex merge radius).
func (o *Options) RobustnessRadius() s1.Angle {
	return o.VertexMergeRadius / 2
}

// SnapLevel is the cell level used when SnapToCellCenters is enabled:
// the minimum (coarsest-fitting) level at which snapping a point to its
// cell center moves it by no more than the robustness radius. It
// returns -1 when snapping is disabled, or when the merge radius is too
// small for even leaf-level snapping to respect the budget; assembly
// then skips the snap pass.
func (o *Options) SnapLevel() int {
	if !o.SnapToCellCenters {
		return -1
	}
	// A point is at most half the max cell diagonal away from the
	// center of its containing cell.
	radius := o.VertexMergeRadius.Radians()
	level := s2.MaxDiagMetric.MinLevel(radius)
	if s2.MaxDiagMetric.Value(level) > radius {
		return -1
	}
	return level
}

// check validates the option set, returning a configuration error for
// contradictory or out-of-range settings. It runs before any geometry
// is processed.
func (o *Options) check() error {
	if o.VertexMergeRadius < 0 {
		return errors.Errorf("vertex merge radius must be non-negative, got %v", o.VertexMergeRadius)
	}
	if o.EdgeSpliceFraction < 0 || o.EdgeSpliceFraction > maxSpliceFraction {
		return errors.Errorf(
			"edge splice fraction must be in [0, %v], got %v",
			maxSpliceFraction, o.EdgeSpliceFraction)
	}
	if math.IsNaN(o.EdgeSpliceFraction) || math.IsNaN(o.VertexMergeRadius.Radians()) {
		return errors.New("tolerances must not be NaN")
	}
	return nil
}

package assembly

import (
	"github.com/pkg/errors"
)

// ErrSpliceLimit is returned when edge splicing fails to reach a fixed
// point within its iteration budget. This indicates tolerances that
// allow splits to cascade indefinitely (for example a splice fraction
// at the very edge of the termination bound combined with pathologically
// clustered input); the accumulated edges are left in a partially
// spliced state and no loops are extracted.
var ErrSpliceLimit = errors.New("edge splicing failed to converge")

// spliceIterationBudget bounds the total number of edges processed
// while splicing, as a function of the initial edge count. Every splice
// consumes one edge and pushes two halves, so a linear budget with
// generous headroom is only ever exhausted by runaway cascades.
func spliceIterationBudget(numEdges int) int {
	return 1000 + 100*numEdges
}

// spliceEdges splits edges through nearby vertices until no vertex lies
// within the splice threshold of a non-incident edge. Edges are kept on
// a worklist; each split pushes the two halves back for re-examination,
// since a half can itself pass near further vertices.
func (b *PolygonBuilder) spliceEdges(index *pointIndex) error {
	edges := b.allEdges()
	sortEdges(edges)
	return b.spliceEdgeList(index, edges, spliceIterationBudget(len(edges)))
}

// spliceEdgeList drains the worklist under the given budget. Split off
// from spliceEdges so the budget can be pinned in tests.
func (b *PolygonBuilder) spliceEdgeList(index *pointIndex, edges []Edge, budget int) error {
	for len(edges) > 0 {
		if budget == 0 {
			return ErrSpliceLimit
		}
		budget--

		e := edges[len(edges)-1]
		edges = edges[:len(edges)-1]

		// XOR cancellation can erase an edge before it is examined.
		if b.opts.XorEdges && !b.HasEdge(e.V0, e.V1) {
			continue
		}

		vmid, ok := index.findNearbyEdgePoint(e.V0, e.V1)
		if !ok {
			continue
		}

		b.eraseEdge(e.V0, e.V1)
		if b.AddEdge(e.V0, vmid) {
			edges = append(edges, Edge{e.V0, vmid})
		}
		if b.AddEdge(vmid, e.V1) {
			edges = append(edges, Edge{vmid, e.V1})
		}
	}
	return nil
}

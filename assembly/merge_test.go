package assembly

import (
	"testing"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"
)

func TestMergeMapInclusiveBoundary(t *testing.T) {
	a, b := ll(0, 0), ll(0, 1)
	d := a.Distance(b)

	builder := New(Options{VertexMergeRadius: d})
	builder.AddEdge(a, ll(10, 0))
	builder.AddEdge(b, ll(10, 20))

	merged := builder.buildMergeMap(newPointIndex(d, 0))
	require.Len(t, merged, 1)
	for from, to := range merged {
		require.Contains(t, []s2.Point{a, b}, from)
		require.Contains(t, []s2.Point{a, b}, to)
		require.NotEqual(t, from, to)
	}

	// Just under the separation nothing merges.
	builder = New(Options{VertexMergeRadius: d * 99 / 100})
	builder.AddEdge(a, ll(10, 0))
	builder.AddEdge(b, ll(10, 20))
	require.Empty(t, builder.buildMergeMap(newPointIndex(d*99/100, 0)))
}

func TestMergeMapChainsTransitively(t *testing.T) {
	// Three vertices in a row, each within the radius of the next but
	// the ends more than a radius apart. All three must end up in one
	// cluster with an input vertex as representative.
	p0, p1, p2 := ll(0, 0), ll(0, 1), ll(0, 2)
	radius := s1.Degree * 11 / 10

	builder := New(Options{VertexMergeRadius: radius})
	builder.AddEdge(p0, ll(30, 0))
	builder.AddEdge(p1, ll(30, 10))
	builder.AddEdge(p2, ll(30, 20))

	merged := builder.buildMergeMap(newPointIndex(radius, 0))
	require.Len(t, merged, 2)
	reps := make(map[s2.Point]bool)
	for from, to := range merged {
		require.Contains(t, []s2.Point{p0, p1, p2}, from)
		require.Contains(t, []s2.Point{p0, p1, p2}, to)
		reps[to] = true
	}
	require.Len(t, reps, 1)
}

func TestMergeClosesAlmostClosedLoop(t *testing.T) {
	// A square whose final edge stops half a degree short of the start.
	builder := New(Options{VertexMergeRadius: s1.Degree})
	builder.AddEdge(ll(0, 0), ll(0, 10))
	builder.AddEdge(ll(0, 10), ll(10, 10))
	builder.AddEdge(ll(10, 10), ll(10, 0))
	builder.AddEdge(ll(10, 0), ll(0, 0.5))

	loops, unused, err := builder.AssembleLoops()
	require.NoError(t, err)
	require.Len(t, loops, 1)
	require.Empty(t, unused)
	require.Equal(t, 4, loops[0].NumVertices())

	// Without merging the loop never closes.
	builder = New(Options{})
	builder.AddEdge(ll(0, 0), ll(0, 10))
	builder.AddEdge(ll(0, 10), ll(10, 10))
	builder.AddEdge(ll(10, 10), ll(10, 0))
	builder.AddEdge(ll(10, 0), ll(0, 0.5))

	loops, unused, err = builder.AssembleLoops()
	require.NoError(t, err)
	require.Empty(t, loops)
	require.Len(t, unused, 4)
}

func TestSnapMapUsesCellCenters(t *testing.T) {
	opts := Options{SnapToCellCenters: true}
	opts.SetRobustnessRadius(s1.Degree / 2)
	level := opts.SnapLevel()
	require.Greater(t, level, 0)

	builder := New(opts)
	builder.AddEdge(ll(0, 0), ll(0, 10))

	merged := builder.buildSnapMap(level)
	for from, to := range merged {
		require.Equal(t, s2.CellFromPoint(from).ID().Parent(level).Point(), to)
		require.LessOrEqual(t, from.Distance(to), opts.RobustnessRadius())
	}
}

func TestSnappedVerticesAreCellCenters(t *testing.T) {
	// With snapping on, every output vertex is drawn from the discrete
	// set of cell centers at the snap level, so assembling the same
	// geometry twice gives bit-identical output.
	opts := Options{SnapToCellCenters: true}
	opts.SetRobustnessRadius(s1.Degree)
	level := opts.SnapLevel()
	require.Greater(t, level, 0)

	b := New(opts)
	b.AddEdge(ll(3, 3), ll(3, 23))
	b.AddEdge(ll(3, 23), ll(23, 23))
	b.AddEdge(ll(23, 23), ll(3, 3))

	loops, unused, err := b.AssembleLoops()
	require.NoError(t, err)
	require.Len(t, loops, 1)
	require.Empty(t, unused)
	for _, v := range loops[0].Vertices() {
		require.Equal(t, s2.CellFromPoint(v).ID().Parent(level).Point(), v)
	}
}

func TestAssembleLoopsIdempotent(t *testing.T) {
	// Feeding assembled loops back through a builder with the same
	// options reproduces them exactly: all surviving vertices are
	// separated by more than the merge radius, so nothing moves.
	opts := UndirectedUnion()
	opts.VertexMergeRadius = s1.Degree / 2

	builder := New(opts)
	builder.AddEdge(ll(0, 0), ll(0, 10))
	builder.AddEdge(ll(0, 10), ll(10, 5))
	builder.AddEdge(ll(10, 5), ll(0, 0.2))

	loops, unused, err := builder.AssembleLoops()
	require.NoError(t, err)
	require.Len(t, loops, 1)
	require.Empty(t, unused)

	again := New(opts)
	for _, loop := range loops {
		again.AddLoop(loop)
	}
	loops2, unused2, err := again.AssembleLoops()
	require.NoError(t, err)
	require.Empty(t, unused2)
	require.Len(t, loops2, 1)
	require.True(t, loops[0].BoundaryEqual(loops2[0]))
}

package generate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/require"
)

func TestRandomFrameIsOrthonormal(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		f := RandomFrame(rnd)
		require.InDelta(t, 1, f.X.Norm(), 1e-14)
		require.InDelta(t, 1, f.Y.Norm(), 1e-14)
		require.InDelta(t, 1, f.Z.Norm(), 1e-14)
		require.InDelta(t, 0, f.X.Dot(f.Y.Vector), 1e-14)
		require.InDelta(t, 0, f.Y.Dot(f.Z.Vector), 1e-14)
		require.InDelta(t, 0, f.Z.Dot(f.X.Vector), 1e-14)
		// Right-handed.
		require.InDelta(t, 1, f.X.Cross(f.Y.Vector).Dot(f.Z.Vector), 1e-14)
	}
}

func TestFrameTransformRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	for i := 0; i < 50; i++ {
		f := RandomFrame(rnd)
		p := RandomPoint(rnd)
		back := f.Untransform(f.Transform(p))
		require.InDelta(t, 0, p.Distance(back).Radians(), 1e-14)
	}
}

func TestSamplePointInCapStaysInside(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	center := RandomPoint(rnd)
	radius := 3 * s1.Degree
	for i := 0; i < 200; i++ {
		p := SamplePointInCap(rnd, center, radius)
		require.LessOrEqual(t, center.Distance(p).Radians(), radius.Radians()+1e-14)
	}
}

func TestSamplePointInCapRespectsTinyRadius(t *testing.T) {
	// Cap depths far below the ulp of 1 must still confine samples: a
	// height computed as 1 - u*(1-cos r) rounds to the nearest ulp and
	// scatters samples ~1.5e-8 rad from the center no matter how small
	// the radius is.
	rnd := rand.New(rand.NewSource(15))
	center := RandomPoint(rnd)
	radius := s1.Angle(1e-8)
	for i := 0; i < 10000; i++ {
		p := SamplePointInCap(rnd, center, radius)
		require.LessOrEqual(t, center.Distance(p).Radians(), radius.Radians()*(1+1e-3))
	}
}

func TestPerturbZeroRadiusIsIdentity(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	p := RandomPoint(rnd)
	require.Equal(t, p, Perturb(rnd, p, 0))
}

func TestRegularLoop(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	center := RandomPoint(rnd)
	radius := 10 * s1.Degree
	points := RegularLoop(center, radius, 16)
	require.Len(t, points, 16)
	for _, p := range points {
		require.InDelta(t, radius.Radians(), center.Distance(p).Radians(), 1e-12)
	}
}

func TestSmallFractionRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	sawZero := false
	for i := 0; i < 500; i++ {
		f := SmallFraction(rnd)
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
		if f == 0 {
			sawZero = true
		}
	}
	require.True(t, sawZero)
}

func TestPerlinSampleIsBoundedAndSmooth(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	noise := NewPerlinGenerator(rnd, -5, -5, 5, 5)
	prev := noise.Sample(-4, 0.5)
	for x := -4.0; x < 4; x += 0.01 {
		v := noise.Sample(x, 0.5)
		require.LessOrEqual(t, math.Abs(v), 1.0)
		require.Less(t, math.Abs(v-prev), 0.1)
		prev = v
	}
}

func TestWobblyLoopVertexCount(t *testing.T) {
	rnd := rand.New(rand.NewSource(14))
	points := WobblyLoop(rnd, 20, 30, 5, 24, 1)
	require.Len(t, points, 24)
	for _, p := range points {
		require.InDelta(t, 1, p.Norm(), 1e-14)
	}
}

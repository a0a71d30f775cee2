// Package generate produces deterministic random spherical test data.
// Every generator takes an explicit *rand.Rand so that callers (tests,
// the gen tool) control seeding; nothing in this package touches
// process-wide random state.
package generate

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Frame is a right-handed orthonormal basis for the sphere. Rotating
// test geometry through a random frame exercises code paths that
// depend on coordinate ordering without changing the geometry's shape.
type Frame struct {
	X, Y, Z s2.Point
}

// RandomFrame gives a uniformly distributed random frame.
func RandomFrame(rnd *rand.Rand) Frame {
	x := RandomPoint(rnd)
	y := s2.Point{Vector: x.Cross(RandomPoint(rnd).Vector).Normalize()}
	z := s2.Point{Vector: x.Cross(y.Vector).Normalize()}
	return Frame{X: x, Y: y, Z: z}
}

// Transform expresses p (given in frame coordinates) in world
// coordinates.
func (f Frame) Transform(p s2.Point) s2.Point {
	v := f.X.Mul(p.X).Add(f.Y.Mul(p.Y)).Add(f.Z.Mul(p.Z))
	return s2.Point{Vector: v.Normalize()}
}

// Untransform expresses the world coordinate point p in frame
// coordinates. It is the inverse of Transform.
func (f Frame) Untransform(p s2.Point) s2.Point {
	v := r3.Vector{
		X: f.X.Dot(p.Vector),
		Y: f.Y.Dot(p.Vector),
		Z: f.Z.Dot(p.Vector),
	}
	return s2.Point{Vector: v.Normalize()}
}

// RandomPoint gives a point uniformly distributed over the sphere.
func RandomPoint(rnd *rand.Rand) s2.Point {
	z := 2*rnd.Float64() - 1
	theta := 2 * math.Pi * rnd.Float64()
	r := math.Sqrt(1 - z*z)
	return s2.Point{Vector: r3.Vector{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: z,
	}}
}

// SamplePointInCap gives a point uniformly distributed over the
// spherical cap with the given center and angular radius.
func SamplePointInCap(rnd *rand.Rand, center s2.Point, radius s1.Angle) s2.Point {
	// Uniform in the height coordinate along the cap axis. The height is
	// tracked as the distance d below the apex rather than as 1-d: for
	// tiny caps the cap depth vanishes next to the ulp of 1, and rounding
	// through 1-d would throw samples far outside the requested radius.
	sinHalf := math.Sin(radius.Radians() / 2)
	d := rnd.Float64() * 2 * sinHalf * sinHalf
	h := 1 - d
	s := math.Sqrt(d * (2 - d))
	theta := 2 * math.Pi * rnd.Float64()

	u := s2.Point{Vector: center.Ortho()}
	v := s2.Point{Vector: center.Cross(u.Vector)}
	w := center.Mul(h).
		Add(u.Mul(s * math.Cos(theta))).
		Add(v.Mul(s * math.Sin(theta)))
	return s2.Point{Vector: w.Normalize()}
}

// Perturb displaces p by a random offset of at most maxPerturb. A zero
// perturbation radius returns p unchanged.
func Perturb(rnd *rand.Rand, p s2.Point, maxPerturb s1.Angle) s2.Point {
	if maxPerturb == 0 {
		return p
	}
	return SamplePointInCap(rnd, p, maxPerturb)
}

// OneIn gives true with probability 1/n.
func OneIn(rnd *rand.Rand, n int) bool {
	return rnd.Intn(n) == 0
}

// SmallFraction gives a fraction in [0, 1) where small values are much
// more likely: exactly zero about a third of the time, uniform a third
// of the time, and log-uniform over many orders of magnitude otherwise.
// Useful for sweeping tolerance parameters across scales.
func SmallFraction(rnd *rand.Rand) float64 {
	r := rnd.Float64()
	u := rnd.Float64()
	if r < 0.3 {
		return 0.0
	}
	if r < 0.6 {
		return u
	}
	return math.Pow(1e-10, u)
}

package generate

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// RegularLoop computes the vertices of a regular spherical polygon:
// sides vertices equally spaced around the circle with the given center
// and angular radius, in CCW order viewed from outside the sphere.
// Sides must be at least 3 or it will panic.
func RegularLoop(center s2.Point, radius s1.Angle, sides int) []s2.Point {
	if sides <= 2 {
		panic(sides)
	}
	u := s2.Point{Vector: center.Ortho()}
	v := s2.Point{Vector: center.Cross(u.Vector)}
	h := math.Cos(radius.Radians())
	s := math.Sin(radius.Radians())

	points := make([]s2.Point, sides)
	for i := 0; i < sides; i++ {
		angle := math.Pi/2 + float64(i)/float64(sides)*2*math.Pi
		w := center.Mul(h).
			Add(u.Mul(s * math.Cos(angle))).
			Add(v.Mul(s * math.Sin(angle)))
		points[i] = s2.Point{Vector: w.Normalize()}
	}
	return points
}

package generate

import (
	"math"
	"math/rand"

	"github.com/golang/geo/s2"
)

// PerlinGenerator produces smooth pseudo-random noise over a rectangle
// of the lat/lng plane. Nearby samples get nearby values, which makes
// it useful for perturbing loop vertices organically: the boundary
// wobbles rather than jitters.
type PerlinGenerator struct {
	minX, minY int
	gradients  [][]gradient
}

type gradient struct {
	x, y float64
}

// NewPerlinGenerator seeds a noise field covering the given rectangle.
// Samples outside the rectangle panic.
func NewPerlinGenerator(rnd *rand.Rand, minX, minY, maxX, maxY float64) PerlinGenerator {
	loX := int(math.Floor(minX))
	loY := int(math.Floor(minY))
	hiX := int(math.Ceil(maxX))
	hiY := int(math.Ceil(maxY))

	gradients := make([][]gradient, hiX-loX+1)
	for i := range gradients {
		gradients[i] = make([]gradient, hiY-loY+1)
		for j := range gradients[i] {
			angle := 2 * math.Pi * rnd.Float64()
			gradients[i][j] = gradient{math.Cos(angle), math.Sin(angle)}
		}
	}
	return PerlinGenerator{minX: loX, minY: loY, gradients: gradients}
}

// Sample gives the noise value at (x, y), in the range [-1, 1].
func (p PerlinGenerator) Sample(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)

	dx := x - x0
	dy := y - y0

	i := int(x0) - p.minX
	j := int(y0) - p.minY

	s := p.dotGridGradient(i, j, dx, dy)
	t := p.dotGridGradient(i+1, j, dx-1, dy)
	u := p.dotGridGradient(i, j+1, dx, dy-1)
	v := p.dotGridGradient(i+1, j+1, dx-1, dy-1)

	fx := fade(dx)
	fy := fade(dy)
	return lerp(lerp(s, t, fx), lerp(u, v, fx), fy)
}

func (p PerlinGenerator) dotGridGradient(i, j int, dx, dy float64) float64 {
	g := p.gradients[i][j]
	return g.x*dx + g.y*dy
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// WobblyLoop computes a loop of sides vertices around the circle of the
// given radius (degrees) centered at (latDeg, lngDeg) in the lat/lng
// plane, with each vertex displaced by smooth noise of amplitude
// wobbleDeg. The result is not guaranteed to be simple for large
// amplitudes.
func WobblyLoop(rnd *rand.Rand, latDeg, lngDeg, radiusDeg float64, sides int, wobbleDeg float64) []s2.Point {
	if sides <= 2 {
		panic(sides)
	}
	pad := radiusDeg + wobbleDeg + 1
	latNoise := NewPerlinGenerator(rnd, latDeg-pad, lngDeg-pad, latDeg+pad, lngDeg+pad)
	lngNoise := NewPerlinGenerator(rnd, latDeg-pad, lngDeg-pad, latDeg+pad, lngDeg+pad)

	points := make([]s2.Point, sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		lat := latDeg + radiusDeg*math.Sin(angle)
		lng := lngDeg + radiusDeg*math.Cos(angle)
		lat += wobbleDeg * latNoise.Sample(lat, lng)
		lng += wobbleDeg * lngNoise.Sample(lat, lng)
		points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	}
	return points
}

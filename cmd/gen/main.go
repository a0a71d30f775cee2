// Command gen emits random spherical test geometries as chain text
// (comma separated lat:lng pairs in degrees), one geometry per line.
// Useful for producing fixtures and fuzz corpora for the assembly
// package.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/peterstace/sphereassembly/assembly"
	"github.com/peterstace/sphereassembly/generate"
)

func main() {
	kind := flag.String("kind", "loop", "geometry kind: point, chain, loop, wobbly")
	count := flag.Int("n", 1, "number of geometries to emit")
	sides := flag.Int("sides", 12, "vertices per loop or chain")
	radiusDeg := flag.Float64("radius", 5.0, "loop radius in degrees")
	wobbleDeg := flag.Float64("wobble", 1.0, "noise amplitude in degrees (wobbly only)")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		line, err := emit(rnd, *kind, *sides, *radiusDeg, *wobbleDeg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(line)
	}
}

func emit(rnd *rand.Rand, kind string, sides int, radiusDeg, wobbleDeg float64) (string, error) {
	switch kind {
	case "point":
		return assembly.PointString(generate.RandomPoint(rnd)), nil
	case "chain":
		points := make([]s2.Point, sides)
		for i := range points {
			points[i] = generate.RandomPoint(rnd)
		}
		return assembly.ChainString(points), nil
	case "loop":
		center := generate.RandomPoint(rnd)
		radius := s1.Angle(radiusDeg) * s1.Degree
		return assembly.ChainString(generate.RegularLoop(center, radius, sides)), nil
	case "wobbly":
		ll := s2.LatLngFromPoint(generate.RandomPoint(rnd))
		points := generate.WobblyLoop(rnd,
			ll.Lat.Degrees(), ll.Lng.Degrees(),
			radiusDeg, sides, wobbleDeg)
		return assembly.ChainString(points), nil
	default:
		return "", fmt.Errorf("unknown kind: %q", kind)
	}
}

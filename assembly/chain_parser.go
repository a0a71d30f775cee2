package assembly

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// Chain text is a comma separated list of colon separated
// latitude:longitude pairs in degrees, e.g. "0:0, 0:10, 10:5". It is
// the exchange format used by the generator tool and throughout the
// test suite: compact enough to write fixtures by hand, and close
// enough to how humans think about small test geometries.

// ParsePoint parses a single "lat:lng" token into a point on the unit
// sphere.
func ParsePoint(str string) (s2.Point, error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 2 {
		return s2.Point{}, errors.Errorf("expected lat:lng but encountered %q", str)
	}
	lat, err := parseDegrees(parts[0])
	if err != nil {
		return s2.Point{}, err
	}
	lng, err := parseDegrees(parts[1])
	if err != nil {
		return s2.Point{}, err
	}
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng)), nil
}

func parseDegrees(tok string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, errors.Errorf("invalid numeric literal: %q", tok)
	}
	// NaNs and Infs are never meaningful as coordinates.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("non-finite numeric literal: %q", tok)
	}
	return f, nil
}

// ParseChain parses chain text into its sequence of points. An empty
// string parses to an empty chain.
func ParseChain(str string) ([]s2.Point, error) {
	if strings.TrimSpace(str) == "" {
		return nil, nil
	}
	toks := strings.Split(str, ",")
	points := make([]s2.Point, len(toks))
	for i, tok := range toks {
		p, err := ParsePoint(tok)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// ParseLoop parses chain text as a closed loop. The closing edge back
// to the first vertex is implied and must not be written out.
func ParseLoop(str string) (*s2.Loop, error) {
	points, err := ParseChain(str)
	if err != nil {
		return nil, err
	}
	if len(points) < 3 {
		return nil, errors.Errorf("loop needs at least 3 vertices, got %d", len(points))
	}
	return s2.LoopFromPoints(points), nil
}

// PointString formats a point as a "lat:lng" token in degrees.
func PointString(p s2.Point) string {
	ll := s2.LatLngFromPoint(p)
	return fmt.Sprintf("%.7g:%.7g", ll.Lat.Degrees(), ll.Lng.Degrees())
}

// ChainString formats points as chain text.
func ChainString(points []s2.Point) string {
	toks := make([]string, len(points))
	for i, p := range points {
		toks[i] = PointString(p)
	}
	return strings.Join(toks, ", ")
}

// LoopString formats the vertices of a loop as chain text (without
// repeating the first vertex).
func LoopString(loop *s2.Loop) string {
	return ChainString(loop.Vertices())
}

package rtree

import "math"

// Box is an axis-aligned box in 3D space.
type Box struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Expand gives a box grown by the given margin in every direction.
func (b Box) Expand(margin float64) Box {
	return Box{
		MinX: b.MinX - margin, MinY: b.MinY - margin, MinZ: b.MinZ - margin,
		MaxX: b.MaxX + margin, MaxY: b.MaxY + margin, MaxZ: b.MaxZ + margin,
	}
}

// combine gives the smallest box containing both input boxes.
func combine(box1, box2 Box) Box {
	return Box{
		MinX: math.Min(box1.MinX, box2.MinX),
		MinY: math.Min(box1.MinY, box2.MinY),
		MinZ: math.Min(box1.MinZ, box2.MinZ),
		MaxX: math.Max(box1.MaxX, box2.MaxX),
		MaxY: math.Max(box1.MaxY, box2.MaxY),
		MaxZ: math.Max(box1.MaxZ, box2.MaxZ),
	}
}

func overlap(box1, box2 Box) bool {
	return true &&
		box1.MinX <= box2.MaxX && box1.MaxX >= box2.MinX &&
		box1.MinY <= box2.MaxY && box1.MaxY >= box2.MinY &&
		box1.MinZ <= box2.MaxZ && box1.MaxZ >= box2.MinZ
}

// area gives the surface area of the box. Surface area rather than
// volume is used for the insert and split heuristics: boxes bounding
// points or short segments are degenerate in one or more dimensions,
// and their volumes would all compare as zero.
func area(box Box) float64 {
	dx := box.MaxX - box.MinX
	dy := box.MaxY - box.MinY
	dz := box.MaxZ - box.MinZ
	return 2 * (dx*dy + dy*dz + dz*dx)
}

// enlargement gives the additional area that the existing box would
// need to take on in order to contain the new box.
func enlargement(existing, additional Box) float64 {
	return area(combine(existing, additional)) - area(existing)
}

func calculateBound(n *node) Box {
	box := n.entries[0].box
	for i := 1; i < n.numEntries; i++ {
		box = combine(box, n.entries[i].box)
	}
	return box
}

// squaredEuclideanDistance gives the square of the shortest distance
// between any two points in the boxes. It is zero if the boxes overlap.
func squaredEuclideanDistance(b1, b2 Box) float64 {
	dx := math.Max(0, math.Max(b1.MinX-b2.MaxX, b2.MinX-b1.MaxX))
	dy := math.Max(0, math.Max(b1.MinY-b2.MaxY, b2.MinY-b1.MaxY))
	dz := math.Max(0, math.Max(b1.MinZ-b2.MaxZ, b2.MinZ-b1.MaxZ))
	return dx*dx + dy*dy + dz*dz
}

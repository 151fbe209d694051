package layout

import "math"

// placeRing positions isolated nodes on a circle around the connected
// layout. The circle is centered on the bounding box of the existing
// positions with radius half the box's larger dimension plus margin, so
// the ring always clears the main cluster. When there are no existing
// positions (every node isolated), a unit-radius circle at the origin is
// used instead.
//
// Nodes are spaced at equal angular increments starting at angle 0, in
// the order given, so the caller controls determinism by passing sorted
// keys.
func placeRing(pos Positions, isolated []string, margin float64) {
	cx, cy := 0.0, 0.0
	radius := 1.0

	if len(pos) > 0 {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range pos {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		cx = (minX + maxX) / 2
		cy = (minY + maxY) / 2
		radius = math.Max(maxX-cx, maxY-cy) + margin
	}

	step := 2 * math.Pi / float64(len(isolated))
	for i, key := range isolated {
		angle := float64(i) * step
		pos[key] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
}

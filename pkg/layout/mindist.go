package layout

import (
	"cmp"
	"math"
	"slices"
)

// enforceMinDist is the post-layout relaxation: any pair of nodes closer
// than cfg.MinDist (but farther than cfg.Epsilon) is pushed apart along
// its connecting direction by half the deficit each, so neither point is
// favored. Passes repeat until one makes no correction or the budget is
// exhausted.
//
// Pair scanning uses a uniform grid bucketed by the threshold, so only
// nodes in the same or adjacent cells are compared. The corrections are
// identical to a naive all-pairs scan; the grid only prunes pairs that
// are provably farther apart than the threshold.
//
// The return value is the number of pairs still below the floor after
// the final pass - an accepted approximation for saturated clusters, not
// an error.
func enforceMinDist(pos Positions, keys []string, cfg Config) int {
	if len(keys) < 2 {
		return 0
	}

	x := make([]float64, len(keys))
	y := make([]float64, len(keys))
	for i, k := range keys {
		p := pos[k]
		x[i] = p.X
		y[i] = p.Y
	}

	g := newPairGrid(cfg.MinDist)
	for pass := 0; pass < cfg.MinDistPasses; pass++ {
		moved := false
		g.rebuild(x, y)
		g.eachPair(func(i, j int) {
			ddx := x[j] - x[i]
			ddy := y[j] - y[i]
			d := math.Hypot(ddx, ddy)
			if d >= cfg.MinDist || d <= cfg.Epsilon {
				return
			}
			push := 0.5 * (cfg.MinDist - d)
			ux, uy := ddx/d, ddy/d
			x[i] -= push * ux
			y[i] -= push * uy
			x[j] += push * ux
			y[j] += push * uy
			moved = true
		})
		if !moved {
			break
		}
	}

	for i, k := range keys {
		pos[k] = Point{X: x[i], Y: y[i]}
	}

	// Count what the budget left unresolved.
	unresolved := 0
	g.rebuild(x, y)
	g.eachPair(func(i, j int) {
		if math.Hypot(x[j]-x[i], y[j]-y[i]) < cfg.MinDist {
			unresolved++
		}
	})
	return unresolved
}

// pairGrid is a uniform spatial index with cell size equal to the
// minimum-distance threshold. Any pair closer than the threshold must
// fall in the same cell or in cells that touch, so eachPair visits every
// candidate pair exactly once while skipping the rest.
type pairGrid struct {
	cell     float64
	cells    map[[2]int][]int
	occupied [][2]int // sorted, so correction order is deterministic
}

func newPairGrid(cell float64) *pairGrid {
	return &pairGrid{cell: cell, cells: make(map[[2]int][]int)}
}

func (g *pairGrid) rebuild(x, y []float64) {
	clear(g.cells)
	g.occupied = g.occupied[:0]
	for i := range x {
		c := g.cellOf(x[i], y[i])
		if _, ok := g.cells[c]; !ok {
			g.occupied = append(g.occupied, c)
		}
		g.cells[c] = append(g.cells[c], i)
	}
	slices.SortFunc(g.occupied, func(a, b [2]int) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
}

func (g *pairGrid) cellOf(x, y float64) [2]int {
	return [2]int{int(math.Floor(x / g.cell)), int(math.Floor(y / g.cell))}
}

// neighborOffsets covers each unordered cell pair once: the cell itself
// plus the four forward neighbors (E, NE, N, NW).
var neighborOffsets = [...][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}}

func (g *pairGrid) eachPair(fn func(i, j int)) {
	for _, c := range g.occupied {
		members := g.cells[c]
		for _, off := range neighborOffsets {
			if off == [2]int{0, 0} {
				for a := 0; a < len(members); a++ {
					for b := a + 1; b < len(members); b++ {
						fn(members[a], members[b])
					}
				}
				continue
			}
			other, ok := g.cells[[2]int{c[0] + off[0], c[1] + off[1]}]
			if !ok {
				continue
			}
			for _, a := range members {
				for _, b := range other {
					fn(a, b)
				}
			}
		}
	}
}

package layout

import (
	"math"
	"math/rand"

	"github.com/tmolenaar/vaultpaper/pkg/graph"
)

// springEmbed computes a force-directed embedding of the induced subgraph
// on keys. Each iteration accumulates, per node, pairwise repulsion
// (k²/d) plus weighted attraction along incident edges (w·d²/k), then
// applies the net force as a temperature-bounded displacement. The
// temperature cools linearly so early iterations untangle the graph and
// late ones only refine it.
//
// Initial placement is uniform random in the unit square from a seeded
// generator, so the embedding is deterministic for a given graph and
// seed. The finished layout is recentered and rescaled to the [-1, 1]
// square.
func springEmbed(g *graph.Graph, keys []string, cfg Config) Positions {
	pos := make(Positions, len(keys))
	n := len(keys)
	if n == 0 {
		return pos
	}
	if n == 1 {
		pos[keys[0]] = Point{}
		return pos
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	index := make(map[string]int, n)
	x := make([]float64, n)
	y := make([]float64, n)
	for i, k := range keys {
		index[k] = i
		x[i] = rng.Float64()
		y[i] = rng.Float64()
	}

	// Optimal pairwise distance for n nodes in a unit area.
	k := cfg.Spread / math.Sqrt(float64(n))

	type spring struct {
		a, b int
		w    float64
	}
	var springs []spring
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue // a self-loop exerts no force
		}
		ai, aok := index[e.A]
		bi, bok := index[e.B]
		if !aok || !bok {
			continue
		}
		w := e.Weight
		if w <= 0 {
			w = graph.WeightDefault
		}
		springs = append(springs, spring{a: ai, b: bi, w: w})
	}

	dx := make([]float64, n)
	dy := make([]float64, n)
	temp := 0.1
	cool := temp / float64(cfg.Iterations+1)

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Repulsion between all pairs.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := x[i] - x[j]
				ddy := y[i] - y[j]
				d := math.Hypot(ddx, ddy)
				if d < cfg.Epsilon {
					d = cfg.Epsilon
				}
				f := k * k / d / d // force per unit of delta
				dx[i] += ddx * f
				dy[i] += ddy * f
				dx[j] -= ddx * f
				dy[j] -= ddy * f
			}
		}

		// Attraction along edges, scaled by spring weight.
		for _, s := range springs {
			ddx := x[s.a] - x[s.b]
			ddy := y[s.a] - y[s.b]
			d := math.Hypot(ddx, ddy)
			if d < cfg.Epsilon {
				continue
			}
			f := s.w * d / k // force per unit of delta
			dx[s.a] -= ddx * f
			dy[s.a] -= ddy * f
			dx[s.b] += ddx * f
			dy[s.b] += ddy * f
		}

		// Apply displacements, bounded by the current temperature.
		for i := 0; i < n; i++ {
			d := math.Hypot(dx[i], dy[i])
			if d < cfg.Epsilon {
				continue
			}
			step := math.Min(d, temp)
			x[i] += dx[i] / d * step
			y[i] += dy[i] / d * step
		}
		temp -= cool
	}

	rescaleUnit(x, y)
	for i, key := range keys {
		pos[key] = Point{X: x[i], Y: y[i]}
	}
	return pos
}

// rescaleUnit recenters coordinates on their mean and scales them so the
// largest absolute coordinate is 1. A degenerate embedding where every
// node collapsed to one point is left centered at the origin.
func rescaleUnit(x, y []float64) {
	n := float64(len(x))
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= n
	my /= n

	var lim float64
	for i := range x {
		x[i] -= mx
		y[i] -= my
		lim = math.Max(lim, math.Max(math.Abs(x[i]), math.Abs(y[i])))
	}
	if lim == 0 {
		return
	}
	for i := range x {
		x[i] /= lim
		y[i] /= lim
	}
}

// Package layout computes 2-D positions for every node of a vault graph.
//
// The layout runs in three stages:
//
//  1. A force-directed spring embedding over the connected subgraph
//     (degree > 0), with edge weights acting as spring strengths.
//  2. Ring placement for isolated nodes around the bounding box of the
//     embedding. Springs provide no repulsion between disconnected
//     components, so without this stage every isolate would pile up at
//     its initial random point.
//  3. Minimum-distance enforcement over the combined position set, a
//     fixed-point relaxation that pushes overlapping pairs apart until a
//     distance floor is respected or the pass budget runs out.
//
// [Compute] is a pure function of (graph, config): the same inputs always
// produce the same positions. Nothing is cached between runs.
package layout

import (
	"github.com/tmolenaar/vaultpaper/pkg/graph"
)

// Point is a position in the abstract layout plane. The spring embedding
// is normalized to roughly the [-1, 1] square; render adapters map points
// into pixel space.
type Point struct {
	X, Y float64
}

// Positions maps node keys to layout coordinates.
type Positions map[string]Point

// Config holds the layout tunables. All fields have working defaults via
// [DefaultConfig]; zero or negative values are replaced by defaults in
// [Compute].
type Config struct {
	// Iterations is the number of spring simulation steps. Low counts
	// visibly fail to separate clusters; the default is in the low
	// hundreds.
	Iterations int

	// Spread scales the optimal pairwise distance. Higher values spread
	// the graph out more but need proportionally more iterations to
	// converge.
	Spread float64

	// Seed feeds the deterministic initial placement. A fixed seed makes
	// the layout reproducible for a given graph. Zero selects the
	// default seed; pass any other value to vary the placement.
	Seed int64

	// MinDist is the distance floor enforced after layout.
	MinDist float64

	// MinDistPasses bounds the enforcement relaxation. Dense clusters
	// may still overlap when the budget runs out; that is an accepted
	// approximation, reported via [Result.UnresolvedOverlaps].
	MinDistPasses int

	// RingMargin is added to the isolate ring radius beyond the
	// connected layout's bounding box.
	RingMargin float64

	// Epsilon is the numerical-stability floor: pairs closer than this
	// are left alone rather than dividing by a near-zero distance.
	Epsilon float64
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		Iterations:    300,
		Spread:        3.0,
		Seed:          42,
		MinDist:       0.05,
		MinDistPasses: 15,
		RingMargin:    0.5,
		Epsilon:       1e-9,
	}
}

// withDefaults fills non-positive fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.Spread <= 0 {
		c.Spread = d.Spread
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.MinDist <= 0 {
		c.MinDist = d.MinDist
	}
	if c.MinDistPasses <= 0 {
		c.MinDistPasses = d.MinDistPasses
	}
	if c.RingMargin <= 0 {
		c.RingMargin = d.RingMargin
	}
	if c.Epsilon <= 0 {
		c.Epsilon = d.Epsilon
	}
	return c
}

// Result is a computed layout.
type Result struct {
	Positions Positions

	// UnresolvedOverlaps counts node pairs still closer than MinDist
	// when the enforcement budget ran out. Zero whenever the relaxation
	// converged.
	UnresolvedOverlaps int
}

// Compute lays out every node of g. It never fails on a well-formed
// graph; an empty graph yields empty positions.
func Compute(g *graph.Graph, cfg Config) Result {
	cfg = cfg.withDefaults()

	connected := g.ConnectedKeys()
	isolated := g.Isolates()

	pos := springEmbed(g, connected, cfg)
	if len(isolated) > 0 {
		placeRing(pos, isolated, cfg.RingMargin)
	}

	keys := make([]string, 0, len(connected)+len(isolated))
	keys = append(keys, connected...)
	keys = append(keys, isolated...)
	unresolved := enforceMinDist(pos, keys, cfg)

	return Result{Positions: pos, UnresolvedOverlaps: unresolved}
}

package layout

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func TestEnforceMinDistSymmetricPush(t *testing.T) {
	cfg := DefaultConfig()
	pos := Positions{
		"a.md": {X: -0.015, Y: 0},
		"b.md": {X: 0.015, Y: 0},
	}

	unresolved := enforceMinDist(pos, []string{"a.md", "b.md"}, cfg)

	if unresolved != 0 {
		t.Fatalf("unresolved = %d, want 0", unresolved)
	}
	a, b := pos["a.md"], pos["b.md"]
	if d := dist(a, b); math.Abs(d-cfg.MinDist) > 1e-12 {
		t.Errorf("final distance = %g, want exactly %g", d, cfg.MinDist)
	}
	// Each point absorbs half the deficit, so the midpoint stays put.
	if mid := (a.X + b.X) / 2; math.Abs(mid) > 1e-12 {
		t.Errorf("midpoint drifted to %g", mid)
	}
}

func TestEnforceMinDistCoincidentPointsLeftAlone(t *testing.T) {
	// Pairs below epsilon have no push direction, so they stay where they
	// are and are reported as unresolved.
	cfg := DefaultConfig()
	pos := Positions{
		"a.md": {X: 0.3, Y: 0.3},
		"b.md": {X: 0.3, Y: 0.3},
	}

	unresolved := enforceMinDist(pos, []string{"a.md", "b.md"}, cfg)

	if unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", unresolved)
	}
	if pos["a.md"] != pos["b.md"] {
		t.Errorf("coincident points moved: %+v vs %+v", pos["a.md"], pos["b.md"])
	}
}

func TestEnforceMinDistCluster(t *testing.T) {
	// A jittered cluster well inside a single grid cell neighborhood.
	// The pass budget is raised so the relaxation is tested to
	// convergence rather than to the default cutoff.
	cfg := DefaultConfig()
	cfg.MinDistPasses = 200
	rng := rand.New(rand.NewSource(7))
	pos := make(Positions)
	keys := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		k := fmt.Sprintf("n%02d.md", i)
		keys = append(keys, k)
		pos[k] = Point{
			X: rng.Float64() * 0.02,
			Y: rng.Float64() * 0.02,
		}
	}

	unresolved := enforceMinDist(pos, keys, cfg)

	if unresolved != 0 {
		t.Fatalf("unresolved = %d, want 0 after %d passes", unresolved, cfg.MinDistPasses)
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if d := dist(pos[keys[i]], pos[keys[j]]); d < cfg.MinDist-1e-12 {
				t.Errorf("%s and %s are %g apart, floor is %g", keys[i], keys[j], d, cfg.MinDist)
			}
		}
	}
}

func TestPairGridCoversClosePairs(t *testing.T) {
	// The grid may visit far pairs, but it must never miss a pair closer
	// than the cell size.
	const cell = 0.05
	rng := rand.New(rand.NewSource(99))
	n := 200
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
		y[i] = rng.Float64()*2 - 1
	}

	g := newPairGrid(cell)
	g.rebuild(x, y)

	type pair [2]int
	visited := make(map[pair]int)
	g.eachPair(func(i, j int) {
		if i == j {
			t.Fatalf("eachPair yielded (%d, %d)", i, j)
		}
		if j < i {
			i, j = j, i
		}
		visited[pair{i, j}]++
	})

	for p, count := range visited {
		if count > 1 {
			t.Errorf("pair %v visited %d times", p, count)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Hypot(x[j]-x[i], y[j]-y[i]) >= cell {
				continue
			}
			if _, ok := visited[pair{i, j}]; !ok {
				t.Errorf("close pair (%d, %d) never visited", i, j)
			}
		}
	}
}

package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tmolenaar/vaultpaper/pkg/errors"
	"github.com/tmolenaar/vaultpaper/pkg/graph"
	"github.com/tmolenaar/vaultpaper/pkg/layout"
	"github.com/tmolenaar/vaultpaper/pkg/render"
	"github.com/tmolenaar/vaultpaper/pkg/vault"
	"github.com/tmolenaar/vaultpaper/pkg/wallpaper"
)

// Runner executes complete pipeline runs. It is stateless apart from its
// logger: every run scans, builds and lays out from scratch, so a single
// Runner can serve any number of sequential runs. Runs must not be
// interleaved against the same output path; the watch loop serializes
// them.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID distinguishes overlapping watch triggers in logs.
	RunID string

	// Graph is the constructed vault graph.
	Graph *graph.Graph

	// Positions is the finished layout covering every node.
	Positions layout.Positions

	// Stats contains counts and per-stage timings.
	Stats Stats
}

// Execute runs scan → build → layout → render and, when requested, sets
// the wallpaper. The context is consulted between stages; a run that has
// started a stage finishes it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID[:8])

	// Stage 1: Scan
	scanStart := time.Now()
	listing, err := vault.Scan(opts.VaultRoot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeVaultNotFound, err, "scan vault %s", opts.VaultRoot)
	}
	result.Stats.Files = len(listing)
	result.Stats.ScanTime = time.Since(scanStart)
	logger.Debug("scanned vault", "files", len(listing), "duration", result.Stats.ScanTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Build
	buildStart := time.Now()
	g, buildStats := graph.Build(listing, graph.BuildOptions{Prune: opts.Prune})
	result.Graph = g
	result.Stats.Notes = buildStats.Notes
	result.Stats.Dangling = buildStats.Dangling
	result.Stats.Unreadable = buildStats.Unreadable
	result.Stats.Pruned = buildStats.Pruned
	result.Stats.Nodes = g.NodeCount()
	result.Stats.Edges = g.EdgeCount()
	result.Stats.Isolates = len(g.Isolates())
	result.Stats.SelfLoops = len(g.SelfLoops())
	result.Stats.BuildTime = time.Since(buildStart)
	logger.Info("built graph",
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"isolates", result.Stats.Isolates,
		"duration", result.Stats.BuildTime)
	if result.Stats.Dangling > 0 {
		logger.Debug("dropped dangling links", "count", result.Stats.Dangling)
	}
	if result.Stats.Unreadable > 0 {
		logger.Warn("skipped unreadable notes", "count", result.Stats.Unreadable)
	}
	if loops := g.SelfLoops(); len(loops) > 0 {
		logger.Debug("notes linking to themselves", "notes", loops)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	lr := layout.Compute(g, opts.Layout)
	result.Positions = lr.Positions
	result.Stats.UnresolvedOverlaps = lr.UnresolvedOverlaps
	result.Stats.LayoutTime = time.Since(layoutStart)
	logger.Info("computed layout",
		"positions", len(lr.Positions),
		"duration", result.Stats.LayoutTime)
	if lr.UnresolvedOverlaps > 0 {
		logger.Debug("overlaps left after separation budget", "pairs", lr.UnresolvedOverlaps)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Render
	renderStart := time.Now()
	if err := render.WritePNGFile(g, lr.Positions, opts.Render, opts.Output); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutput, err, "render %s", opts.Output)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered image", "path", opts.Output, "duration", result.Stats.RenderTime)

	if opts.SetWallpaper {
		if err := wallpaper.Set(opts.Output); err != nil {
			return nil, errors.Wrap(errors.ErrCodeWallpaper, err, "set wallpaper from %s", opts.Output)
		}
		logger.Info("wallpaper updated", "path", opts.Output)
	}

	return result, nil
}

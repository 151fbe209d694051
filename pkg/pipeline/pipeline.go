// Package pipeline composes the full vaultpaper run: scan the vault,
// build the graph, compute the layout, render the image, and optionally
// set it as the desktop wallpaper.
//
// Centralizing the scan → build → layout → render sequence here keeps
// the one-shot render command and the watch loop behaviorally identical:
// both construct an [Options] and hand it to a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{VaultRoot: "~/notes", Output: "graph.png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Nodes, "nodes")
//
// Every run rebuilds the graph and reseeds the layout from scratch;
// nothing is cached or carried between invocations.
package pipeline

import (
	"time"

	"github.com/tmolenaar/vaultpaper/pkg/config"
	"github.com/tmolenaar/vaultpaper/pkg/errors"
	"github.com/tmolenaar/vaultpaper/pkg/layout"
	"github.com/tmolenaar/vaultpaper/pkg/render"
)

// DefaultOutput is the image path used when neither flag nor config file
// names one.
const DefaultOutput = "vault-graph.png"

// Options contains all configuration for one pipeline run.
type Options struct {
	// VaultRoot is the directory to scan. Required.
	VaultRoot string

	// Output is the PNG path to write. Defaults to DefaultOutput.
	Output string

	// SetWallpaper applies the rendered image as the desktop background
	// after writing it.
	SetWallpaper bool

	// Prune drops zero-degree notes from the graph instead of placing
	// them on the isolate ring.
	Prune bool

	// WatchDebounce is the quiet period before the watch loop recomputes
	// after a burst of vault changes. Zero falls back to the watch
	// package default. Ignored by one-shot runs.
	WatchDebounce time.Duration

	// Layout holds the spring/ring/min-distance tunables; zero fields
	// take the layout package defaults.
	Layout layout.Config

	// Render holds the frame geometry and palette; zero fields take the
	// render package defaults.
	Render render.Options

	// validated tracks whether ValidateAndSetDefaults has run.
	validated bool
}

// ValidateAndSetDefaults checks required fields and fills in defaults.
// The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.VaultRoot == "" {
		return errors.New(errors.ErrCodeInvalidInput, "vault root is required")
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	o.validated = true
	return nil
}

// ApplyConfig fills unset options from a loaded config file. Flags the
// user passed explicitly are already set on o and are not overwritten.
func (o *Options) ApplyConfig(cfg config.Config) {
	if o.VaultRoot == "" {
		o.VaultRoot = cfg.Vault
	}
	if o.Output == "" {
		o.Output = cfg.Output
	}
	if cfg.SetWallpaper {
		o.SetWallpaper = true
	}
	if cfg.Prune {
		o.Prune = true
	}
	if o.WatchDebounce == 0 {
		o.WatchDebounce = time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	}
	if o.Layout.Iterations == 0 {
		o.Layout.Iterations = cfg.Layout.Iterations
	}
	if o.Layout.Spread == 0 {
		o.Layout.Spread = cfg.Layout.Spread
	}
	if o.Layout.Seed == 0 {
		o.Layout.Seed = cfg.Layout.Seed
	}
	if o.Layout.MinDist == 0 {
		o.Layout.MinDist = cfg.Layout.MinDist
	}
	if o.Layout.MinDistPasses == 0 {
		o.Layout.MinDistPasses = cfg.Layout.MinDistPasses
	}
	if o.Layout.RingMargin == 0 {
		o.Layout.RingMargin = cfg.Layout.RingMargin
	}
	if o.Render.Width == 0 {
		o.Render.Width = cfg.Image.Width
	}
	if o.Render.Height == 0 {
		o.Render.Height = cfg.Image.Height
	}
}

// Stats describes what one run processed and how long each stage took.
type Stats struct {
	Files      int // files discovered under the vault root
	Notes      int // notes among them
	Nodes      int // graph nodes after construction
	Edges      int // graph edges
	Isolates   int // zero-degree nodes placed on the ring
	SelfLoops  int // notes linking to themselves
	Dangling   int // links whose target matched no file
	Unreadable int // notes whose content could not be read
	Pruned     int // orphans removed (only with Prune)

	// UnresolvedOverlaps counts node pairs the minimum-distance budget
	// could not separate.
	UnresolvedOverlaps int

	ScanTime   time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

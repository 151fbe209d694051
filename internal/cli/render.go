package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmolenaar/vaultpaper/pkg/config"
	"github.com/tmolenaar/vaultpaper/pkg/errors"
	"github.com/tmolenaar/vaultpaper/pkg/pipeline"
)

// pipelineOpts holds the command-line flags shared by the render and
// watch commands. Zero values mean "not set": the config file and then
// the package defaults fill them in.
type pipelineOpts struct {
	configPath   string  // explicit config file (--config)
	output       string  // output PNG path
	setWallpaper bool    // apply the image as desktop background
	prune        bool    // drop orphan notes instead of ringing them
	iterations   int     // spring simulation steps
	spread       float64 // repulsion spread constant
	seed         int64   // layout seed
	minDist      float64 // minimum node separation
	width        int     // frame width in pixels
	height       int     // frame height in pixels
	debounceMs   int     // watch quiet period (watch command only)
}

// addPipelineFlags registers the shared flags on cmd.
func addPipelineFlags(cmd *cobra.Command, opts *pipelineOpts) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default vaultpaper.toml in the vault or user config dir)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default "+pipeline.DefaultOutput+")")
	cmd.Flags().BoolVar(&opts.setWallpaper, "set-wallpaper", false, "set the rendered image as the desktop background")
	cmd.Flags().BoolVar(&opts.prune, "prune", false, "drop unlinked notes instead of placing them on the fringe ring")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "spring simulation iterations (default 300)")
	cmd.Flags().Float64Var(&opts.spread, "spread", 0, "repulsion spread constant (default 3.0)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "layout random seed (default 42)")
	cmd.Flags().Float64Var(&opts.minDist, "min-dist", 0, "minimum node separation in layout units (default 0.05)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels (default 1920)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels (default 1080)")
}

// buildOptions merges flags with the config file into pipeline options.
// Flags the user set win over file values; anything still unset falls
// through to the package defaults.
func (o *pipelineOpts) buildOptions(vaultRoot string) (pipeline.Options, error) {
	opts := pipeline.Options{
		VaultRoot:    vaultRoot,
		Output:       o.output,
		SetWallpaper: o.setWallpaper,
		Prune:        o.prune,
	}
	opts.WatchDebounce = time.Duration(o.debounceMs) * time.Millisecond
	opts.Layout.Iterations = o.iterations
	opts.Layout.Spread = o.spread
	opts.Layout.Seed = o.seed
	opts.Layout.MinDist = o.minDist
	opts.Render.Width = o.width
	opts.Render.Height = o.height

	var cfg config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadDefault(vaultRoot)
	}
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config")
	}
	opts.ApplyConfig(cfg)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// newRenderCmd creates the render command: one full pipeline run.
func newRenderCmd() *cobra.Command {
	var opts pipelineOpts

	cmd := &cobra.Command{
		Use:   "render [vault]",
		Short: "Render the vault's link graph to a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			return runRender(cmd, root, &opts)
		},
	}

	addPipelineFlags(cmd, &opts)
	return cmd
}

func runRender(cmd *cobra.Command, vaultRoot string, opts *pipelineOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := opts.buildOptions(vaultRoot)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d nodes and %d edges", result.Stats.Nodes, result.Stats.Edges))

	printSummary(result, popts)
	return nil
}

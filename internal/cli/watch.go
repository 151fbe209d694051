package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tmolenaar/vaultpaper/pkg/pipeline"
	"github.com/tmolenaar/vaultpaper/pkg/watch"
)

// newWatchCmd creates the watch command: an initial render followed by a
// recompute on every vault change until interrupted.
func newWatchCmd() *cobra.Command {
	var opts pipelineOpts

	cmd := &cobra.Command{
		Use:   "watch [vault]",
		Short: "Re-render the graph whenever the vault changes",
		Long: `Watch runs the full render pipeline once, then watches the vault tree
and re-runs it after each batch of filesystem changes. Bursts of events
are debounced and recomputes are serialized, so rapid edits coalesce
into a single re-render. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			return runWatch(cmd, root, &opts)
		},
	}

	addPipelineFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.debounceMs, "debounce", 0, "quiet period in milliseconds before recomputing (default 500)")
	return cmd
}

func runWatch(cmd *cobra.Command, vaultRoot string, opts *pipelineOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := opts.buildOptions(vaultRoot)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(logger)

	// Initial render before the first change arrives. A failure here is
	// fatal: if the first run cannot complete, watching will not help.
	if _, err := runner.Execute(ctx, popts); err != nil {
		return err
	}

	w, err := watch.New(popts.VaultRoot, watch.Options{
		Debounce: popts.WatchDebounce,
		Ignore:   []string{popts.Output},
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching vault", "root", popts.VaultRoot)
	err = w.Run(ctx, func(ctx context.Context) error {
		_, err := runner.Execute(ctx, popts)
		return err
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("stopped watching")
		return nil
	}
	return err
}

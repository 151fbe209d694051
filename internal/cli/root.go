package cli

import (
	"context"
	stderrors "errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tmolenaar/vaultpaper/pkg/buildinfo"
	"github.com/tmolenaar/vaultpaper/pkg/errors"
)

// Execute runs the vaultpaper CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext. The given context carries signal cancellation
// from main, so Ctrl-C unwinds the watch loop cleanly.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "vaultpaper",
		Short: "Vaultpaper renders a note vault's link graph as a wallpaper",
		Long: `Vaultpaper scans a directory of interlinked Markdown notes, derives the
wikilink graph between them, computes a force-directed layout, and renders
the result as a PNG - optionally setting it as the desktop wallpaper and
re-rendering whenever the vault changes.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newCompletionCmd())

	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		printError("%s", errors.UserMessage(err))
	}
	return err
}

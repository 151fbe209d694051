package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmolenaar/vaultpaper/pkg/config"
	"github.com/tmolenaar/vaultpaper/pkg/errors"
	"github.com/tmolenaar/vaultpaper/pkg/graph"
	"github.com/tmolenaar/vaultpaper/pkg/render"
	"github.com/tmolenaar/vaultpaper/pkg/vault"
)

const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// newGraphCmd creates the graph command for exporting the vault graph
// without rendering the wallpaper image.
func newGraphCmd() *cobra.Command {
	var (
		configPath string
		format     string
		output     string
		prune      bool
		check      bool
	)

	cmd := &cobra.Command{
		Use:   "graph [vault]",
		Short: "Export the vault's link graph as JSON, DOT or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			return runGraph(cmd, root, configPath, format, output, prune, check)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default vaultpaper.toml in the vault or user config dir)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&prune, "prune", false, "drop unlinked notes from the graph")
	cmd.Flags().BoolVar(&check, "check", false, "print vault diagnostics (self-links, broken links)")
	return cmd
}

// resolveVaultRoot falls back to the config file's vault when no argument
// was given, the same lookup render and watch use.
func resolveVaultRoot(vaultRoot, configPath string) (string, error) {
	if vaultRoot != "" {
		return vaultRoot, nil
	}
	var cfg config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault("")
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config")
	}
	if cfg.Vault == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "vault root is required")
	}
	return cfg.Vault, nil
}

func runGraph(cmd *cobra.Command, vaultRoot, configPath, format, output string, prune, check bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	vaultRoot, err := resolveVaultRoot(vaultRoot, configPath)
	if err != nil {
		return err
	}

	listing, err := vault.Scan(vaultRoot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeVaultNotFound, err, "scan vault %s", vaultRoot)
	}
	g, stats := graph.Build(listing, graph.BuildOptions{Prune: prune})
	logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	if check {
		printDiagnostics(g, stats)
	}

	var data []byte
	switch format {
	case formatJSON:
		if output == "" {
			return graph.WriteGraph(g, os.Stdout)
		}
		if err := graph.WriteGraphFile(g, output); err != nil {
			return errors.Wrap(errors.ErrCodeOutput, err, "write graph")
		}
		printFile(output)
		return nil
	case formatDOT:
		data = []byte(render.DOT(g))
	case formatSVG:
		data, err = render.SVG(ctx, render.DOT(g))
		if err != nil {
			return errors.Wrap(errors.ErrCodeOutput, err, "render svg")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "write %s", output)
	}
	printFile(output)
	return nil
}

// printDiagnostics surfaces the vault anomalies the builder tolerates:
// notes linking to themselves, broken links, unreadable files.
func printDiagnostics(g *graph.Graph, stats graph.BuildStats) {
	if loops := g.SelfLoops(); len(loops) > 0 {
		printWarning("%d note(s) link to themselves:", len(loops))
		for _, key := range loops {
			printDetail("%s", key)
		}
	}
	if stats.Dangling > 0 {
		printWarning("%d link(s) point at files that do not exist", stats.Dangling)
	}
	if stats.Unreadable > 0 {
		printWarning("%d note(s) could not be read", stats.Unreadable)
	}
	if isolates := g.Isolates(); len(isolates) > 0 {
		printInfo("%d unlinked file(s) will sit on the fringe ring", len(isolates))
	}
	if len(g.SelfLoops()) == 0 && stats.Dangling == 0 && stats.Unreadable == 0 {
		printSuccess("vault is clean: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	fmt.Println()
}

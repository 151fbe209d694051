// Package pkg provides the core libraries for vaultpaper, a wallpaper
// generator for Markdown note vaults.
//
// # Overview
//
// Vaultpaper scans a vault of wikilinked notes, builds the link graph,
// lays it out with a force-directed embedding and renders the result as
// a desktop wallpaper. The pkg directory is organized along that flow:
//
//  1. [vault] - Filesystem scanning and wikilink extraction
//  2. [graph] - The undirected link graph and its construction
//  3. [layout] - Spring embedding, isolate ring, minimum-distance pass
//  4. [render] - PNG rasterization plus DOT/SVG export
//  5. [wallpaper] - Per-platform desktop background setters
//  6. [watch] - Debounced recursive filesystem watching
//  7. [pipeline] - Orchestration (scan → build → layout → render)
//
// Supporting packages: [config] (TOML settings file), [errors] (coded
// errors with user-facing messages), [buildinfo] (version metadata).
//
// # Architecture
//
// The typical data flow through vaultpaper:
//
//	Vault directory
//	         ↓
//	    [vault] package (scan files, extract wikilinks)
//	         ↓
//	    [graph] package (nodes, weighted edges, diagnostics)
//	         ↓
//	    [layout] package (positions in the unit plane)
//	         ↓
//	    [render] package (PNG frame)
//	         ↓
//	    [wallpaper] package (desktop background, optional)
//
// # Quick Start
//
// Run the whole pipeline once:
//
//	import (
//	    "context"
//	    "github.com/tmolenaar/vaultpaper/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    VaultRoot: "~/notes",
//	    Output:    "vault-graph.png",
//	})
//
// Or compose the stages directly:
//
//	listing, _ := vault.Scan("~/notes")
//	g, stats := graph.Build(listing, graph.BuildOptions{})
//	res := layout.Compute(g, layout.DefaultConfig())
//	png, _ := render.PNG(g, res.Positions, render.DefaultOptions())
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [vault]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/vault
// [graph]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/graph
// [layout]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/layout
// [render]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/render
// [wallpaper]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/wallpaper
// [watch]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/watch
// [pipeline]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/config
// [errors]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/tmolenaar/vaultpaper/pkg/buildinfo
package pkg

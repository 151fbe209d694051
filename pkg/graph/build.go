package graph

import (
	"github.com/tmolenaar/vaultpaper/pkg/vault"
)

// BuildOptions controls graph construction.
type BuildOptions struct {
	// Prune drops zero-degree nodes after construction instead of
	// keeping them for isolate-ring placement. Off by default.
	Prune bool
}

// BuildStats reports what construction encountered. None of these are
// errors: a vault is allowed to contain broken links and unreadable
// files, and the builder recovers from both by omission.
type BuildStats struct {
	Notes      int // notes that received a node in step 1
	Dangling   int // links whose normalized target matched no known file
	Unreadable int // notes whose content accessor failed
	Pruned     int // zero-degree nodes removed (only when Prune is set)
}

// Build derives the vault graph from a file listing.
//
// Every note in the listing gets a node, linked or not. Each note's
// content is read once, its wikilinks extracted and normalized, and each
// normalized target that exactly matches a listed filename becomes a node
// (if absent) plus an edge from the note. Targets that match nothing are
// dropped silently; notes that cannot be read contribute no links.
//
// The edge weighting pass runs after all files are processed, since a
// node's degree is not final until then.
func Build(listing vault.Listing, opts BuildOptions) (*Graph, BuildStats) {
	g := New()
	var stats BuildStats

	for name, f := range listing {
		if !f.IsNote() {
			continue
		}
		stats.Notes++
		_ = g.AddNode(name)

		content, err := f.Content()
		if err != nil {
			stats.Unreadable++
			continue
		}
		for _, raw := range vault.ExtractLinks(content) {
			target := vault.NormalizeTarget(raw)
			if target == "" {
				continue
			}
			if _, known := listing[target]; !known {
				stats.Dangling++
				continue
			}
			_ = g.AddNode(target)
			_ = g.AddEdge(name, target)
		}
	}

	if opts.Prune {
		stats.Pruned = g.Prune()
	}
	g.AssignWeights()
	return g, stats
}

// Package graph models a vault as a simple undirected graph and builds it
// from a file listing.
//
// Nodes are keyed by filename and carry a category (note or attachment)
// derived from the extension. Edges are unordered pairs of node keys with
// a derived spring weight: edges touching a degree-1 node get a high
// "leaf" weight so the layout pulls leaves in close to their single
// neighbor. Degree is always computed from the adjacency structure, never
// stored, so it cannot drift out of sync with the edge set.
//
// The graph is rebuilt from scratch on every pipeline run; there is no
// incremental update path.
package graph

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/tmolenaar/vaultpaper/pkg/vault"
)

var (
	// ErrInvalidNodeKey is returned by [Graph.AddNode] when the node key
	// is empty. Keys are filenames and must be non-empty.
	ErrInvalidNodeKey = errors.New("node key must not be empty")

	// ErrUnknownEndpoint is returned by [Graph.AddEdge] when either
	// endpoint has not been added as a node. Every edge's endpoints must
	// be members of the node set.
	ErrUnknownEndpoint = errors.New("edge endpoint is not a known node")
)

// Edge weights assigned by [Graph.AssignWeights]. Leaf edges attract far
// more strongly than regular ones so that degree-1 nodes hug their single
// neighbor instead of drifting to the layout fringe.
const (
	WeightLeaf    = 5.0
	WeightDefault = 1.0
)

// Category classifies a node by the kind of file it names.
type Category int

const (
	// CategoryNote is a Markdown note, the only kind of file that can
	// contain outgoing links.
	CategoryNote Category = iota
	// CategoryAttachment is any non-note file referenced by a note.
	CategoryAttachment
)

// String returns the category name used in serialized graphs.
func (c Category) String() string {
	if c == CategoryAttachment {
		return "attachment"
	}
	return "note"
}

// CategoryOf derives the category from a filename.
func CategoryOf(key string) Category {
	if vault.IsNote(key) {
		return CategoryNote
	}
	return CategoryAttachment
}

// Node is a vertex in the vault graph.
type Node struct {
	Key      string   // filename, unique within the graph
	Category Category // note or attachment, derived from the extension
}

// Edge is an unordered pair of node keys. A and B are stored in sorted
// order so each pair has exactly one representation; parallel links
// between the same two files collapse into a single edge.
type Edge struct {
	A, B   string
	Weight float64 // set by AssignWeights, zero until then
}

// IsSelfLoop reports whether both endpoints are the same node.
func (e Edge) IsSelfLoop() bool { return e.A == e.B }

// Graph is a simple undirected graph over vault files.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent mutation; a fully built graph is safe for concurrent reads.
type Graph struct {
	nodes map[string]Node
	adj   map[string]map[string]struct{} // key -> distinct neighbor set
	edges map[[2]string]*Edge            // canonical pair -> edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		adj:   make(map[string]map[string]struct{}),
		edges: make(map[[2]string]*Edge),
	}
}

// AddNode adds a node for key with its category derived from the
// extension. Adding an existing key is a no-op, matching the builder's
// "add if absent" semantics. Returns ErrInvalidNodeKey for an empty key.
func (g *Graph) AddNode(key string) error {
	if key == "" {
		return ErrInvalidNodeKey
	}
	if _, ok := g.nodes[key]; ok {
		return nil
	}
	g.nodes[key] = Node{Key: key, Category: CategoryOf(key)}
	g.adj[key] = make(map[string]struct{})
	return nil
}

// AddEdge adds an undirected edge between two existing nodes. Adding an
// edge that already exists is a no-op (edge existence is set membership).
// Self-loops are permitted; use [Graph.SelfLoops] to surface them.
// Returns ErrUnknownEndpoint if either node is missing.
func (g *Graph) AddEdge(a, b string) error {
	if _, ok := g.nodes[a]; !ok {
		return ErrUnknownEndpoint
	}
	if _, ok := g.nodes[b]; !ok {
		return ErrUnknownEndpoint
	}
	k := pairKey(a, b)
	if _, ok := g.edges[k]; ok {
		return nil
	}
	g.edges[k] = &Edge{A: k[0], B: k[1]}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	return nil
}

// HasNode reports whether key is in the node set.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// HasEdge reports whether an edge exists between a and b, in either order.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[pairKey(a, b)]
	return ok
}

// Node returns the node for key and whether it exists.
func (g *Graph) Node(key string) (Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// Edge returns the edge between a and b (in either order) and whether it
// exists.
func (g *Graph) Edge(a, b string) (Edge, bool) {
	e, ok := g.edges[pairKey(a, b)]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Degree returns the number of distinct neighbors of key. A self-loop
// contributes one neighbor: the node itself.
func (g *Graph) Degree(key string) int { return len(g.adj[key]) }

// Neighbors returns the distinct neighbors of key in sorted order.
func (g *Graph) Neighbors(key string) []string {
	return slices.Sorted(maps.Keys(g.adj[key]))
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all nodes sorted by key for deterministic iteration.
func (g *Graph) Nodes() []Node {
	keys := slices.Sorted(maps.Keys(g.nodes))
	out := make([]Node, len(keys))
	for i, k := range keys {
		out[i] = g.nodes[k]
	}
	return out
}

// Keys returns all node keys in sorted order.
func (g *Graph) Keys() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns all edges sorted by endpoint pair.
func (g *Graph) Edges() []Edge {
	pairs := slices.SortedFunc(maps.Keys(g.edges), func(a, b [2]string) int {
		if c := strings.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return strings.Compare(a[1], b[1])
	})
	out := make([]Edge, len(pairs))
	for i, p := range pairs {
		out[i] = *g.edges[p]
	}
	return out
}

// Isolates returns the keys of all zero-degree nodes in sorted order.
// These are the nodes the layout places on the fringe ring.
func (g *Graph) Isolates() []string {
	var out []string
	for k := range g.nodes {
		if len(g.adj[k]) == 0 {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// ConnectedKeys returns the keys of all nodes with degree > 0, sorted.
func (g *Graph) ConnectedKeys() []string {
	var out []string
	for k := range g.nodes {
		if len(g.adj[k]) > 0 {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// SelfLoops returns the keys of nodes that link to themselves, sorted.
// Self-loops are a detectable vault anomaly, not an error: they stay in
// the graph and are surfaced here for diagnostics.
func (g *Graph) SelfLoops() []string {
	var out []string
	for k, e := range g.edges {
		if e.IsSelfLoop() {
			out = append(out, k[0])
		}
	}
	slices.Sort(out)
	return out
}

// AssignWeights runs the edge weighting pass: an edge gets WeightLeaf if
// either endpoint currently has degree 1, otherwise WeightDefault.
//
// Weights depend on final degrees, so this must run after the full edge
// set is known - it cannot be folded into construction.
func (g *Graph) AssignWeights() {
	for _, e := range g.edges {
		if g.Degree(e.A) == 1 || g.Degree(e.B) == 1 {
			e.Weight = WeightLeaf
		} else {
			e.Weight = WeightDefault
		}
	}
}

// Prune removes all zero-degree nodes and returns how many were dropped.
// This is the orphan policy of the original wallpaper script; the default
// pipeline keeps orphans and rings them instead.
func (g *Graph) Prune() int {
	removed := 0
	for k := range g.nodes {
		if len(g.adj[k]) == 0 {
			delete(g.nodes, k)
			delete(g.adj, k)
			removed++
		}
	}
	return removed
}

// pairKey returns the canonical (sorted) representation of an unordered
// node pair.
func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Wire Format
// =============================================================================

// JSON is the node-link serialization format for vault graphs. Degree is
// included as a derived convenience for render adapters; it is ignored on
// read and recomputed from the edge set.
type JSON struct {
	Nodes []NodeJSON `json:"nodes"`
	Edges []EdgeJSON `json:"edges"`
}

// NodeJSON is a serialized node.
type NodeJSON struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Degree   int    `json:"degree"`
}

// EdgeJSON is a serialized edge. Endpoints appear in canonical (sorted)
// order.
type EdgeJSON struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// ToJSON converts a graph to its wire format. Nodes and edges are sorted
// for deterministic output.
func ToJSON(g *Graph) JSON {
	out := JSON{
		Nodes: make([]NodeJSON, 0, g.NodeCount()),
		Edges: make([]EdgeJSON, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, NodeJSON{
			ID:       n.Key,
			Category: n.Category.String(),
			Degree:   g.Degree(n.Key),
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, EdgeJSON{A: e.A, B: e.B, Weight: e.Weight})
	}
	return out
}

// FromJSON rebuilds a graph from its wire format. Edge weights are not
// trusted from the input; the weighting pass is re-run so the derived
// values stay consistent with the edge set.
func FromJSON(data JSON) (*Graph, error) {
	g := New()
	for _, n := range data.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.A, e.B); err != nil {
			return nil, fmt.Errorf("add edge %s--%s: %w", e.A, e.B, err)
		}
	}
	g.AssignWeights()
	return g, nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToJSON(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	var data JSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return FromJSON(data)
}

// ReadGraphFile reads a graph from a JSON file.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

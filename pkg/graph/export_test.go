package graph

import (
	"bytes"
	"strings"
	"testing"
)

func buildSample() *Graph {
	g := New()
	for _, k := range []string{"hub.md", "leaf.md", "pic.png", "orphan.md"} {
		_ = g.AddNode(k)
	}
	_ = g.AddEdge("hub.md", "leaf.md")
	_ = g.AddEdge("hub.md", "pic.png")
	g.AssignWeights()
	return g
}

func TestToJSON(t *testing.T) {
	data := ToJSON(buildSample())

	if len(data.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(data.Nodes))
	}
	// Nodes come out sorted by id.
	if data.Nodes[0].ID != "hub.md" {
		t.Errorf("Nodes[0].ID = %q, want hub.md", data.Nodes[0].ID)
	}
	for _, n := range data.Nodes {
		switch n.ID {
		case "hub.md":
			if n.Degree != 2 || n.Category != "note" {
				t.Errorf("hub.md = %+v, want degree 2, note", n)
			}
		case "pic.png":
			if n.Category != "attachment" {
				t.Errorf("pic.png category = %q, want attachment", n.Category)
			}
		case "orphan.md":
			if n.Degree != 0 {
				t.Errorf("orphan.md degree = %d, want 0", n.Degree)
			}
		}
	}
	if len(data.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2", len(data.Edges))
	}
	for _, e := range data.Edges {
		if e.A > e.B {
			t.Errorf("edge %+v not in canonical order", e)
		}
		if e.Weight != WeightLeaf {
			t.Errorf("edge %s--%s weight = %v, want %v", e.A, e.B, e.Weight, WeightLeaf)
		}
	}
}

func TestReadWriteGraph(t *testing.T) {
	g := buildSample()

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"hub.md"`) {
		t.Error("serialized output missing node id")
	}

	back, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Fatalf("round-trip mismatch: %d/%d nodes, %d/%d edges",
			back.NodeCount(), g.NodeCount(), back.EdgeCount(), g.EdgeCount())
	}
	// Weights are recomputed, not trusted from the wire.
	e, ok := back.Edge("hub.md", "leaf.md")
	if !ok {
		t.Fatal("edge hub.md--leaf.md missing after round trip")
	}
	if e.Weight != WeightLeaf {
		t.Errorf("recomputed weight = %v, want %v", e.Weight, WeightLeaf)
	}
}

func TestFromJSONRejectsBadEdge(t *testing.T) {
	_, err := FromJSON(JSON{
		Nodes: []NodeJSON{{ID: "A.md"}},
		Edges: []EdgeJSON{{A: "A.md", B: "missing.md"}},
	})
	if err == nil {
		t.Fatal("FromJSON with unknown endpoint: expected error, got nil")
	}
}

func TestReadGraphInvalidJSON(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{not json")); err == nil {
		t.Fatal("ReadGraph on garbage: expected error, got nil")
	}
}

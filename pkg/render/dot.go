package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tmolenaar/vaultpaper/pkg/graph"
)

// DOT converts a vault graph to Graphviz DOT format. The graph is
// undirected, attachments are filled with the attachment color, and edge
// weights carry through so Graphviz's own spring engines honor the same
// leaf-edge bias as the built-in layout.
func DOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph vault {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"" + colorNote + "\", fontsize=10];\n")
	buf.WriteString("  edge [color=\"" + colorEdge + "\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", n.Key)}
		if n.Category == graph.CategoryAttachment {
			attrs = append(attrs, "fillcolor=\""+colorAttachment+"\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Key, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q [weight=%g];\n", e.A, e.B, e.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders a DOT string to SVG using in-process Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

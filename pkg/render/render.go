// Package render rasterizes a laid-out vault graph.
//
// The PNG renderer is the primary sink: straight light-gray edges under
// colored node discs, notes and attachments distinguished by color and
// node size growing with degree. All visual mapping lives here - the
// graph and layout packages only ever deal in keys, categories, degrees
// and abstract coordinates.
//
// A DOT exporter plus an in-process Graphviz SVG renderer cover the
// export path of the graph subcommand.
package render

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"

	"github.com/tmolenaar/vaultpaper/pkg/graph"
	"github.com/tmolenaar/vaultpaper/pkg/layout"
)

// Default frame geometry and palette.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultMargin = 48.0

	colorBackground = "#F0F0F0"
	colorEdge       = "#D3D3D3"
	colorNote       = "#6D7A8D"
	colorAttachment = "#F5C277"
)

// Options configures PNG rendering.
type Options struct {
	Width  int     // frame width in pixels
	Height int     // frame height in pixels
	Margin float64 // pixels kept clear around the drawing

	// Background, EdgeColor, NoteColor and AttachmentColor are hex
	// strings ("#RRGGBB"); empty fields use the defaults above.
	Background      string
	EdgeColor       string
	NoteColor       string
	AttachmentColor string
}

// DefaultOptions returns the standard render settings.
func DefaultOptions() Options {
	return Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: DefaultMargin,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.Background == "" {
		o.Background = colorBackground
	}
	if o.EdgeColor == "" {
		o.EdgeColor = colorEdge
	}
	if o.NoteColor == "" {
		o.NoteColor = colorNote
	}
	if o.AttachmentColor == "" {
		o.AttachmentColor = colorAttachment
	}
	return o
}

// PNG renders the graph at the given positions and returns the encoded
// image. Nodes missing from pos are skipped rather than failing the
// render; a complete layout covers every node.
func PNG(g *graph.Graph, pos layout.Positions, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetHexColor(opts.Background)
	dc.Clear()

	project := projector(pos, opts)

	dc.SetHexColor(opts.EdgeColor)
	dc.SetLineWidth(1)
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue // rendered as a node, not a zero-length line
		}
		pa, aok := pos[e.A]
		pb, bok := pos[e.B]
		if !aok || !bok {
			continue
		}
		ax, ay := project(pa)
		bx, by := project(pb)
		dc.DrawLine(ax, ay, bx, by)
		dc.Stroke()
	}

	for _, n := range g.Nodes() {
		p, ok := pos[n.Key]
		if !ok {
			continue
		}
		if n.Category == graph.CategoryAttachment {
			dc.SetHexColor(opts.AttachmentColor)
		} else {
			dc.SetHexColor(opts.NoteColor)
		}
		px, py := project(p)
		dc.DrawCircle(px, py, nodeRadius(g.Degree(n.Key)))
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNGFile renders the graph and writes the image to path.
func WritePNGFile(g *graph.Graph, pos layout.Positions, opts Options, path string) error {
	data, err := PNG(g, pos, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// nodeRadius maps degree to a disc radius in pixels. Hubs grow, but
// sub-linearly, so a single well-linked index note cannot swallow the
// frame.
func nodeRadius(degree int) float64 {
	return 4 + 2*math.Sqrt(float64(degree))
}

// projector returns a mapping from layout coordinates into the pixel
// frame, preserving aspect ratio and centering the drawing inside the
// margin. A layout collapsed to a single point maps to the frame center.
func projector(pos layout.Positions, opts Options) func(layout.Point) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	w := float64(opts.Width) - 2*opts.Margin
	h := float64(opts.Height) - 2*opts.Margin
	spanX := maxX - minX
	spanY := maxY - minY
	scale := 1.0
	if spanX > 0 || spanY > 0 {
		scale = math.Min(w/math.Max(spanX, 1e-12), h/math.Max(spanY, 1e-12))
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	fx := float64(opts.Width) / 2
	fy := float64(opts.Height) / 2

	return func(p layout.Point) (float64, float64) {
		// Flip Y so layout "up" is image "up".
		return fx + (p.X-cx)*scale, fy - (p.Y-cy)*scale
	}
}

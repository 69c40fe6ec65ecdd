package plot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pointmap/pointmap/internal/detail"
)

// SaveSnapshot renders a static image of the data map and writes it to the
// given path. Points are pinned at their coordinates and laid out with
// neato. Supports .png and .svg extensions.
func (p *Plot) SaveSnapshot(path string) error {
	ctx := context.Background()

	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("plot: failed to create graphviz: %w", err)
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(p.snapshotDOT()))
	if err != nil {
		return fmt.Errorf("plot: failed to parse DOT: %w", err)
	}
	defer graph.Close()

	format := graphviz.PNG
	if strings.HasSuffix(path, ".svg") {
		format = graphviz.SVG
	}

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, format, &buf); err != nil {
		return fmt.Errorf("plot: failed to render snapshot: %w", err)
	}

	if err := writeFileBytes(path, buf.Bytes()); err != nil {
		return fmt.Errorf("plot: failed to write snapshot: %w", err)
	}

	return nil
}

// snapshotDOT builds an edge-free DOT graph with one point-shaped node per
// data point, position pinned ("x,y!") so neato keeps the embedding intact.
func (p *Plot) snapshotDOT() string {
	bg := "#1a1a2e"
	fg := "#e4e4e4"
	if p.cfg.Theme == "light" {
		bg = "#ffffff"
		fg = "#333333"
	}

	var sb strings.Builder
	sb.WriteString("graph DataMap {\n")
	sb.WriteString("  layout=neato;\n")
	fmt.Fprintf(&sb, "  bgcolor=%q;\n", bg)
	fmt.Fprintf(&sb, "  label=%q;\n", p.cfg.Title)
	sb.WriteString("  labelloc=t;\n")
	sb.WriteString("  fontsize=24;\n")
	sb.WriteString("  fontname=\"Helvetica-Bold\";\n")
	fmt.Fprintf(&sb, "  fontcolor=%q;\n", fg)
	sb.WriteString("  pad=0.5;\n\n")
	sb.WriteString("  node [shape=point, width=0.08];\n\n")

	var first []string
	if len(p.layers) > 0 {
		first = p.layers[0]
	}

	colors := make(map[string]string)
	nextColor := 0
	for i, pt := range p.geometry {
		color := unlabelledColor
		if first != nil && i < len(first) && !detail.IsNullLike(first[i]) {
			label := first[i]
			c, ok := colors[label]
			if !ok {
				c = seriesPalette[nextColor%len(seriesPalette)]
				colors[label] = c
				nextColor++
			}
			color = c
		}
		fmt.Fprintf(&sb, "  p%d [pos=\"%g,%g!\", color=%q];\n", i, pt[0], pt[1], color)
	}

	sb.WriteString("}\n")
	return sb.String()
}

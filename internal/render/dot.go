package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/roach88/pikov"
)

// ToDOT converts a graph snapshot to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g pikov.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pikov {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=circle, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		if n.Absorbing {
			attrs = append(attrs, "peripheries=2")
		}
		if g.HasStart && n.FrameID == g.StartFrameID {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.FrameID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Count > 1 {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"x%d\"];\n",
				nodeID(e.SourceFrameID), nodeID(e.TargetFrameID), e.Count)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n",
				nodeID(e.SourceFrameID), nodeID(e.TargetFrameID))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(frameID int64) string {
	return strconv.FormatInt(frameID, 10)
}

func nodeLabel(n pikov.GraphNode) string {
	return fmt.Sprintf("%d\n%s", n.FrameID, shortKey(n.ImageKey))
}

// shortKey abbreviates a content key to its first hex digits, enough to
// tell frames apart in a diagram.
func shortKey(key string) string {
	hex := strings.TrimPrefix(key, "md5-")
	if len(hex) > 8 {
		hex = hex[:8]
	}
	return hex
}

// RenderSVG lays out DOT text as an SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderAs(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out DOT text as a PNG image.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderAs(ctx, dot, graphviz.PNG)
}

func renderAs(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer func() { _ = g.Close() }()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Package render turns attributed diagram graphs into DOT text and
// rendered images.
//
// [ToDOT] serializes a [graph.Graph] into Graphviz DOT. Vertex and edge
// attributes are emitted verbatim: a string value that is already a
// quoted token (such as the record labels produced by pkg/uml) passes
// through untouched, everything else is quoted. [RenderSVG] and
// [RenderPNG] lay out and rasterize the DOT via goccy/go-graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/storeman/graph-uml/pkg/graph"
)

// ToDOT converts a diagram graph to Graphviz DOT format. Vertices and
// edges appear in insertion order and attributes in sorted key order,
// so the output is reproducible.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		fmt.Fprintf(&buf, "  %q [%s];\n", v.Key, fmtAttrs(v.Attrs))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if len(e.Attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, fmtAttrs(e.Attrs))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(attrs graph.Attributes) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, k+"="+fmtAttrValue(attrs[k]))
	}
	return strings.Join(parts, ", ")
}

// fmtAttrValue renders one attribute value for DOT. Pre-quoted strings
// (the record-label wire format carries its own escaping) are emitted
// raw; plain strings are quoted; numbers and booleans print bare.
func fmtAttrValue(v any) string {
	switch val := v.(type) {
	case string:
		if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			return val
		}
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return strconv.Quote(fmt.Sprintf("%v", val))
	}
}

// RenderSVG lays out a DOT graph and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG lays out a DOT graph and renders it to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

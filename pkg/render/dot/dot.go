package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// Graphviz layout engines accepted by [RenderSVG].
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
)

// Options configures DOT generation.
type Options struct {
	// Path is drawn with bold red nodes and edges, in order.
	Path []*graph.Vertex

	// Reach is drawn with filled nodes.
	Reach []*graph.Vertex

	// Cost, when set, labels every vertex for which it reports a cost.
	// search.Reach.Cost fits.
	Cost func(*graph.Vertex) (float64, bool)

	// EdgeLabels labels edges with their weight and kind.
	EdgeLabels bool

	// Positions pins vertices to their X/Y coordinates. Render with
	// [EngineNeato] for the pins to take effect.
	Positions bool

	// Detailed adds vertex metadata to the labels.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT source. Undirected graphs produce a
// "graph" with "--" edges, directed ones a "digraph" with "->" edges.
func ToDOT(g *graph.Graph, opts Options) string {
	onPath := make(map[string]bool, len(opts.Path))
	pathEdges := make(map[[2]string]bool, len(opts.Path))
	for i, v := range opts.Path {
		onPath[v.ID] = true
		if i > 0 {
			pathEdges[[2]string{opts.Path[i-1].ID, v.ID}] = true
		}
	}
	inReach := make(map[string]bool, len(opts.Reach))
	for _, v := range opts.Reach {
		inReach[v.ID] = true
	}

	kind, arrow := "digraph", "->"
	if !g.Directed {
		kind, arrow = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [color=grey40];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := []string{fmt.Sprintf("label=%q", vertexLabel(v, opts))}
		if inReach[v.ID] {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		if onPath[v.ID] {
			attrs = append(attrs, "color=red", "penwidth=2.5")
		}
		if opts.Positions {
			// Graphviz puts y up.
			y := -v.Y
			if y == 0 {
				y = 0
			}
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", ftoa(v.X), ftoa(y)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		var attrs []string
		if opts.EdgeLabels {
			label := ftoa(e.Weight)
			if e.Kind != "" {
				label += " " + e.Kind
			}
			attrs = append(attrs, fmt.Sprintf("label=%q", label))
		}
		if pathEdges[[2]string{e.From, e.To}] || (!g.Directed && pathEdges[[2]string{e.To, e.From}]) {
			attrs = append(attrs, "color=red", "penwidth=2.5")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q %s %q;\n", e.From, arrow, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.From, arrow, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexLabel(v *graph.Vertex, opts Options) string {
	parts := []string{v.ID}
	if opts.Cost != nil {
		if c, ok := opts.Cost(v); ok {
			parts = append(parts, ftoa(c))
		}
	}
	if opts.Detailed {
		for _, k := range slices.Sorted(maps.Keys(v.Meta)) {
			parts = append(parts, fmt.Sprintf("%s: %v", k, v.Meta[k]))
		}
	}
	return strings.Join(parts, "\n")
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// RenderSVG renders DOT source to SVG with the given layout engine
// (empty means [EngineDot]). Render hooks are notified.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "svg")
	start := time.Now()

	svg, err := renderSVG(ctx, dot, engine)
	hooks.OnRenderComplete(ctx, "svg", len(svg), time.Since(start), err)
	return svg, err
}

func renderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	if engine == "" {
		engine = EngineDot
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

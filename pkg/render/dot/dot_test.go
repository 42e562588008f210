package dot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/search"
)

func triangle(t *testing.T, directed bool) *graph.Graph {
	t.Helper()
	g := graph.New(directed)
	for _, v := range []graph.Vertex{{ID: "a"}, {ID: "b", X: 1, Y: 2, Meta: graph.Metadata{"zone": "north"}}, {ID: "c", X: 2.5}} {
		if _, err := g.AddVertex(v); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []graph.Edge{
		{From: "a", To: "b", Weight: 1, Kind: "road"},
		{From: "b", To: "c", Weight: 1.5},
		{From: "a", To: "c", Weight: 4},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		opts     func(g *graph.Graph) Options
		want     []string
		notWant  []string
	}{
		{
			name:     "Directed",
			directed: true,
			opts:     func(*graph.Graph) Options { return Options{} },
			want:     []string{"digraph G {", `"a" -> "b";`, `"a" [label="a"];`},
			notWant:  []string{"--", "red", "pos="},
		},
		{
			name:    "Undirected",
			opts:    func(*graph.Graph) Options { return Options{} },
			want:    []string{"graph G {", `"b" -- "c";`},
			notWant: []string{"->"},
		},
		{
			name:     "EdgeLabels",
			directed: true,
			opts:     func(*graph.Graph) Options { return Options{EdgeLabels: true} },
			want:     []string{`"a" -> "b" [label="1 road"];`, `"b" -> "c" [label="1.5"];`},
		},
		{
			name:     "Positions",
			directed: true,
			opts:     func(*graph.Graph) Options { return Options{Positions: true} },
			want:     []string{`pos="1,-2!"`, `pos="2.5,0!"`},
		},
		{
			name:     "Detailed",
			directed: true,
			opts:     func(*graph.Graph) Options { return Options{Detailed: true} },
			want:     []string{`label="b\nzone: north"`},
		},
		{
			name:     "Path",
			directed: true,
			opts: func(g *graph.Graph) Options {
				a, _ := g.Vertex("a")
				b, _ := g.Vertex("b")
				c, _ := g.Vertex("c")
				return Options{Path: []*graph.Vertex{a, b, c}}
			},
			want:    []string{`"a" -> "b" [color=red, penwidth=2.5];`, `"b" [label="b", color=red, penwidth=2.5];`},
			notWant: []string{`"a" -> "c" [`},
		},
		{
			name: "UndirectedPathReversed",
			opts: func(g *graph.Graph) Options {
				b, _ := g.Vertex("b")
				a, _ := g.Vertex("a")
				return Options{Path: []*graph.Vertex{b, a}}
			},
			want: []string{`"a" -- "b" [color=red, penwidth=2.5];`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := triangle(t, tt.directed)
			out := ToDOT(g, tt.opts(g))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q in:\n%s", w, out)
				}
			}
		})
	}
}

func TestToDOT_Reach(t *testing.T) {
	g := triangle(t, true)
	a, _ := g.Vertex("a")

	reach, err := search.FindRange(a, 2)
	if err != nil {
		t.Fatal(err)
	}
	out := ToDOT(g, Options{Reach: reach.Nodes, Cost: reach.Cost})

	for _, w := range []string{
		`"a" [label="a\n0", fillcolor=lightblue];`,
		`"b" [label="b\n1", fillcolor=lightblue];`,
		`"c" [label="c"];`,
	} {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in:\n%s", w, out)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	src := ToDOT(triangle(t, true), Options{EdgeLabels: true})
	svg, err := RenderSVG(context.Background(), src, EngineDot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("svg header not normalized:\n%.300s", svg)
	}
	if !bytes.Contains(svg, []byte("</svg>")) {
		t.Error("svg not closed")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox: got %s", got)
	}
}

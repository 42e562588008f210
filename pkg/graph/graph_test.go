package graph

import (
	"errors"
	"math"
	"slices"
	"testing"

	wperrors "github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/search"
)

func build(t *testing.T, directed bool, ids []string, edges []Edge) *Graph {
	t.Helper()
	g := New(directed)
	for _, id := range ids {
		if _, err := g.AddVertex(Vertex{ID: id}); err != nil {
			t.Fatalf("AddVertex(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddVertex(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"Valid", "depot", nil},
		{"Empty", "", ErrInvalidNodeID},
		{"Whitespace", " depot", ErrInvalidNodeID},
		{"Duplicate", "a", ErrDuplicateNodeID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(true)
			if _, err := g.AddVertex(Vertex{ID: "a"}); err != nil {
				t.Fatal(err)
			}
			v, err := g.AddVertex(Vertex{ID: tt.id})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && (v == nil || v.Meta == nil) {
				t.Error("vertex or metadata is nil")
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{"Valid", Edge{From: "a", To: "b", Weight: 2}, nil},
		{"SelfLoop", Edge{From: "a", To: "a"}, nil},
		{"UnknownSource", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"UnknownTarget", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"Negative", Edge{From: "a", To: "b", Weight: -1}, ErrInvalidCost},
		{"NaN", Edge{From: "a", To: "b", Weight: math.NaN()}, ErrInvalidCost},
		{"Inf", Edge{From: "a", To: "b", Weight: math.Inf(1)}, ErrInvalidCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, true, []string{"a", "b"}, nil)
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUndirected(t *testing.T) {
	g := build(t, false, []string{"a", "b", "c"}, []Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "b", To: "c", Weight: 2},
	})

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if got := g.Neighbors("b"); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Neighbors(b) = %v", got)
	}

	c, _ := g.Vertex("c")
	a, _ := g.Vertex("a")
	path, err := search.FindPath(c, a)
	if err != nil {
		t.Fatal(err)
	}
	if path.Cost != 3 || len(path.Nodes) != 3 {
		t.Errorf("path %v cost %v", path.Nodes, path.Cost)
	}

	if n := g.RemoveEdges("c", "b"); n != 1 {
		t.Errorf("RemoveEdges = %d, want 1", n)
	}
	if got := g.Neighbors("b"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Neighbors(b) after removal = %v", got)
	}
}

func TestDirected(t *testing.T) {
	g := build(t, true, []string{"a", "b"}, []Edge{{From: "a", To: "b", Weight: 1}})
	a, _ := g.Vertex("a")
	b, _ := g.Vertex("b")

	path, err := search.FindPath(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if path.Outcome != search.Unreachable {
		t.Errorf("outcome = %v, want unreachable", path.Outcome)
	}
	if b.OutDegree() != 0 || a.OutDegree() != 1 {
		t.Errorf("out degrees a=%d b=%d", a.OutDegree(), b.OutDegree())
	}
}

func TestProfile(t *testing.T) {
	g := build(t, true, []string{"home", "island", "bridge"}, []Edge{
		{From: "home", To: "island", Weight: 1, Kind: "ferry"},
		{From: "home", To: "bridge", Weight: 2, Kind: "road"},
		{From: "bridge", To: "island", Weight: 2, Kind: "road"},
	})
	home, _ := g.Vertex("home")
	island, _ := g.Vertex("island")

	tests := []struct {
		name  string
		agent search.Agent
		want  []string
		cost  float64
	}{
		{"Default", nil, []string{"home", "island"}, 1},
		{"NoFerry", Forbid("ferry"), []string{"home", "bridge", "island"}, 4},
		{"SlowFerry", Profile{Multipliers: map[string]float64{"ferry": 10}}, []string{"home", "bridge", "island"}, 4},
		{"FastRoad", &Profile{Multipliers: map[string]float64{"road": 0.1}}, []string{"home", "bridge", "island"}, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := search.FindPath(home, island, search.WithAgent(tt.agent))
			if err != nil {
				t.Fatal(err)
			}
			ids := make([]string, len(path.Nodes))
			for i, v := range path.Nodes {
				ids[i] = v.ID
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("path = %v, want %v", ids, tt.want)
			}
			if math.Abs(path.Cost-tt.cost) > 1e-9 {
				t.Errorf("cost = %v, want %v", path.Cost, tt.cost)
			}
		})
	}
}

func TestHeuristic(t *testing.T) {
	g := New(true)
	a, _ := g.AddVertex(Vertex{ID: "a"})
	b, _ := g.AddVertex(Vertex{ID: "b", X: 3, Y: 4})

	if h := a.Heuristic(b, nil); h != 0 {
		t.Errorf("unweighted heuristic = %v, want 0", h)
	}
	g.HeuristicWeight = 0.5
	if h := a.Heuristic(b, nil); h != 2.5 {
		t.Errorf("heuristic = %v, want 2.5", h)
	}
}

func TestLookup(t *testing.T) {
	g := build(t, true, []string{"a"}, nil)
	if _, err := g.Lookup("a"); err != nil {
		t.Fatal(err)
	}
	_, err := g.Lookup("zz")
	if !wperrors.Is(err, wperrors.ErrCodeNodeNotFound) {
		t.Errorf("err = %v, want NODE_NOT_FOUND", err)
	}
}

func TestKindsAndEdges(t *testing.T) {
	g := build(t, false, []string{"a", "b", "c"}, []Edge{
		{From: "a", To: "b", Weight: 1, Kind: "road"},
		{From: "b", To: "c", Weight: 1, Kind: "rail"},
		{From: "a", To: "c", Weight: 5, Kind: "road"},
	})
	if got := g.Kinds(); !slices.Equal(got, []string{"road", "rail"}) {
		t.Errorf("Kinds = %v", got)
	}
	edges := g.Edges()
	if len(edges) != 3 || edges[2].From != "a" || edges[2].To != "c" {
		t.Errorf("Edges = %+v", edges)
	}
	edges[0].Weight = 99
	if g.Edges()[0].Weight != 1 {
		t.Error("Edges returned a view into the graph")
	}
	if got := len(g.Vertices()); got != 3 || g.VertexCount() != 3 {
		t.Errorf("vertex count = %d", got)
	}
}

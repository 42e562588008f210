package graph

import (
	"errors"
	"iter"
	"math"
	"slices"

	wperrors "github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/search"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddVertex] when the vertex ID
	// is empty, too long, or contains control characters or surrounding
	// whitespace.
	ErrInvalidNodeID = errors.New("invalid node ID")

	// ErrDuplicateNodeID is returned by [Graph.AddVertex] when a vertex with
	// the same ID already exists. Vertex IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From
	// vertex does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To vertex
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidCost is returned by [Graph.AddEdge] when the edge weight is
	// negative, NaN or infinite. Searches assume non-negative costs.
	ErrInvalidCost = errors.New("edge cost must be finite and non-negative")
)

// Metadata stores arbitrary key-value pairs attached to vertices or edges.
// Metadata maps are never nil after the element is added to a graph.
type Metadata map[string]any

// Vertex is a node of a [Graph]. *Vertex implements [search.Node].
//
// The zero value is not usable on its own: vertices are created by
// [Graph.AddVertex].
type Vertex struct {
	ID   string
	X, Y float64 // Position used by the straight-line heuristic
	Meta Metadata

	out []*Edge
	g   *Graph
}

// String returns the vertex ID.
func (v *Vertex) String() string { return v.ID }

// Links yields the vertex's outgoing edges in insertion order, skipping
// edges the agent's [Profile] forbids.
func (v *Vertex) Links(agent search.Agent) iter.Seq[search.Link[*Vertex]] {
	p := profileOf(agent)
	return func(yield func(search.Link[*Vertex]) bool) {
		for _, e := range v.out {
			if p.forbids(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Heuristic returns the graph's heuristic weight times the Euclidean
// distance between the vertex positions. With the default weight of 0 path
// search degrades to Dijkstra's algorithm, which is safe for any layout.
func (v *Vertex) Heuristic(to *Vertex, _ search.Agent) float64 {
	if v.g.HeuristicWeight == 0 {
		return 0
	}
	return v.g.HeuristicWeight * math.Hypot(v.X-to.X, v.Y-to.Y)
}

// OutDegree returns the number of outgoing edges, including the reverse
// halves of undirected edges.
func (v *Vertex) OutDegree() int { return len(v.out) }

// Edge is a weighted connection between two vertices. *Edge implements
// [search.Link].
type Edge struct {
	From   string
	To     string
	Weight float64
	Kind   string // Free-form class priced by a Profile, e.g. "road" or "ferry"
	Meta   Metadata

	to      *Vertex
	reverse bool // second half of an undirected edge
}

// Target returns the vertex the edge leads to.
func (e *Edge) Target() *Vertex { return e.to }

// Cost returns the weight scaled by the agent's [Profile] multiplier for the
// edge kind. Agents that are not profiles pay the plain weight.
func (e *Edge) Cost(agent search.Agent) float64 {
	return profileOf(agent).cost(e)
}

// Graph is a weighted graph of string-identified vertices. Undirected graphs
// store every edge once and link both endpoints to each other.
//
// The zero value is not usable - use [New]. A Graph is not safe for
// concurrent modification, but any number of searches may run over it
// concurrently once it is built.
type Graph struct {
	Directed bool

	// HeuristicWeight scales the straight-line distance between vertex
	// positions used as the search heuristic. Keep it at most the smallest
	// ratio of edge cost to edge length for optimal paths.
	HeuristicWeight float64

	vertices map[string]*Vertex
	order    []*Vertex
	edges    []*Edge
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		Directed: directed,
		vertices: make(map[string]*Vertex),
	}
}

// AddVertex adds a vertex and returns it. Only ID, X, Y and Meta of v are
// used.
func (g *Graph) AddVertex(v Vertex) (*Vertex, error) {
	if err := wperrors.ValidateNodeID(v.ID); err != nil {
		return nil, errors.Join(ErrInvalidNodeID, err)
	}
	if _, exists := g.vertices[v.ID]; exists {
		return nil, ErrDuplicateNodeID
	}
	if v.Meta == nil {
		v.Meta = Metadata{}
	}
	vx := &Vertex{ID: v.ID, X: v.X, Y: v.Y, Meta: v.Meta, g: g}
	g.vertices[vx.ID] = vx
	g.order = append(g.order, vx)
	return vx, nil
}

// AddEdge adds an edge between two existing vertices. In an undirected
// graph the edge can be traversed both ways at the same cost. Parallel
// edges are allowed; searches use the cheapest.
func (g *Graph) AddEdge(e Edge) error {
	from, ok := g.vertices[e.From]
	if !ok {
		return ErrUnknownSourceNode
	}
	to, ok := g.vertices[e.To]
	if !ok {
		return ErrUnknownTargetNode
	}
	if wperrors.ValidateCost(e.Weight) != nil {
		return ErrInvalidCost
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}

	fwd := &Edge{From: e.From, To: e.To, Weight: e.Weight, Kind: e.Kind, Meta: e.Meta, to: to}
	g.edges = append(g.edges, fwd)
	from.out = append(from.out, fwd)
	if !g.Directed && from != to {
		rev := &Edge{From: e.To, To: e.From, Weight: e.Weight, Kind: e.Kind, Meta: e.Meta, to: from, reverse: true}
		to.out = append(to.out, rev)
	}
	return nil
}

// RemoveEdges removes every edge from -> to (and its reverse half in an
// undirected graph). It reports how many edges were removed.
func (g *Graph) RemoveEdges(from, to string) int {
	match := func(e *Edge) bool {
		if e.From == from && e.To == to {
			return true
		}
		return !g.Directed && e.From == to && e.To == from
	}
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, match)
	for _, id := range []string{from, to} {
		if v, ok := g.vertices[id]; ok {
			v.out = slices.DeleteFunc(v.out, match)
		}
	}
	return before - len(g.edges)
}

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id string) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Lookup is like [Graph.Vertex] but returns a [wperrors.NodeNotFoundError]
// for unknown IDs.
func (g *Graph) Lookup(id string) (*Vertex, error) {
	if v, ok := g.vertices[id]; ok {
		return v, nil
	}
	return nil, &wperrors.NodeNotFoundError{ID: id}
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order. Undirected edges
// appear once, as added.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{From: e.From, To: e.To, Weight: e.Weight, Kind: e.Kind, Meta: e.Meta}
	}
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.order) }

// EdgeCount returns the number of edges as added.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the IDs of the vertices reachable from id in one step,
// in link order. Returns nil for unknown IDs.
func (g *Graph) Neighbors(id string) []string {
	v, ok := g.vertices[id]
	if !ok {
		return nil
	}
	var ids []string
	for _, e := range v.out {
		ids = append(ids, e.To)
	}
	return ids
}

// Kinds returns the distinct edge kinds in first-seen order.
func (g *Graph) Kinds() []string {
	var kinds []string
	for _, e := range g.edges {
		if e.Kind != "" && !slices.Contains(kinds, e.Kind) {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
)

// Format names a graph file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported graph file extension %q", filepath.Ext(path))
}

// document is the wire form shared by all formats.
type document struct {
	Directed        bool    `json:"directed" yaml:"directed" toml:"directed"`
	HeuristicWeight float64 `json:"heuristic_weight,omitempty" yaml:"heuristic_weight,omitempty" toml:"heuristic_weight,omitempty"`
	Nodes           []node  `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges           []edge  `json:"edges" yaml:"edges" toml:"edges"`
}

type node struct {
	ID   string         `json:"id" yaml:"id" toml:"id"`
	X    float64        `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y    float64        `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Meta graph.Metadata `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

type edge struct {
	From string         `json:"from" yaml:"from" toml:"from"`
	To   string         `json:"to" yaml:"to" toml:"to"`
	Cost *float64       `json:"cost,omitempty" yaml:"cost,omitempty" toml:"cost,omitempty"`
	Kind string         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Meta graph.Metadata `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// DefaultCost is the weight of edges that omit "cost".
const DefaultCost = 1.0

func fromDocument(doc document) (*graph.Graph, error) {
	g := graph.New(doc.Directed)
	g.HeuristicWeight = doc.HeuristicWeight
	if err := errors.ValidateCost(doc.HeuristicWeight); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "heuristic_weight")
	}
	for _, n := range doc.Nodes {
		if _, err := g.AddVertex(graph.Vertex{ID: n.ID, X: n.X, Y: n.Y, Meta: n.Meta}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %q", n.ID)
		}
	}
	for _, e := range doc.Edges {
		cost := DefaultCost
		if e.Cost != nil {
			cost = *e.Cost
		}
		err := g.AddEdge(graph.Edge{From: e.From, To: e.To, Weight: cost, Kind: e.Kind, Meta: e.Meta})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
	}
	return g, nil
}

func toDocument(g *graph.Graph) document {
	doc := document{
		Directed:        g.Directed,
		HeuristicWeight: g.HeuristicWeight,
		Nodes:           make([]node, 0, g.VertexCount()),
		Edges:           make([]edge, 0, g.EdgeCount()),
	}
	for _, v := range g.Vertices() {
		doc.Nodes = append(doc.Nodes, node{ID: v.ID, X: v.X, Y: v.Y, Meta: cleanMeta(v.Meta)})
	}
	for _, e := range g.Edges() {
		out := edge{From: e.From, To: e.To, Kind: e.Kind, Meta: cleanMeta(e.Meta)}
		if e.Weight != DefaultCost {
			cost := e.Weight
			out.Cost = &cost
		}
		doc.Edges = append(doc.Edges, out)
	}
	return doc
}

func cleanMeta(m graph.Metadata) graph.Metadata {
	if len(m) == 0 {
		return nil
	}
	return m
}

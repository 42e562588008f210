// Package graph provides an explicit weighted graph whose vertices can be
// searched with package search.
//
// # Basic Usage
//
// Create a graph with [New], add vertices with [Graph.AddVertex] and edges
// with [Graph.AddEdge]. Vertex IDs must be unique; edges may only connect
// existing vertices and must have non-negative finite weights:
//
//	g := graph.New(false)
//	depot, _ := g.AddVertex(graph.Vertex{ID: "depot"})
//	market, _ := g.AddVertex(graph.Vertex{ID: "market", X: 3})
//	_ = g.AddEdge(graph.Edge{From: "depot", To: "market", Weight: 4, Kind: "road"})
//
//	path, _ := search.FindPath(depot, market)
//
// # Edge Kinds and Profiles
//
// Every edge carries a free-form kind. A [Profile] passed as the search
// agent scales weights per kind or forbids kinds outright, so the same graph
// answers "fastest by car" and "fastest on foot" without being rebuilt.
//
// # Heuristic
//
// Vertices carry an optional position. [Graph.HeuristicWeight] turns the
// straight-line distance between positions into the search heuristic. The
// default weight of 0 disables it, which is always safe but explores more.
//
// # Concurrency
//
// Graphs are not safe for concurrent modification. A fully built graph is
// read-only to searches, so any number may run over it in parallel.
package graph

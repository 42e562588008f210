// Package pkg holds the waypoint libraries.
//
// # Overview
//
// Waypoint finds cheapest paths and bounded-cost ranges over any graph whose
// nodes can list their outgoing links. The search engine knows nothing about
// the graphs it runs on; tiles of a character grid and vertices of a weighted
// graph file both satisfy the same small node contract.
//
// # Packages
//
//	pqueue         binary min-heap keyed by float64 priority
//	search         A* path search, Dijkstra range search, reusable searchers
//	grid           character maps as search nodes, plus terrain generation
//	graph          weighted graphs from JSON, YAML or TOML as search nodes
//	io             graph file import by extension
//	render/dot     Graphviz DOT export with path and range highlighting
//	render         SVG to PDF and PNG conversion
//	cache          on-disk cache of rendered diagrams
//	errors         coded errors shared by every package
//	observability  search, load and render hooks; Prometheus adapter
//	buildinfo      version information
//
// # Quick Start
//
//	m, err := grid.Parse("s..\n.#.\n..e")
//	if err != nil {
//		return err
//	}
//	path, err := search.FindPath(m.Start, m.End, search.WithMaxIterations(1000))
//	if err != nil {
//		return err
//	}
//	fmt.Println(path.Outcome, path.Cost, m.Overlay('*', path.Nodes...))
package pkg

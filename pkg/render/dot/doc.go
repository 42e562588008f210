// Package dot renders weighted graphs and search results as Graphviz
// diagrams.
//
// # Usage
//
// Convert a graph to DOT, optionally highlighting a path or a reachable
// set, then render it to SVG:
//
//	src := dot.ToDOT(g, dot.Options{Path: path.Nodes, EdgeLabels: true})
//	svg, err := dot.RenderSVG(ctx, src, dot.EngineDot)
//
// For a range search, pass the reached vertices and their costs:
//
//	src := dot.ToDOT(g, dot.Options{Reach: reach.Nodes, Cost: reach.Cost})
//
// With [Options.Positions] vertices are pinned to their coordinates; render
// with [EngineNeato] to honour the pins.
//
// # Dependencies
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]. PDF and PNG conversion goes through
// package render and needs rsvg-convert.
package dot

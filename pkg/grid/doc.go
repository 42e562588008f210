// Package grid provides rectangular tile maps that can be searched with
// package search.
//
// Maps are written as ASCII art, one rune per tile:
//
//	s....#....
//	..~~.#..e.
//	..~~...3..
//
// '#' is blocked, the digits 1 to 9 cost their value to enter, 's' and 'e'
// mark the start and end tiles, and every other rune costs 1. The TOML form
// (see [Config]) adds a name, per-rune costs, the heuristic weight and
// whether diagonal steps are allowed.
//
// Moving onto a tile costs the tile's entering cost, multiplied by sqrt(2)
// for diagonal steps. A [Walker] passed as the search agent can rescale
// costs per rune, make runes impassable or forbid diagonals:
//
//	m, _ := grid.Parse(layout)
//	path, _ := search.FindPath(m.Start, m.End, search.WithAgent(grid.Avoid('~')))
//	fmt.Println(m.Overlay('*', path.Nodes...))
//
// Tile links are computed on demand, so maps are cheap to build. A Map must
// not be modified while a search over it is running.
package grid

package grid

import (
	"fmt"
	"iter"
	"math"

	"github.com/matzehuels/waypoint/pkg/search"
)

// Reserved layout runes.
const (
	BlockedRune = '#'
	StartRune   = 's'
	EndRune     = 'e'
)

// DefaultHeuristicWeight is the heuristic weight of maps whose tiles all
// cost at least 1. Cheaper tiles lower it; see [Config].
const DefaultHeuristicWeight = 1.0

// Tile is a single cell of a [Map]. *Tile implements [search.Node].
type Tile struct {
	X, Y    int
	Rune    rune    // Layout rune the tile was parsed from
	Cost    float64 // Base cost of entering the tile orthogonally
	Blocked bool

	m *Map
}

// String returns the tile's coordinates.
func (t *Tile) String() string { return fmt.Sprintf("(%d,%d)", t.X, t.Y) }

// Links yields a link to every passable neighbor in the tile's 8-neighborhood
// (4-neighborhood when diagonals are disabled by the map or the [Walker]).
// A link costs the target tile's entering cost, times sqrt(2) on diagonals.
// Neighbors are yielded column by column, top to bottom.
func (t *Tile) Links(agent search.Agent) iter.Seq[search.Link[*Tile]] {
	w := walkerOf(agent)
	m := t.m
	diagonal := m.Diagonal && (w == nil || !w.Orthogonal)

	return func(yield func(search.Link[*Tile]) bool) {
		for x := max(0, t.X-1); x <= min(m.Width-1, t.X+1); x++ {
			for y := max(0, t.Y-1); y <= min(m.Height-1, t.Y+1); y++ {
				n := m.tiles[x+y*m.Width]
				if n == t || n.Blocked {
					continue
				}
				diag := x != t.X && y != t.Y
				if diag && !diagonal {
					continue
				}
				cost := w.enter(n)
				if math.IsInf(cost, 1) {
					continue
				}
				if diag {
					cost *= math.Sqrt2
				}
				if !yield(search.SimpleLink[*Tile]{To: n, Weight: cost}) {
					return
				}
			}
		}
	}
}

// Heuristic returns the map's heuristic weight times the Euclidean distance
// between the two tiles.
func (t *Tile) Heuristic(to *Tile, _ search.Agent) float64 {
	return t.m.HeuristicWeight * math.Hypot(float64(t.X-to.X), float64(t.Y-to.Y))
}

// Map is a rectangular tile map.
type Map struct {
	Name            string
	Width, Height   int
	HeuristicWeight float64 // 0 turns path search into Dijkstra
	Diagonal        bool

	// Start and End are the tiles marked 's' and 'e' in the layout, or nil.
	Start, End *Tile

	tiles []*Tile // row-major
}

// At returns the tile at (x, y), or nil when out of bounds.
func (m *Map) At(x, y int) *Tile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	return m.tiles[x+y*m.Width]
}

// Tiles returns all tiles in row-major order.
func (m *Map) Tiles() []*Tile { return m.tiles }

// Passable returns the number of tiles that are not blocked.
func (m *Map) Passable() int {
	n := 0
	for _, t := range m.tiles {
		if !t.Blocked {
			n++
		}
	}
	return n
}

package grid

import (
	"math/rand"
	"strings"

	"github.com/matzehuels/waypoint/pkg/errors"
)

// Terrain configures [Generate].
type Terrain struct {
	Width, Height int

	// Walls in [0, 1) is the chance that a tile is blocked. Defaults to 0.2.
	Walls float64

	// MaxCost in [1, 9] bounds the digit cost of passable tiles, which is
	// drawn uniformly. Defaults to 3.
	MaxCost int
}

// Generate builds a random map of scattered walls and weighted tiles. The
// start is the first passable tile in row-major order, the end the last.
// The same rng state always yields the same map.
func Generate(rng *rand.Rand, t Terrain) (*Map, error) {
	if t.Width <= 0 || t.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "terrain size %dx%d must be positive", t.Width, t.Height)
	}
	if t.Walls == 0 {
		t.Walls = 0.2
	}
	if t.MaxCost == 0 {
		t.MaxCost = 3
	}
	if t.Walls < 0 || t.Walls >= 1 || t.MaxCost < 1 || t.MaxCost > 9 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "wall density %v or max cost %d out of range", t.Walls, t.MaxCost)
	}

	rows := make([][]rune, t.Height)
	for y := range rows {
		rows[y] = make([]rune, t.Width)
		for x := range rows[y] {
			if rng.Float64() < t.Walls {
				rows[y][x] = BlockedRune
			} else {
				rows[y][x] = rune('1' + rng.Intn(t.MaxCost))
			}
		}
	}
	if !placeEnds(rows) {
		return nil, errors.New(errors.ErrCodeInvalidMap, "generated terrain has fewer than two passable tiles")
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = string(r)
	}
	return Config{Layout: strings.Join(lines, "\n")}.Build()
}

func placeEnds(rows [][]rune) bool {
	var first, last *rune
	for y := range rows {
		for x := range rows[y] {
			if rows[y][x] == BlockedRune {
				continue
			}
			if first == nil {
				first = &rows[y][x]
			}
			last = &rows[y][x]
		}
	}
	if first == nil || first == last {
		return false
	}
	*first, *last = StartRune, EndRune
	return true
}

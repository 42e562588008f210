package grid

import "math"

// Walker is the agent type understood by [Tile.Links]. Pass it to a search
// with [search.WithAgent], either as a value or a pointer.
//
// Multipliers below 1 make entering costs smaller than the heuristic assumes
// and can cost path optimality.
type Walker struct {
	// Multipliers scales the entering cost of tiles by layout rune. A
	// multiplier of +Inf makes the rune impassable for this walker.
	Multipliers map[rune]float64

	// Orthogonal forbids diagonal steps even on diagonal maps.
	Orthogonal bool
}

// Avoid returns a walker for which the given runes are impassable.
func Avoid(runes ...rune) *Walker {
	w := &Walker{Multipliers: make(map[rune]float64, len(runes))}
	for _, r := range runes {
		w.Multipliers[r] = math.Inf(1)
	}
	return w
}

// enter returns the cost of entering t orthogonally. A nil walker pays the
// base cost.
func (w *Walker) enter(t *Tile) float64 {
	if w == nil {
		return t.Cost
	}
	if f, ok := w.Multipliers[t.Rune]; ok {
		if math.IsInf(f, 1) {
			return f
		}
		return t.Cost * f
	}
	return t.Cost
}

func walkerOf(agent any) *Walker {
	switch w := agent.(type) {
	case *Walker:
		return w
	case Walker:
		return &w
	}
	return nil
}

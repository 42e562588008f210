package grid

import "strings"

// Layer marks a set of tiles with a rune when drawing a map.
type Layer struct {
	Tiles []*Tile
	Mark  rune
}

// Draw returns the map's layout with each layer's tiles replaced by its
// mark. Later layers are drawn over earlier ones. Start and end tiles always
// keep their runes, and tiles of other maps are ignored.
func (m *Map) Draw(layers ...Layer) string {
	grid := make([]rune, len(m.tiles))
	for i, t := range m.tiles {
		grid[i] = t.Rune
	}
	for _, l := range layers {
		for _, t := range l.Tiles {
			if t == nil || t.m != m || t == m.Start || t == m.End {
				continue
			}
			grid[t.X+t.Y*m.Width] = l.Mark
		}
	}

	var b strings.Builder
	b.Grow(len(grid) + m.Height)
	for y := 0; y < m.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range grid[y*m.Width : (y+1)*m.Width] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Overlay is shorthand for drawing a single layer.
func (m *Map) Overlay(mark rune, tiles ...*Tile) string {
	return m.Draw(Layer{Tiles: tiles, Mark: mark})
}

package grid

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/observability"
)

// Config is the TOML form of a map:
//
//	name = "fort"
//	heuristic_weight = 1.0  # optional
//	diagonal = true
//	layout = """
//	s..~~#...
//	...~~#..e
//	"""
//
//	[costs]
//	"~" = 4
//
// Digits 1-9 in the layout cost their value, '#' is blocked, and every other
// rune costs 1 unless listed in costs.
//
// An omitted heuristic_weight is the smaller of [DefaultHeuristicWeight] and
// the cheapest passable tile, which keeps the heuristic admissible. An
// explicit 0 disables the heuristic.
type Config struct {
	Name            string             `toml:"name"`
	HeuristicWeight *float64           `toml:"heuristic_weight,omitempty"`
	Diagonal        *bool              `toml:"diagonal"`
	Layout          string             `toml:"layout"`
	Costs           map[string]float64 `toml:"costs,omitempty"`
}

// Parse builds a diagonal map from an ASCII layout with default costs.
func Parse(layout string) (*Map, error) {
	return Config{Layout: layout}.Build()
}

// Build validates the configuration and builds the map.
//
// Rows are separated by newlines and must all have the same width. A
// trailing newline and carriage returns are ignored. At most one start and
// one end rune may appear.
func (c Config) Build() (*Map, error) {
	costs, err := c.runeCosts()
	if err != nil {
		return nil, err
	}

	layout := strings.ReplaceAll(c.Layout, "\r", "")
	layout = strings.TrimPrefix(layout, "\n")
	layout = strings.TrimSuffix(layout, "\n")
	if layout == "" {
		return nil, errors.New(errors.ErrCodeInvalidMap, "layout is empty")
	}
	rows := strings.Split(layout, "\n")

	m := &Map{
		Name:     c.Name,
		Width:    utf8.RuneCountInString(rows[0]),
		Height:   len(rows),
		Diagonal: c.Diagonal == nil || *c.Diagonal,
	}
	if c.HeuristicWeight != nil {
		if err := errors.ValidateCost(*c.HeuristicWeight); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMap, err, "heuristic weight")
		}
		m.HeuristicWeight = *c.HeuristicWeight
	}
	if m.Width == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMap, "row 1 is empty")
	}
	m.tiles = make([]*Tile, 0, m.Width*m.Height)

	for y, row := range rows {
		if w := utf8.RuneCountInString(row); w != m.Width {
			return nil, errors.New(errors.ErrCodeInvalidMap, "row %d has width %d, want %d", y+1, w, m.Width)
		}
		x := 0
		for _, r := range row {
			t := &Tile{X: x, Y: y, Rune: r, Cost: 1, Blocked: r == BlockedRune, m: m}
			if cost, ok := costs[r]; ok {
				t.Cost = cost
			} else if r >= '1' && r <= '9' {
				t.Cost = float64(r - '0')
			}
			switch r {
			case StartRune:
				if m.Start != nil {
					return nil, errors.New(errors.ErrCodeInvalidMap, "second start tile at %s", t)
				}
				m.Start = t
			case EndRune:
				if m.End != nil {
					return nil, errors.New(errors.ErrCodeInvalidMap, "second end tile at %s", t)
				}
				m.End = t
			}
			m.tiles = append(m.tiles, t)
			x++
		}
	}
	if c.HeuristicWeight == nil {
		m.HeuristicWeight = admissibleWeight(m.tiles)
	}
	return m, nil
}

// admissibleWeight returns the largest weight up to DefaultHeuristicWeight
// for which weighted Euclidean distance never exceeds the cost of a route.
func admissibleWeight(tiles []*Tile) float64 {
	w := DefaultHeuristicWeight
	for _, t := range tiles {
		if !t.Blocked {
			w = min(w, t.Cost)
		}
	}
	return w
}

func (c Config) runeCosts() (map[rune]float64, error) {
	costs := make(map[rune]float64, len(c.Costs))
	for k, v := range c.Costs {
		if utf8.RuneCountInString(k) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidMap, "cost key %q must be a single character", k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		if r == BlockedRune {
			return nil, errors.New(errors.ErrCodeInvalidMap, "cost key %q is reserved for blocked tiles", k)
		}
		if err := errors.ValidateCost(v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMap, err, "cost of %q", k)
		}
		costs[r] = v
	}
	return costs, nil
}

// Config returns the TOML form of m. Costs that differ from the layout
// defaults are listed in the costs table.
func (m *Map) Config() Config {
	diagonal, weight := m.Diagonal, m.HeuristicWeight
	c := Config{
		Name:            m.Name,
		HeuristicWeight: &weight,
		Diagonal:        &diagonal,
		Layout:          m.String(),
	}
	for _, t := range m.tiles {
		if t.Blocked || t.Cost == defaultCost(t.Rune) {
			continue
		}
		if c.Costs == nil {
			c.Costs = make(map[string]float64)
		}
		c.Costs[string(t.Rune)] = t.Cost
	}
	return c
}

func defaultCost(r rune) float64 {
	if r >= '1' && r <= '9' {
		return float64(r - '0')
	}
	return 1
}

// String returns the map's ASCII layout without a trailing newline.
func (m *Map) String() string {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < m.Width; x++ {
			b.WriteRune(m.tiles[x+y*m.Width].Rune)
		}
	}
	return b.String()
}

// ReadASCII decodes a plain ASCII layout from r.
func ReadASCII(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(string(data))
}

// ReadTOML decodes a TOML map from r. Unknown keys are rejected.
func ReadTOML(r io.Reader) (*Map, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode map")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown map key %q", undecoded[0].String())
	}
	return c.Build()
}

// WriteTOML encodes m as TOML. The output can be read back with [ReadTOML].
func WriteTOML(m *Map, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(m.Config()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Load reads a map file, choosing the decoder by extension: ".toml" for
// [ReadTOML], anything else for [ReadASCII]. Unnamed maps are named after
// the file.
func Load(ctx context.Context, path string) (*Map, error) {
	format := "ascii"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}

	hooks := observability.Load()
	hooks.OnLoadStart(ctx, format, path)
	start := time.Now()

	m, err := load(path, format)
	count := 0
	if m != nil {
		count = m.Passable()
	}
	hooks.OnLoadComplete(ctx, format, path, count, time.Since(start), err)
	return m, err
}

func load(path, format string) (*Map, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "map %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var m *Map
	if format == "toml" {
		m, err = ReadTOML(f)
	} else {
		m, err = ReadASCII(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

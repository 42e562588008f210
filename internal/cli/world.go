package cli

import (
	"context"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/io"
	"github.com/matzehuels/waypoint/pkg/search"
)

// world is a loaded map or graph file. Exactly one of grid and graph is set.
type world struct {
	path  string
	grid  *grid.Map
	graph *graph.Graph
}

func (w *world) kind() string {
	if w.grid != nil {
		return "grid"
	}
	return "graph"
}

// loadWorld loads path as a grid map or a graph. JSON and YAML files are
// graphs. TOML files are grid maps when they define a layout and graphs
// otherwise. Everything else is read as an ASCII grid.
func loadWorld(ctx context.Context, path string) (*world, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return loadGraph(ctx, path)
	case ".toml":
		if !definesLayout(path) {
			return loadGraph(ctx, path)
		}
	}
	m, err := grid.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return &world{path: path, grid: m}, nil
}

func loadGraph(ctx context.Context, path string) (*world, error) {
	g, err := io.Import(ctx, path)
	if err != nil {
		return nil, err
	}
	return &world{path: path, graph: g}, nil
}

// definesLayout reports whether the TOML file at path has a top-level
// layout key. Unreadable files report true so that the grid loader produces
// the error.
func definesLayout(path string) bool {
	var probe map[string]any
	md, err := toml.DecodeFile(path, &probe)
	if err != nil {
		return true
	}
	return md.IsDefined("layout")
}

// =============================================================================
// Endpoints
// =============================================================================

// gridEnds resolves --from/--to on a grid, defaulting to the map's s and e
// tiles.
func gridEnds(m *grid.Map, from, to string) (*grid.Tile, *grid.Tile, error) {
	start, err := gridTile(m, from, m.Start, "start")
	if err != nil {
		return nil, nil, err
	}
	end, err := gridTile(m, to, m.End, "end")
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func gridTile(m *grid.Map, coord string, def *grid.Tile, role string) (*grid.Tile, error) {
	if coord == "" {
		if def == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "map %s has no %s tile; pass it as x,y", m.Name, role)
		}
		return def, nil
	}
	x, y, err := parseCoord(coord)
	if err != nil {
		return nil, err
	}
	t := m.At(x, y)
	if t == nil {
		return nil, &errors.NodeNotFoundError{ID: coord, Source: m.Name}
	}
	if t.Blocked {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s tile %s is blocked", role, t)
	}
	return t, nil
}

// graphVertex resolves a vertex ID flag; graphs have no default endpoints.
func graphVertex(g *graph.Graph, id, flag string) (*graph.Vertex, error) {
	if id == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--%s is required for graphs", flag)
	}
	return g.Lookup(id)
}

// =============================================================================
// Agents
// =============================================================================

// agentFlags selects the agent a search runs with.
type agentFlags struct {
	avoid      string // grid runes the walker cannot enter
	orthogonal bool   // grid walker moves without diagonals
	forbid     []string
	weights    string // rune=factor on grids, kind=factor on graphs
}

func (f *agentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.avoid, "avoid", "", "grid runes the walker cannot enter, e.g. \"~^\"")
	cmd.Flags().BoolVar(&f.orthogonal, "orthogonal", false, "forbid diagonal steps on grids")
	cmd.Flags().StringSliceVar(&f.forbid, "forbid", nil, "graph edge kinds the search cannot use")
	cmd.Flags().StringVar(&f.weights, "weights", "", "cost multipliers: rune=factor on grids, kind=factor on graphs")
}

// gridAgent builds a walker, or nil when no grid flag is set.
func (f *agentFlags) gridAgent() (search.Agent, error) {
	mult, err := parseMultipliers(f.weights)
	if err != nil {
		return nil, err
	}
	if f.avoid == "" && !f.orthogonal && len(mult) == 0 {
		return nil, nil
	}
	w := grid.Avoid([]rune(f.avoid)...)
	w.Orthogonal = f.orthogonal
	for k, v := range mult {
		r := []rune(k)
		if len(r) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "grid weight key %q must be a single rune", k)
		}
		if _, avoided := w.Multipliers[r[0]]; !avoided {
			w.Multipliers[r[0]] = v
		}
	}
	return w, nil
}

// graphAgent builds a profile, or nil when no graph flag is set.
func (f *agentFlags) graphAgent() (search.Agent, error) {
	mult, err := parseMultipliers(f.weights)
	if err != nil {
		return nil, err
	}
	if len(f.forbid) == 0 && len(mult) == 0 {
		return nil, nil
	}
	p := graph.Forbid(f.forbid...)
	for k, v := range mult {
		if !math.IsInf(p.Multipliers[k], 1) {
			p.Multipliers[k] = v
		}
	}
	return p, nil
}

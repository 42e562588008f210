package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/cache"
	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/render/dot"
	"github.com/matzehuels/waypoint/pkg/search"
)

// pathOpts holds the flags of the path command.
type pathOpts struct {
	search searchFlags
	agent  agentFlags
	dot    string // graphs: write DOT source here
	svg    string // graphs: write an SVG here
	plain  bool   // print grid overlays without color

	noCache bool
	cache   cache.Cache
}

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	var opts pathOpts

	cmd := &cobra.Command{
		Use:   "path [map|graph]",
		Short: "Find the cheapest path between two nodes",
		Long: `Find the cheapest path between two nodes with A* search.

Grid maps default to their s and e tiles and print the path drawn over the
map. Graphs need --from and --to and can also be rendered with --dot or
--svg.`,
		Example: `  waypoint path examples/maps/corridor.txt
  waypoint path examples/maps/moat.toml --from 0,0 --to 9,4 --orthogonal
  waypoint path examples/graphs/roads.json --from depot --to market --svg route.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.cache = openCache(cmd, opts.noCache)
			defer opts.cache.Close()
			return runPath(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], &opts)
		},
	}

	opts.search.register(cmd)
	opts.agent.register(cmd)
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the graph with the path highlighted as DOT (graphs only)")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the graph with the path highlighted as SVG (graphs only)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the map without colors")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run Graphviz for --svg, bypassing the render cache")

	return cmd
}

func runPath(ctx context.Context, p printer, input string, opts *pathOpts) error {
	w, err := loadWorld(ctx, input)
	if err != nil {
		return err
	}

	ctx, cancel := opts.search.withTimeout(ctx)
	defer cancel()

	if w.grid != nil {
		if opts.dot != "" || opts.svg != "" {
			return errors.New(errors.ErrCodeUnsupported, "--dot and --svg need a graph file")
		}
		return gridPath(ctx, p, w.grid, opts)
	}
	return graphPath(ctx, p, w.graph, opts)
}

func gridPath(ctx context.Context, p printer, m *grid.Map, opts *pathOpts) error {
	start, end, err := gridEnds(m, opts.search.from, opts.search.to)
	if err != nil {
		return err
	}
	agent, err := opts.agent.gridAgent()
	if err != nil {
		return err
	}

	path, err := search.FindPath(start, end, append(opts.search.options(ctx), search.WithAgent(agent))...)
	if err != nil {
		return err
	}
	printPath(p, m.Name, path)

	drawn := m.Overlay(markPath, path.Nodes...)
	if !opts.plain {
		drawn = styleMap(drawn)
	}
	p.newline()
	p.block(drawn)
	return nil
}

func graphPath(ctx context.Context, p printer, g *graph.Graph, opts *pathOpts) error {
	start, err := graphVertex(g, opts.search.from, "from")
	if err != nil {
		return err
	}
	end, err := graphVertex(g, opts.search.to, "to")
	if err != nil {
		return err
	}
	agent, err := opts.agent.graphAgent()
	if err != nil {
		return err
	}

	path, err := search.FindPath(start, end, append(opts.search.options(ctx), search.WithAgent(agent))...)
	if err != nil {
		return err
	}
	printPath(p, "graph", path)

	if opts.dot == "" && opts.svg == "" {
		return nil
	}
	src := dot.ToDOT(g, dot.Options{Path: path.Nodes, EdgeLabels: true})
	p.newline()
	if opts.dot != "" {
		if err := writeDiagram(ctx, p, opts.cache, src, dot.EngineDot, formatDOT, opts.dot); err != nil {
			return err
		}
	}
	if opts.svg != "" {
		if err := writeDiagram(ctx, p, opts.cache, src, dot.EngineDot, formatSVG, opts.svg); err != nil {
			return err
		}
	}
	return nil
}

// namedNode is a search node that prints as its name.
type namedNode interface {
	comparable
	fmt.Stringer
}

// printPath prints the outcome of a path search.
func printPath[N namedNode](p printer, name string, path search.Path[N]) {
	switch path.Outcome {
	case search.Found:
		p.success("Path found on %s", name)
		p.keyValue("cost", ftoa(path.Cost))
		p.keyValue("length", strconv.Itoa(path.Len()))
		p.keyValue("route", joinNodes(path.Nodes))
	case search.Trivial:
		p.success("Start and end coincide on %s", name)
	case search.IterationLimit:
		p.warning("Iteration limit reached before the end node on %s", name)
	default:
		p.warning("No path on %s (%s)", name, path.Outcome)
	}
	p.stats(fmt.Sprintf("%d iterations", path.Iterations), path.Outcome.String())
}

// joinNodes joins node names with arrows.
func joinNodes[N fmt.Stringer](nodes []N) string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.String()
	}
	return strings.Join(names, " "+iconArrow+" ")
}

package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/search"
)

// rangeOpts holds the flags of the range command.
type rangeOpts struct {
	from    string
	ceiling float64
	agent   agentFlags
	limit   int  // graphs: list at most this many vertices
	plain   bool // print grid overlays without color
}

// rangeCommand creates the range command.
func (c *CLI) rangeCommand() *cobra.Command {
	opts := rangeOpts{ceiling: math.Inf(1), limit: 50}

	cmd := &cobra.Command{
		Use:   "range [map|graph]",
		Short: "List every node within a cost ceiling of a start node",
		Long: `List every node whose cheapest cost from the start is at most the ceiling.

Grid maps start at their s tile unless --from is given and mark the
reachable tiles on the map. Graphs list the reachable vertices in order of
cost.`,
		Example: `  waypoint range examples/maps/moat.toml --ceiling 6
  waypoint range examples/graphs/roads.yaml --from depot --ceiling 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateCeiling(opts.ceiling); err != nil {
				return err
			}
			return runRange(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", `start node: a vertex ID, or "x,y" on grids (default: the map's s tile)`)
	cmd.Flags().Float64VarP(&opts.ceiling, "ceiling", "c", opts.ceiling, "maximum path cost (default: unbounded)")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "list at most this many graph vertices (0: all)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the map without colors")
	opts.agent.register(cmd)

	return cmd
}

func runRange(ctx context.Context, p printer, input string, opts *rangeOpts) error {
	w, err := loadWorld(ctx, input)
	if err != nil {
		return err
	}
	if w.grid != nil {
		return gridRange(ctx, p, w.grid, opts)
	}
	return graphRange(ctx, p, w.graph, opts)
}

func gridRange(ctx context.Context, p printer, m *grid.Map, opts *rangeOpts) error {
	start, err := gridTile(m, opts.from, m.Start, "start")
	if err != nil {
		return err
	}
	agent, err := opts.agent.gridAgent()
	if err != nil {
		return err
	}

	reach, err := search.FindRange(start, opts.ceiling, rangeOptions(ctx, agent)...)
	if err != nil {
		return err
	}
	p.success("%d of %d passable tiles within %s of %s", reach.Len(), m.Passable(), ftoa(opts.ceiling), start)
	if reach.Len() > 0 {
		last := reach.Nodes[reach.Len()-1]
		cost, _ := reach.Cost(last)
		p.stats(fmt.Sprintf("farthest %s at %s", last, ftoa(cost)))
	}

	drawn := m.Overlay(markReach, reach.Nodes...)
	if !opts.plain {
		drawn = styleMap(drawn)
	}
	p.newline()
	p.block(drawn)
	return nil
}

func graphRange(ctx context.Context, p printer, g *graph.Graph, opts *rangeOpts) error {
	start, err := graphVertex(g, opts.from, "from")
	if err != nil {
		return err
	}
	agent, err := opts.agent.graphAgent()
	if err != nil {
		return err
	}

	reach, err := search.FindRange(start, opts.ceiling, rangeOptions(ctx, agent)...)
	if err != nil {
		return err
	}
	p.success("%d of %d vertices within %s of %s", reach.Len(), g.VertexCount(), ftoa(opts.ceiling), start)

	for i, v := range reach.Nodes {
		if opts.limit > 0 && i == opts.limit {
			p.detail("... %d more", reach.Len()-i)
			break
		}
		cost, _ := reach.Cost(v)
		p.keyValue(v.ID, ftoa(cost))
	}
	return nil
}

func rangeOptions(ctx context.Context, agent search.Agent) []search.Option {
	return []search.Option{
		search.WithContext(ctx),
		search.WithAgent(agent),
		search.WithLogger(loggerFromContext(ctx)),
	}
}

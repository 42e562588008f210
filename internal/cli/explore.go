package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/search"
)

// exploreOpts holds the flags of the explore command.
type exploreOpts struct {
	search searchFlags
	agent  agentFlags
	delay  time.Duration
	plain  bool // print the final frame instead of starting the viewer
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := exploreOpts{delay: 60 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "explore [map|graph]",
		Short: "Replay the order in which a path search expands nodes",
		Long: `Replay the order in which a path search expands nodes.

On grid maps an interactive viewer steps through the search tile by tile.
Graphs, and grids with --plain, print the expansion order instead.`,
		Example: `  waypoint explore examples/maps/corridor.txt
  waypoint explore examples/maps/moat.toml --early-exit --delay 20ms
  waypoint explore examples/graphs/roads.json --from depot --to market`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd.Context(), cmd, args[0], &opts)
		},
	}

	opts.search.register(cmd)
	opts.agent.register(cmd)
	cmd.Flags().DurationVar(&opts.delay, "delay", opts.delay, "time between steps while playing")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the expansion instead of starting the viewer")

	return cmd
}

func runExplore(ctx context.Context, cmd *cobra.Command, input string, opts *exploreOpts) error {
	p := newPrinter(cmd.OutOrStdout())
	w, err := loadWorld(ctx, input)
	if err != nil {
		return err
	}

	ctx, cancel := opts.search.withTimeout(ctx)
	defer cancel()

	if w.graph != nil {
		return exploreGraph(ctx, p, w.graph, opts)
	}

	path, err := traceGrid(ctx, w.grid, opts)
	if err != nil {
		return err
	}
	model := NewExploreModel(w.grid, path, opts.delay)
	if opts.plain {
		model.Plain = true
		model.Step = len(model.Trace)
		printPath(p, w.grid.Name, path)
		p.stats(fmt.Sprintf("%d tiles expanded", len(path.Trace)))
		p.newline()
		p.block(model.Frame())
		return nil
	}

	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("explore viewer: %w", err)
	}
	return nil
}

func traceGrid(ctx context.Context, m *grid.Map, opts *exploreOpts) (search.Path[*grid.Tile], error) {
	start, end, err := gridEnds(m, opts.search.from, opts.search.to)
	if err != nil {
		return search.Path[*grid.Tile]{}, err
	}
	agent, err := opts.agent.gridAgent()
	if err != nil {
		return search.Path[*grid.Tile]{}, err
	}
	searchOpts := append(opts.search.options(ctx), search.WithAgent(agent), search.WithTrace())
	return search.FindPath(start, end, searchOpts...)
}

func exploreGraph(ctx context.Context, p printer, g *graph.Graph, opts *exploreOpts) error {
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

	searchOpts := append(opts.search.options(ctx), search.WithAgent(agent), search.WithTrace())
	path, err := search.FindPath(start, end, searchOpts...)
	if err != nil {
		return err
	}
	printPath(p, "graph", path)
	p.newline()
	for i, v := range path.Trace {
		p.keyValue(strconv.Itoa(i+1), v.ID)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/grid"
	"github.com/matzehuels/waypoint/pkg/observability"
	"github.com/matzehuels/waypoint/pkg/observability/promhooks"
	"github.com/matzehuels/waypoint/pkg/search"
)

// benchOpts holds the flags of the bench command.
type benchOpts struct {
	maps      int
	size      int
	workers   int
	passes    int // sequential passes over all maps on one searcher
	seed      int64
	terrain   grid.Terrain
	earlyExit bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	opts := benchOpts{
		maps:    64,
		size:    64,
		workers: runtime.NumCPU(),
		passes:  2,
		seed:    42,
	}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run path searches on random terrain and report metrics",
		Long: `Generate random terrain maps and search each from its top-left to its
bottom-right passable tile.

The maps are first split across concurrent workers, each reusing its own
searcher. Then one persistent searcher runs every map again, sequentially,
for --passes rounds, and its costs are checked against the first round.
Search metrics are collected with Prometheus and summarized at the end.`,
		Example: `  waypoint bench
  waypoint bench --maps 200 --size 128 --workers 4 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.maps <= 0 || opts.workers <= 0 || opts.passes < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--maps and --workers must be positive and --passes non-negative")
			}
			return runBench(cmd.Context(), cmd, &opts)
		},
	}

	cmd.Flags().IntVar(&opts.maps, "maps", opts.maps, "number of random maps")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "map width and height")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent search workers")
	cmd.Flags().IntVar(&opts.passes, "passes", opts.passes, "sequential passes on one persistent searcher")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "terrain random seed")
	cmd.Flags().Float64Var(&opts.terrain.Walls, "walls", 0, "chance a tile is blocked, in [0, 1) (default 0.2)")
	cmd.Flags().IntVar(&opts.terrain.MaxCost, "max-cost", 0, "highest tile cost, 1 to 9 (default 3)")
	cmd.Flags().BoolVar(&opts.earlyExit, "early-exit", false, "stop at first discovery of the end tile")

	return cmd
}

// benchResult is the outcome of one map's search.
type benchResult struct {
	outcome    search.Outcome
	cost       float64
	iterations int
}

func runBench(ctx context.Context, cmd *cobra.Command, opts *benchOpts) error {
	logger := loggerFromContext(ctx)
	p := newPrinter(cmd.OutOrStdout())

	reg := prometheus.NewRegistry()
	observability.SetSearchHooks(promhooks.New(reg))
	defer observability.Reset()

	prog := newProgress(logger)
	maps, err := generateMaps(opts)
	if err != nil {
		return err
	}
	prog.done("generated terrain", "maps", len(maps), "size", fmt.Sprintf("%dx%d", opts.size, opts.size))

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Searching %d maps on %d workers...", len(maps), opts.workers))
	spinner.Start()
	began := time.Now()
	results, err := benchConcurrent(ctx, maps, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	concurrent := time.Since(began)

	began = time.Now()
	searcher := search.NewSearcher[*grid.Tile]()
	mismatches := 0
	for range opts.passes {
		for i, m := range maps {
			path, err := searcher.FindPath(m.Start, m.End, benchOptions(ctx, opts)...)
			if err != nil {
				return err
			}
			if path.Outcome != results[i].outcome || path.Cost != results[i].cost {
				mismatches++
				logger.Warn("persistent searcher disagrees", "map", m.Name, "want", results[i].cost, "got", path.Cost)
			}
		}
	}
	sequential := time.Since(began)

	printBenchSummary(p, results)
	p.keyValue("concurrent", fmt.Sprintf("%s on %d workers", concurrent.Round(time.Microsecond), opts.workers))
	p.keyValue("sequential", fmt.Sprintf("%s over %d passes (%d runs, %d nodes tracked)",
		sequential.Round(time.Microsecond), opts.passes, searcher.Run(), searcher.Len()))
	if mismatches > 0 {
		p.warning("%d results differ between the concurrent and persistent searchers", mismatches)
	}

	p.newline()
	return printMetrics(p, reg)
}

func generateMaps(opts *benchOpts) ([]*grid.Map, error) {
	rng := rand.New(rand.NewSource(opts.seed))
	t := opts.terrain
	t.Width, t.Height = opts.size, opts.size

	maps := make([]*grid.Map, 0, opts.maps)
	for i := range opts.maps {
		m, err := grid.Generate(rng, t)
		if errors.Is(err, errors.ErrCodeInvalidMap) {
			// Walled almost entirely: try the next one.
			continue
		}
		if err != nil {
			return nil, err
		}
		m.Name = fmt.Sprintf("terrain-%d", i)
		maps = append(maps, m)
	}
	if len(maps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no usable terrain generated; lower --walls")
	}
	return maps, nil
}

// benchConcurrent searches every map, splitting them round-robin across
// workers that each reuse one searcher.
func benchConcurrent(ctx context.Context, maps []*grid.Map, opts *benchOpts) ([]benchResult, error) {
	results := make([]benchResult, len(maps))
	workers := min(opts.workers, len(maps))

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			s := search.NewSearcher[*grid.Tile]()
			for i := w; i < len(maps); i += workers {
				path, err := s.FindPath(maps[i].Start, maps[i].End, benchOptions(gctx, opts)...)
				if err != nil {
					return fmt.Errorf("%s: %w", maps[i].Name, err)
				}
				results[i] = benchResult{outcome: path.Outcome, cost: path.Cost, iterations: path.Iterations}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func benchOptions(ctx context.Context, opts *benchOpts) []search.Option {
	o := []search.Option{search.WithContext(ctx)}
	if opts.earlyExit {
		o = append(o, search.WithEarlyExit())
	}
	return o
}

func printBenchSummary(p printer, results []benchResult) {
	outcomes := make(map[search.Outcome]int)
	iterations := 0
	for _, r := range results {
		outcomes[r.outcome]++
		iterations += r.iterations
	}
	p.success("Searched %d maps", len(results))
	p.stats(
		fmt.Sprintf("%d found", outcomes[search.Found]+outcomes[search.Trivial]),
		fmt.Sprintf("%d unreachable", outcomes[search.Unreachable]),
		fmt.Sprintf("%.1f iterations/search", float64(iterations)/float64(len(results))),
	)
}

// printMetrics prints every counter and histogram sum in reg, one line per
// label set.
func printMetrics(p printer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	p.info("Metrics")
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%g", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		p.detail("%s", l)
	}
	return nil
}

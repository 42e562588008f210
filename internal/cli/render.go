package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/cache"
	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/graph"
	"github.com/matzehuels/waypoint/pkg/render"
	"github.com/matzehuels/waypoint/pkg/render/dot"
	"github.com/matzehuels/waypoint/pkg/search"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"

	pngScale = 2.0 // PNG resolution factor
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPDF: true, formatPNG: true}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// validateEngine checks the Graphviz layout engine name.
func validateEngine(engine string) error {
	if engine != dot.EngineDot && engine != dot.EngineNeato {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be 'dot' or 'neato')", engine)
	}
	return nil
}

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output    string
	formats   []string
	engine    string
	labels    bool    // label edges with weight and kind
	positions bool    // pin vertices to their coordinates
	detailed  bool    // add vertex metadata to labels
	from, to  string  // highlight the path between these vertices
	ceiling   float64 // highlight the range from --from; negative means none
	agent     agentFlags
	noCache   bool
	cache     cache.Cache
}

// renderCommand creates the render command for drawing graph files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{engine: dot.EngineDot, ceiling: -1}

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render a graph file, optionally highlighting a path or range",
		Long: `Render a JSON, YAML or TOML graph with Graphviz.

With --from and --to the cheapest path between the two vertices is drawn in
red. With --from and --ceiling every vertex within the ceiling is filled and
labelled with its cost.`,
		Example: `  waypoint render roads.json -o roads.svg
  waypoint render roads.yaml --from depot --to market -f svg,png
  waypoint render roads.json --from depot --ceiling 3 --engine neato --positions`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if err := validateEngine(opts.engine); err != nil {
				return err
			}
			opts.cache = openCache(cmd, opts.noCache)
			defer opts.cache.Close()
			return runRender(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "Graphviz layout engine: dot, neato")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label edges with weight and kind")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "pin vertices to their x/y coordinates (use with --engine neato)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show vertex metadata")
	cmd.Flags().StringVar(&opts.from, "from", "", "start vertex of the highlighted path or range")
	cmd.Flags().StringVar(&opts.to, "to", "", "end vertex of the highlighted path")
	cmd.Flags().Float64Var(&opts.ceiling, "ceiling", opts.ceiling, "highlight vertices within this cost of --from")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run Graphviz, bypassing the render cache")
	opts.agent.register(cmd)

	return cmd
}

func runRender(ctx context.Context, p printer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	w, err := loadWorld(ctx, input)
	if err != nil {
		return err
	}
	if w.graph == nil {
		return errors.New(errors.ErrCodeUnsupported, "%s is a grid map; use the path or range command to draw it", input)
	}
	g := w.graph
	logger.Debug("loaded graph", "vertices", g.VertexCount(), "edges", g.EdgeCount(), "directed", g.Directed)

	dotOpts := dot.Options{
		EdgeLabels: opts.labels,
		Positions:  opts.positions,
		Detailed:   opts.detailed,
	}
	if err := highlight(ctx, g, opts, &dotOpts); err != nil {
		return err
	}

	base := basePath(opts.output, input)
	src := dot.ToDOT(g, dotOpts)
	if len(opts.formats) == 1 && opts.output != "" {
		return writeDiagram(ctx, p, opts.cache, src, opts.engine, opts.formats[0], opts.output)
	}
	for _, f := range opts.formats {
		if err := writeDiagram(ctx, p, opts.cache, src, opts.engine, f, base+"."+f); err != nil {
			return err
		}
	}
	return nil
}

// highlight runs the searches requested by --from/--to/--ceiling and adds
// their results to dotOpts.
func highlight(ctx context.Context, g *graph.Graph, opts *renderOpts, dotOpts *dot.Options) error {
	if opts.from == "" {
		if opts.to != "" || opts.ceiling >= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "--to and --ceiling need --from")
		}
		return nil
	}
	start, err := g.Lookup(opts.from)
	if err != nil {
		return err
	}
	agent, err := opts.agent.graphAgent()
	if err != nil {
		return err
	}
	searchOpts := []search.Option{
		search.WithContext(ctx),
		search.WithAgent(agent),
		search.WithLogger(loggerFromContext(ctx)),
	}

	if opts.ceiling >= 0 {
		reach, err := search.FindRange(start, opts.ceiling, searchOpts...)
		if err != nil {
			return err
		}
		dotOpts.Reach = reach.Nodes
		dotOpts.Cost = reach.Cost
	}
	if opts.to != "" {
		end, err := g.Lookup(opts.to)
		if err != nil {
			return err
		}
		path, err := search.FindPath(start, end, searchOpts...)
		if err != nil {
			return err
		}
		if !path.Reached() {
			loggerFromContext(ctx).Warn("no path to highlight", "from", opts.from, "to", opts.to, "outcome", path.Outcome)
		}
		dotOpts.Path = path.Nodes
	}
	return nil
}

// writeDiagram renders DOT source in the given format and writes it to path.
// SVG layouts are looked up in and stored to rc.
func writeDiagram(ctx context.Context, p printer, rc cache.Cache, src, engine, format, path string) error {
	var data []byte
	if format == formatDOT {
		data = []byte(src)
	} else {
		svg, err := layoutSVG(ctx, rc, src, engine)
		if err != nil {
			return err
		}

		switch format {
		case formatSVG:
			data = svg
		case formatPDF:
			data, err = render.ToPDF(ctx, svg)
		case formatPNG:
			data, err = render.ToPNG(ctx, svg, pngScale)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}

	if err := writeFile(path, data); err != nil {
		return err
	}
	p.success("Wrote %s", strings.ToUpper(format))
	p.file(path)
	return nil
}

// layoutSVG runs Graphviz on src unless rc already holds the result.
func layoutSVG(ctx context.Context, rc cache.Cache, src, engine string) ([]byte, error) {
	logger := loggerFromContext(ctx)
	key := cache.RenderKey([]byte(src), engine)

	if svg, ok, err := rc.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "error", err)
	} else if ok {
		logger.Debug("render cache hit", "engine", engine, "bytes", len(svg))
		return svg, nil
	}

	prog := newProgress(logger)
	svg, err := dot.RenderSVG(ctx, src, engine)
	if err != nil {
		return nil, err
	}
	prog.done("rendered SVG", "engine", engine, "bytes", len(svg))

	if err := rc.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
		logger.Warn("render cache write failed", "error", err)
	}
	return svg, nil
}

// basePath derives the base output path from the output and input file
// paths, dropping a known format extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ftoa formats costs for display, rounded to three decimals.
func ftoa(f float64) string {
	if math.IsInf(f, 1) {
		return "∞"
	}
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

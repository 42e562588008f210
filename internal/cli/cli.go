// Package cli implements the waypoint command-line interface.
//
// Commands load a grid map or a graph file, run searches on it and print or
// render the result. All commands support --verbose (-v) for debug-level
// logging. Every invocation carries a logger tagged with a session id on its
// context.
package cli

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/buildinfo"
	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/search"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "waypoint"

	// unbounded is the --max-iterations default.
	unbounded = -1
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Waypoint finds paths and reachable areas on maps and graphs",
		Long:         `Waypoint runs A* path search and cost-bounded range search on ASCII grid maps and JSON, YAML or TOML graphs, and prints or renders the results.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(c.session(cmd.Context()))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.pathCommand())
	root.AddCommand(c.rangeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// session attaches a logger tagged with a fresh session id to ctx.
func (c *CLI) session(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return withLogger(ctx, c.Logger.With("session", uuid.NewString()[:8]))
}

// =============================================================================
// Search Flags
// =============================================================================

// searchFlags holds the flags shared by commands that run a path search.
type searchFlags struct {
	from, to      string
	maxIterations int
	earlyExit     bool
	timeout       time.Duration
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", `start node: a vertex ID, or "x,y" on grids (default: the map's s tile)`)
	cmd.Flags().StringVar(&f.to, "to", "", `end node: a vertex ID, or "x,y" on grids (default: the map's e tile)`)
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", unbounded, "stop after expanding this many nodes (negative: unbounded)")
	cmd.Flags().BoolVar(&f.earlyExit, "early-exit", false, "return on first discovery of the end node (faster, may not be optimal)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "cancel the search after this long (0: never)")
}

// options translates the flags into search options bound to ctx.
func (f *searchFlags) options(ctx context.Context) []search.Option {
	opts := []search.Option{
		search.WithContext(ctx),
		search.WithLogger(loggerFromContext(ctx)),
	}
	if f.maxIterations >= 0 {
		opts = append(opts, search.WithMaxIterations(f.maxIterations))
	}
	if f.earlyExit {
		opts = append(opts, search.WithEarlyExit())
	}
	return opts
}

// withTimeout bounds ctx by the --timeout flag.
func (f *searchFlags) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout > 0 {
		return context.WithTimeout(ctx, f.timeout)
	}
	return context.WithCancel(ctx)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseCoord parses "x,y" grid coordinates.
func parseCoord(s string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "coordinate %q must be x,y", s)
	}
	if x, err = strconv.Atoi(strings.TrimSpace(xs)); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "coordinate %q", s)
	}
	if y, err = strconv.Atoi(strings.TrimSpace(ys)); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "coordinate %q", s)
	}
	return x, y, nil
}

// parseMultipliers parses "key=factor" pairs, e.g. "river=3,road=0.5".
func parseMultipliers(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "multiplier %q must be key=factor", pair)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "multiplier %q", pair)
		}
		if err := errors.ValidateCost(f); err != nil {
			return nil, err
		}
		out[k] = f
	}
	return out, nil
}

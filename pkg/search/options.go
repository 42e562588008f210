package search

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
)

// Unbounded is the default iteration bound of path search.
const Unbounded = math.MaxInt

// GoalPolicy decides when path search stops after reaching the end node.
type GoalPolicy uint8

const (
	// GoalCertified returns as soon as a link reaches the end node with a
	// cost no greater than the priority of the node being expanded, which
	// proves that no open route can be cheaper. Otherwise the end node is
	// queued like any other and the search stops when it is extracted.
	// Paths are optimal for admissible, consistent heuristics.
	GoalCertified GoalPolicy = iota

	// GoalEarlyExit returns the first time any link reaches the end node,
	// without settling it. It expands fewer nodes but may return a path
	// that is more expensive than the shortest one.
	GoalEarlyExit
)

func (p GoalPolicy) String() string {
	switch p {
	case GoalCertified:
		return "certified"
	case GoalEarlyExit:
		return "early-exit"
	default:
		return "unknown"
	}
}

type config struct {
	maxIterations int
	agent         Agent
	goal          GoalPolicy
	trace         bool
	ctx           context.Context
	logger        *log.Logger
}

// Option configures a single search call.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		maxIterations: Unbounded,
		ctx:           context.Background(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxIterations bounds the number of nodes path search extracts from the
// open set. Zero means no node is expanded; negative values are treated as
// zero. Range search ignores the bound.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIterations = max(n, 0) }
}

// WithAgent sets the agent passed to every link cost and heuristic call.
func WithAgent(agent Agent) Option {
	return func(c *config) { c.agent = agent }
}

// WithGoalPolicy selects how path search terminates at the end node.
func WithGoalPolicy(p GoalPolicy) Option {
	return func(c *config) { c.goal = p }
}

// WithEarlyExit is shorthand for WithGoalPolicy(GoalEarlyExit).
func WithEarlyExit() Option {
	return WithGoalPolicy(GoalEarlyExit)
}

// WithTrace records the expansion order of path search in [Path.Trace].
func WithTrace() Option {
	return func(c *config) { c.trace = true }
}

// WithContext makes the search check ctx once per iteration and stop with
// [Canceled] when it is done. Without it a search cannot be interrupted.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithLogger logs run summaries at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

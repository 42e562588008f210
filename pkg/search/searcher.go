package search

import (
	"slices"
	"time"

	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/observability"
	"github.com/matzehuels/waypoint/pkg/pqueue"
)

// Search kinds reported to observability hooks.
const (
	KindPath  = "path"
	KindRange = "range"
)

// Searcher runs repeated searches over a persistent graph.
//
// Run-scoped node state (status, cost, predecessor, cached heuristic) lives
// in a side table owned by the searcher and keyed by node. Every search
// increments the searcher's run counter; a table entry whose stamp differs
// from the current run is treated as unvisited and reset the first time the
// run touches it. Starting a search therefore costs O(1) regardless of how
// many nodes earlier runs visited.
//
// The side table grows with the number of distinct nodes ever visited. Call
// [Searcher.Reset] to release it.
//
// A Searcher is not safe for concurrent use. Use one per goroutine, or the
// package-level functions, which create a fresh Searcher per call.
type Searcher[N Node[N]] struct {
	states map[N]*nodeState[N]
	run    uint64
}

// NewSearcher creates a searcher with an empty side table.
func NewSearcher[N Node[N]]() *Searcher[N] {
	return &Searcher[N]{states: make(map[N]*nodeState[N])}
}

// Run returns the identifier of the most recent search, or 0 if none ran.
func (s *Searcher[N]) Run() uint64 { return s.run }

// Len returns the number of nodes in the side table.
func (s *Searcher[N]) Len() int { return len(s.states) }

// Status returns the state n ended the most recent run in. Nodes the run
// never touched report [Unvisited], whatever earlier runs left behind.
func (s *Searcher[N]) Status(n N) Status {
	st, ok := s.states[n]
	if !ok || st.stamp != s.run {
		return Unvisited
	}
	return st.status
}

// Reset discards the side table. The run counter keeps increasing.
func (s *Searcher[N]) Reset() {
	s.states = make(map[N]*nodeState[N])
}

// touch returns n's state, resetting it if it belongs to an earlier run.
func (s *Searcher[N]) touch(n N) *nodeState[N] {
	st, ok := s.states[n]
	if !ok {
		st = &nodeState[N]{node: n}
		s.states[n] = st
	}
	if st.stamp != s.run {
		st.stamp = s.run
		st.status = Unvisited
		st.prev = nil
	}
	return st
}

// begin starts a new run and opens start with zero cost.
func (s *Searcher[N]) begin(cfg config, start N, heuristic float64) *run[N] {
	s.run++
	r := &run[N]{
		cfg:  cfg,
		open: pqueue.New(byPriority[N], 0),
	}
	st := s.touch(start)
	st.cost = 0
	st.prev = nil
	st.heuristic = heuristic
	st.status = Open
	r.open.Add(st)
	return r
}

// run is the per-call part of a search: the open set and counters.
type run[N comparable] struct {
	cfg        config
	open       *pqueue.Heap[*nodeState[N]]
	unsorted   bool // a relaxation lowered an open node's cost since the last extraction
	iterations int
	resorts    int
	trace      []N
}

// extract removes the cheapest open node and closes it, re-sorting first if
// a relaxation invalidated the heap order.
func (r *run[N]) extract() (*nodeState[N], error) {
	if r.unsorted {
		r.open.Resort()
		r.unsorted = false
		r.resorts++
	}
	st, err := r.open.RemoveMin()
	if err != nil {
		return nil, err
	}
	st.status = Closed
	r.iterations++
	if r.cfg.trace {
		r.trace = append(r.trace, st.node)
	}
	return st, nil
}

// relax offers target a route through active costing cost.
func (r *run[N]) relax(target, active *nodeState[N], cost float64, heuristic func() float64) {
	switch target.status {
	case Unvisited:
		target.prev = active
		target.cost = cost
		target.heuristic = heuristic()
		target.status = Open
		r.open.Add(target)
	case Open:
		if cost < target.cost {
			target.prev = active
			target.cost = cost
			r.unsorted = true
		}
	}
}

func (r *run[N]) canceled() error {
	if err := r.cfg.ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "search canceled after %d iterations", r.iterations)
	}
	return nil
}

func (r *run[N]) stats(outcome string, began time.Time) observability.SearchStats {
	return observability.SearchStats{
		Outcome:    outcome,
		Iterations: r.iterations,
		Resorts:    r.resorts,
		Duration:   time.Since(began),
	}
}

// FindPath searches for a cheapest path from start to end with A*.
//
// Nodes are expanded in order of path cost plus heuristic. Nodes of equal
// priority are expanded in no particular order, so on graphs with several
// cheapest paths the one returned may differ between otherwise identical
// graphs.
//
// Not finding a path is not an error: it is reported by [Path.Outcome]. The
// returned error is non-nil only when the search context (see [WithContext])
// is done, in which case the outcome is [Canceled].
func (s *Searcher[N]) FindPath(start, end N, opts ...Option) (Path[N], error) {
	cfg := newConfig(opts)
	began := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(cfg.ctx, KindPath)

	if start == end {
		hooks.OnSearchComplete(cfg.ctx, KindPath, observability.SearchStats{Outcome: Trivial.String()})
		return Path[N]{Outcome: Trivial}, nil
	}

	r := s.begin(cfg, start, start.Heuristic(end, cfg.agent))
	path, err := s.findPath(r, end)
	path.Iterations = r.iterations
	if cfg.trace {
		path.Trace = r.trace
	}

	hooks.OnSearchComplete(cfg.ctx, KindPath, r.stats(path.Outcome.String(), began))
	if cfg.logger != nil {
		cfg.logger.Debug("path search finished",
			"run", s.run,
			"outcome", path.Outcome,
			"iterations", r.iterations,
			"resorts", r.resorts,
			"cost", path.Cost,
			"duration", time.Since(began))
	}
	return path, err
}

func (s *Searcher[N]) findPath(r *run[N], end N) (Path[N], error) {
	agent := r.cfg.agent
	for r.open.Len() > 0 && r.iterations < r.cfg.maxIterations {
		if err := r.canceled(); err != nil {
			return Path[N]{Outcome: Canceled}, err
		}
		active, err := r.extract()
		if err != nil {
			return Path[N]{}, errors.Wrap(errors.ErrCodeInternal, err, "open set")
		}
		if active.node == end {
			return Path[N]{Nodes: active.chain(), Cost: active.cost, Outcome: Found}, nil
		}

		for link := range active.node.Links(agent) {
			target := link.Target()
			cost := active.cost + link.Cost(agent)
			if target == end {
				if r.cfg.goal == GoalEarlyExit || cost <= active.priority() {
					if r.cfg.trace {
						r.trace = append(r.trace, end)
					}
					return Path[N]{Nodes: append(active.chain(), end), Cost: cost, Outcome: Found}, nil
				}
			}

			st := s.touch(target)
			if st.status == Closed {
				continue
			}
			r.relax(st, active, cost, func() float64 {
				return target.Heuristic(end, agent)
			})
		}
	}

	if r.open.Len() == 0 {
		return Path[N]{Outcome: Unreachable}, nil
	}
	return Path[N]{Outcome: IterationLimit}, nil
}

// FindRange returns every node whose cheapest cost from start is at most
// ceiling, start included. It is Dijkstra's algorithm with pruning: a route
// whose cost exceeds the ceiling is dropped without opening or relaxing its
// target, so the open set never leaves the budgeted region.
//
// The iteration bound does not apply. ceiling must be non-negative; +Inf
// floods the whole component reachable from start.
func (s *Searcher[N]) FindRange(start N, ceiling float64, opts ...Option) (Reach[N], error) {
	if err := errors.ValidateCeiling(ceiling); err != nil {
		return Reach[N]{}, err
	}

	cfg := newConfig(opts)
	began := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(cfg.ctx, KindRange)

	r := s.begin(cfg, start, 0)
	closed, err := s.findRange(r, ceiling)

	reach := Reach[N]{
		Nodes:      make([]N, len(closed)),
		Iterations: r.iterations,
		costs:      make(map[N]float64, len(closed)),
		prev:       make(map[N]N, len(closed)),
	}
	for i, st := range closed {
		reach.Nodes[i] = st.node
		reach.costs[st.node] = st.cost
		if st.prev != nil {
			reach.prev[st.node] = st.prev.node
		}
	}

	outcome := Found
	if err != nil {
		outcome = Canceled
	}
	hooks.OnSearchComplete(cfg.ctx, KindRange, r.stats(outcome.String(), began))
	if cfg.logger != nil {
		cfg.logger.Debug("range search finished",
			"run", s.run,
			"ceiling", ceiling,
			"reachable", len(closed),
			"resorts", r.resorts,
			"duration", time.Since(began))
	}
	return reach, err
}

func (s *Searcher[N]) findRange(r *run[N], ceiling float64) ([]*nodeState[N], error) {
	agent := r.cfg.agent
	var closed []*nodeState[N]
	zero := func() float64 { return 0 }

	for r.open.Len() > 0 {
		if err := r.canceled(); err != nil {
			return closed, err
		}
		active, err := r.extract()
		if err != nil {
			return closed, errors.Wrap(errors.ErrCodeInternal, err, "open set")
		}
		closed = append(closed, active)

		for link := range active.node.Links(agent) {
			st := s.touch(link.Target())
			if st.status == Closed {
				continue
			}
			cost := active.cost + link.Cost(agent)
			if cost > ceiling {
				continue
			}
			r.relax(st, active, cost, zero)
		}
	}
	return closed, nil
}

// Explore returns the nodes path search closes on its way from start to end,
// in expansion order, with end last. It is empty when end is unreachable
// within the bound or equals start. Useful to visualize how much of the
// graph a search touches.
func (s *Searcher[N]) Explore(start, end N, opts ...Option) ([]N, error) {
	path, err := s.FindPath(start, end, append(slices.Clip(opts), WithTrace())...)
	if err != nil {
		return nil, err
	}
	if path.Outcome != Found {
		return nil, nil
	}
	return path.Trace, nil
}

// FindPath runs [Searcher.FindPath] on a fresh searcher. Independent calls
// may run concurrently over the same graph as long as the graph's Links and
// Heuristic are safe for concurrent use.
func FindPath[N Node[N]](start, end N, opts ...Option) (Path[N], error) {
	return NewSearcher[N]().FindPath(start, end, opts...)
}

// FindRange runs [Searcher.FindRange] on a fresh searcher.
func FindRange[N Node[N]](start N, ceiling float64, opts ...Option) (Reach[N], error) {
	return NewSearcher[N]().FindRange(start, ceiling, opts...)
}

// Explore runs [Searcher.Explore] on a fresh searcher.
func Explore[N Node[N]](start, end N, opts ...Option) ([]N, error) {
	return NewSearcher[N]().Explore(start, end, opts...)
}

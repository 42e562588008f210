// Package search finds cheapest paths and bounded-cost reachable sets over
// arbitrary caller-defined graphs.
//
// # Overview
//
// The package does not own a graph type. Any comparable type that implements
// [Node] can be searched: a tile on a grid, a vertex of an adjacency list, a
// state of a puzzle. Nodes hand out their outgoing [Link]s on demand, so
// graphs may be implicit or infinite.
//
// Two searches share one state machine:
//
//   - [Searcher.FindPath]: A* from a start node to an end node, optionally
//     bounded by an iteration count.
//   - [Searcher.FindRange]: Dijkstra from a start node, pruned at a cost
//     ceiling, returning every node within budget.
//
// # Basic Usage
//
//	path, err := search.FindPath(start, end, search.WithAgent(walker))
//	if err != nil {
//	    return err // only when a context passed with WithContext is done
//	}
//	switch path.Outcome {
//	case search.Found:
//	    follow(path.Nodes)
//	case search.Trivial:
//	    // already there
//	default:
//	    // unreachable or iteration limit
//	}
//
//	reach, _ := search.FindRange(start, 6)
//	for _, n := range reach.Nodes {
//	    highlight(n)
//	}
//
// # Agents
//
// Every search takes an optional [Agent] that is handed unmodified to each
// [Link.Cost] and [Node.Heuristic] call, so one graph can price movement
// differently for different travellers.
//
// # Repeated Searches
//
// A [Searcher] keeps per-node state in a side table across calls and stamps
// each entry with the run that last touched it. Entries from earlier runs are
// reset lazily when first touched, so a search never pays for clearing the
// graph. The open set is a [pqueue.Heap]; when a relaxation lowers the cost
// of a node that is already open, the heap is re-sorted once before the next
// extraction instead of supporting decrease-key.
//
// # Preconditions
//
// Link costs must be non-negative. Heuristics must be admissible and
// consistent for [FindPath] to return cheapest paths under the default
// [GoalCertified] policy. Neither is checked.
//
// # Concurrency
//
// A Searcher is not safe for concurrent use. The package-level [FindPath],
// [FindRange] and [Explore] functions use a fresh Searcher per call and may
// run concurrently over a shared graph whose Links and Heuristic methods are
// safe for concurrent reads.
//
// [pqueue.Heap]: github.com/matzehuels/waypoint/pkg/pqueue
package search

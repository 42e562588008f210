package search

import "iter"

// Agent is an opaque, caller-defined value passed unmodified to every
// [Link.Cost] and [Node.Heuristic] call of a search. It lets one graph serve
// travellers with different costs (terrain penalties, vehicle classes)
// without wrapping or copying the graph. A nil agent is valid.
type Agent = any

// Link is a directed edge from an implicit source node to [Link.Target].
//
// Cost must be non-negative for every agent. Negative costs are not detected
// and make search results undefined.
type Link[N any] interface {
	Target() N
	Cost(agent Agent) float64
}

// Node is the capability a graph element needs to take part in a search.
// Implementations are usually pointers to the caller's own vertex type, so
// that node identity is pointer identity.
//
// Links returns the outgoing links of the node for the given agent. The
// sequence may be computed on demand (e.g. from a tile's position) or come
// from a precomputed adjacency list.
//
// Heuristic estimates the remaining cost from the node to the destination.
// It is only consulted by path search. For optimal paths it must be
// admissible (never overestimate) and consistent (h(a) <= cost(a,b) + h(b)
// for every link a -> b). Neither property is checked at runtime; a
// violating heuristic degrades optimality silently. A heuristic that always
// returns 0 turns path search into Dijkstra's algorithm.
type Node[N comparable] interface {
	comparable
	Links(agent Agent) iter.Seq[Link[N]]
	Heuristic(to N, agent Agent) float64
}

// SimpleLink is a [Link] with a fixed cost that ignores the agent.
type SimpleLink[N any] struct {
	To     N
	Weight float64
}

// Target returns the node at the other end of the link.
func (l SimpleLink[N]) Target() N { return l.To }

// Cost returns the fixed weight of the link.
func (l SimpleLink[N]) Cost(Agent) float64 { return l.Weight }

// LinkFunc is a [Link] whose cost is computed by a function of the agent.
type LinkFunc[N any] struct {
	To     N
	CostFn func(agent Agent) float64
}

// Target returns the node at the other end of the link.
func (l LinkFunc[N]) Target() N { return l.To }

// Cost calls CostFn with the agent.
func (l LinkFunc[N]) Cost(agent Agent) float64 { return l.CostFn(agent) }

// Links adapts a slice of concrete links to the sequence returned by
// [Node.Links].
func Links[N any, L Link[N]](links []L) iter.Seq[Link[N]] {
	return func(yield func(Link[N]) bool) {
		for _, l := range links {
			if !yield(l) {
				return
			}
		}
	}
}

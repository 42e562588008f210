package search

// Outcome classifies how a path search ended.
type Outcome uint8

const (
	// Found means a path from start to end was returned.
	Found Outcome = iota
	// Trivial means start and end are the same node. The path is empty:
	// the caller is already there.
	Trivial
	// Unreachable means the open set ran dry without reaching the end node.
	Unreachable
	// IterationLimit means the iteration bound stopped the search first.
	IterationLimit
	// Canceled means the search context was done.
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Trivial:
		return "trivial"
	case Unreachable:
		return "unreachable"
	case IterationLimit:
		return "iteration-limit"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Path is the result of a path search.
//
// Nodes runs from start to end inclusive when Outcome is [Found] and is
// empty otherwise, including for [Trivial]. Use [Path.Reached] rather than
// len(Nodes) to tell "already there" from "no route".
type Path[N comparable] struct {
	Nodes      []N
	Cost       float64 // Total link cost of Nodes
	Outcome    Outcome
	Iterations int // Nodes extracted from the open set
	Trace      []N // Expansion order, with WithTrace only
}

// Reached reports whether the end node is reachable: either a path was found
// or start and end coincide.
func (p Path[N]) Reached() bool {
	return p.Outcome == Found || p.Outcome == Trivial
}

// Len returns the number of nodes on the path.
func (p Path[N]) Len() int { return len(p.Nodes) }

// Reach is the result of a range search: every node whose cheapest
// distance from start is within the ceiling.
//
// Nodes is in extraction order, which is non-decreasing in cost. The zero
// value is an empty reach.
type Reach[N comparable] struct {
	Nodes      []N
	Iterations int

	costs map[N]float64
	prev  map[N]N
}

// Len returns the number of reachable nodes.
func (r Reach[N]) Len() int { return len(r.Nodes) }

// Contains reports whether n is within range.
func (r Reach[N]) Contains(n N) bool {
	_, ok := r.costs[n]
	return ok
}

// Cost returns the cheapest cost from start to n.
func (r Reach[N]) Cost(n N) (float64, bool) {
	c, ok := r.costs[n]
	return c, ok
}

// PathTo returns a cheapest path from start to n, or nil if n is out of range.
func (r Reach[N]) PathTo(n N) []N {
	if !r.Contains(n) {
		return nil
	}
	nodes := []N{n}
	for {
		p, ok := r.prev[n]
		if !ok {
			break
		}
		nodes = append(nodes, p)
		n = p
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

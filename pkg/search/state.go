package search

import "cmp"

// Status is the per-run state of a node.
//
// A node moves Unvisited -> Open when it is first reached and pushed onto
// the open set, and Open -> Closed when it is extracted as the current
// minimum. Closed nodes are never reopened within a run.
type Status uint8

const (
	Unvisited Status = iota
	Open
	Closed
)

func (s Status) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// nodeState holds the run-scoped fields of one node. Its fields are only
// meaningful while stamp equals the owning searcher's current run.
type nodeState[N comparable] struct {
	node      N
	stamp     uint64
	prev      *nodeState[N] // back reference, always closed earlier in the same run
	cost      float64
	heuristic float64
	status    Status
}

func (s *nodeState[N]) priority() float64 { return s.cost + s.heuristic }

// byPriority orders states by path cost plus heuristic with no tie-break.
func byPriority[N comparable](a, b *nodeState[N]) int {
	return cmp.Compare(a.priority(), b.priority())
}

// chain returns the nodes from the run's start to s.
func (s *nodeState[N]) chain() []N {
	var nodes []N
	for cur := s; cur != nil; cur = cur.prev {
		nodes = append(nodes, cur.node)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

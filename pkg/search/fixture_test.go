package search_test

import (
	"fmt"
	"iter"
	"math"
	"math/rand"

	"github.com/matzehuels/waypoint/pkg/search"
)

// vertex is a minimal adjacency-list node with an optional position for a
// straight-line heuristic.
type vertex struct {
	name string
	x, y float64
	out  []search.Link[*vertex]
}

func (v *vertex) String() string { return v.name }

func (v *vertex) Links(search.Agent) iter.Seq[search.Link[*vertex]] {
	return search.Links[*vertex](v.out)
}

func (v *vertex) Heuristic(to *vertex, _ search.Agent) float64 {
	return math.Hypot(v.x-to.x, v.y-to.y)
}

func (v *vertex) link(to *vertex, cost float64) {
	v.out = append(v.out, search.SimpleLink[*vertex]{To: to, Weight: cost})
}

// network builds vertices by name. All positions default to the origin, which
// makes the heuristic zero.
type network map[string]*vertex

func (n network) get(name string) *vertex {
	v, ok := n[name]
	if !ok {
		v = &vertex{name: name}
		n[name] = v
	}
	return v
}

func (n network) edge(from, to string, cost float64) {
	n.get(from).link(n.get(to), cost)
}

func (n network) both(a, b string, cost float64) {
	n.edge(a, b, cost)
	n.edge(b, a, cost)
}

func names(vs []*vertex) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.name
	}
	return out
}

// randomNetwork places size vertices on a 10x10 plane and adds directed
// edges with integer costs no smaller than the straight-line distance, which
// keeps the Euclidean heuristic admissible and consistent.
func randomNetwork(rng *rand.Rand, size int, density float64) []*vertex {
	vs := make([]*vertex, size)
	for i := range vs {
		vs[i] = &vertex{
			name: fmt.Sprintf("v%d", i),
			x:    float64(rng.Intn(10)),
			y:    float64(rng.Intn(10)),
		}
	}
	for i, from := range vs {
		for j, to := range vs {
			if i == j || rng.Float64() > density {
				continue
			}
			d := math.Hypot(from.x-to.x, from.y-to.y)
			from.link(to, math.Ceil(d)+float64(rng.Intn(3)))
		}
	}
	return vs
}

// pathCost sums link costs along nodes, failing if two consecutive nodes are
// not linked.
func pathCost(nodes []*vertex) (float64, error) {
	total := 0.0
	for i := 1; i < len(nodes); i++ {
		best := math.Inf(1)
		for l := range nodes[i-1].Links(nil) {
			if l.Target() == nodes[i] {
				best = min(best, l.Cost(nil))
			}
		}
		if math.IsInf(best, 1) {
			return 0, fmt.Errorf("no link %s -> %s", nodes[i-1], nodes[i])
		}
		total += best
	}
	return total, nil
}

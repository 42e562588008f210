package graph

import "math"

// Profile is the agent type understood by [Vertex.Links] and [Edge.Cost].
// It prices edges by kind, so one road network can serve cars, bikes and
// pedestrians.
type Profile struct {
	Name string

	// Multipliers scales edge weights by kind. Kinds not listed pay the
	// plain weight. A multiplier of +Inf forbids the kind.
	Multipliers map[string]float64
}

// Forbid returns a profile that cannot use edges of the given kinds.
func Forbid(kinds ...string) *Profile {
	p := &Profile{Multipliers: make(map[string]float64, len(kinds))}
	for _, k := range kinds {
		p.Multipliers[k] = math.Inf(1)
	}
	return p
}

func (p *Profile) forbids(e *Edge) bool {
	if p == nil {
		return false
	}
	return math.IsInf(p.Multipliers[e.Kind], 1)
}

func (p *Profile) cost(e *Edge) float64 {
	if p == nil {
		return e.Weight
	}
	if f, ok := p.Multipliers[e.Kind]; ok {
		return e.Weight * f
	}
	return e.Weight
}

func profileOf(agent any) *Profile {
	switch p := agent.(type) {
	case *Profile:
		return p
	case Profile:
		return &p
	}
	return nil
}

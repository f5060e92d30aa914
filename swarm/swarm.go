// Package swarm implements a stochastic population-based search over
// selections.  Each agent carries a candidate selection; per iteration an
// agent either keeps its selection, recombines toward its own best
// ("cognitive") or the population's best ("social") selection, or mutates by
// swapping random items - then is projected back onto the capacity and
// re-evaluated.  There is no velocity: the particle-swarm structure is kept
// but the move is a weighted random draw suited to set-valued positions.
package swarm

import "github.com/menosgeze/assort"

// Particle is one agent: a selection paired with its evaluated objective.
// Agents are mutated in place across iterations by replacing the pair.
type Particle struct {
	Selection assort.Selection
	Objective float64
}

// Clone returns a particle with an independently-owned selection.  Bests
// are always stored as clones so later agent moves cannot alias them.
func (p *Particle) Clone() *Particle {
	return &Particle{Selection: p.Selection.Clone(), Objective: p.Objective}
}

// Swarm is the full mutable state of one optimizer run: the current agents,
// each agent's personal best, and the single population best.  A Swarm is
// owned exclusively by its Optimizer; callers get deep copies.
type Swarm struct {
	Catalog   assort.Catalog
	Agents    []*Particle
	Cognitive []*Particle
	Social    *Particle
}

func (s *Swarm) clone() *Swarm {
	out := &Swarm{
		Catalog:   s.Catalog,
		Agents:    make([]*Particle, len(s.Agents)),
		Cognitive: make([]*Particle, len(s.Cognitive)),
		Social:    s.Social.Clone(),
	}
	for i, p := range s.Agents {
		out.Agents[i] = p.Clone()
	}
	for i, p := range s.Cognitive {
		out.Cognitive[i] = p.Clone()
	}
	return out
}

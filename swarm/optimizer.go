package swarm

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"

	"github.com/menosgeze/assort"
	"github.com/menosgeze/assort/project"
)

var (
	// ErrNotInitialized is returned by Step before Initialize has run.
	ErrNotInitialized = errors.New("swarm: optimizer not initialized")
	// ErrNumAgents is returned when Initialize is asked for a non-positive
	// number of agents.
	ErrNumAgents = errors.New("swarm: number of agents must be positive")
	// ErrSwapCount is returned for a non-positive configured swap count.
	ErrSwapCount = errors.New("swarm: swap count must be positive")
	// ErrProbability is returned when the cognitive/social probabilities
	// are negative or sum above one.
	ErrProbability = errors.New("swarm: invalid branch probabilities")
)

// Defaults for the per-agent move draw: 10% of moves pull toward the
// agent's own best, 30% toward the population best, and the remaining 60%
// take the random-swap branch.
const (
	DefaultCognitive = 0.1
	DefaultSocial    = 0.3
	DefaultSwaps     = 2
)

// Option configures an Optimizer.
type Option func(*Optimizer)

// Probabilities sets the per-agent chance of the cognitive and social
// branches.  The remainder up to one is the random-swap branch.
func Probabilities(cognitive, social float64) Option {
	return func(o *Optimizer) {
		o.cognitive = cognitive
		o.social = social
	}
}

// Swaps sets how many items a random-swap mutation exchanges.  The
// effective count per move is also bounded by the number of selected and
// unselected items.
func Swaps(n int) Option {
	return func(o *Optimizer) { o.swaps = n }
}

// DB sets a database for per-iteration recording of all agents, cognitive
// bests, and the social best.  Tables are created on Initialize.
func DB(db *sql.DB) Option {
	return func(o *Optimizer) { o.db = db }
}

// Optimizer evolves a population of feasible selections.  It starts
// uninitialized; Initialize seeds the swarm and Step advances it one
// iteration.  The optimizer itself never terminates a run - the caller
// decides how many iterations to take.
type Optimizer struct {
	obj      assort.Objectiver
	cat      assort.Catalog
	sizes    map[string]float64
	capacity float64

	cognitive float64
	social    float64
	swaps     int
	db        *sql.DB

	swarm *Swarm
	count int
}

// New validates the configuration and returns an uninitialized optimizer.
func New(obj assort.Objectiver, cat assort.Catalog, sizes map[string]float64, capacity float64, opts ...Option) (*Optimizer, error) {
	o := &Optimizer{
		obj:       obj,
		cat:       cat,
		sizes:     sizes,
		capacity:  capacity,
		cognitive: DefaultCognitive,
		social:    DefaultSocial,
		swaps:     DefaultSwaps,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.swaps <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrSwapCount, o.swaps)
	}
	if o.cognitive < 0 || o.social < 0 || o.cognitive+o.social > 1 {
		return nil, fmt.Errorf("%w: cognitive %v, social %v", ErrProbability, o.cognitive, o.social)
	}
	return o, nil
}

// Initialize seeds the swarm with n agents.  Seed selections are projected
// to feasibility first; any remaining agents start from the full catalog
// projected down, which amounts to a random feasible subset per agent.
// Cognitive bests start as copies of the agents and the social best as a
// copy of the highest-objective agent, first one winning ties.
func (o *Optimizer) Initialize(n int, rng *rand.Rand, seeds ...assort.Selection) error {
	if n <= 0 {
		return fmt.Errorf("%w: %v", ErrNumAgents, n)
	}

	s := &Swarm{
		Catalog:   o.cat,
		Agents:    make([]*Particle, n),
		Cognitive: make([]*Particle, n),
	}

	full := assort.NewSelection(o.cat...)
	for i := 0; i < n; i++ {
		var sel assort.Selection
		if i < len(seeds) {
			sel = project.Project(seeds[i], o.cat, o.sizes, o.capacity, rng)
		} else {
			sel = project.Project(full, o.cat, o.sizes, o.capacity, rng)
		}

		objective, err := o.obj.Objective(sel)
		if err != nil {
			return err
		}
		s.Agents[i] = &Particle{Selection: sel, Objective: objective}
		s.Cognitive[i] = s.Agents[i].Clone()

		if s.Social == nil || objective > s.Social.Objective {
			s.Social = s.Agents[i].Clone()
		}
	}

	o.swarm = s
	o.count = 0
	if err := o.initdb(); err != nil {
		return err
	}
	return o.record()
}

// Step advances every agent one iteration: a single weighted draw picks the
// cognitive, social, or swap branch, the moved selection is projected back
// onto the capacity, re-evaluated, and the bests are updated on strict
// improvement.
func (o *Optimizer) Step(rng *rand.Rand) error {
	if o.swarm == nil {
		return ErrNotInitialized
	}
	o.count++

	for i, agent := range o.swarm.Agents {
		var next assort.Selection
		switch u := rng.Float64(); {
		case u < o.cognitive:
			next = recombine(agent.Selection, o.swarm.Cognitive[i].Selection, rng)
		case u < o.cognitive+o.social:
			next = recombine(agent.Selection, o.swarm.Social.Selection, rng)
		default:
			next = swap(agent.Selection, o.cat, o.swaps, rng)
		}

		next = project.Project(next, o.cat, o.sizes, o.capacity, rng)
		objective, err := o.obj.Objective(next)
		if err != nil {
			return err
		}
		agent.Selection = next
		agent.Objective = objective

		if objective > o.swarm.Cognitive[i].Objective {
			o.swarm.Cognitive[i] = agent.Clone()
		}
		if objective > o.swarm.Social.Objective {
			o.swarm.Social = agent.Clone()
		}
	}

	return o.record()
}

// Swarm returns a deep copy of the current swarm state, or nil before
// Initialize.  The optimizer retains exclusive ownership of its own state.
func (o *Optimizer) Swarm() *Swarm {
	if o.swarm == nil {
		return nil
	}
	return o.swarm.clone()
}

// Best returns the social best selection and objective seen so far.
func (o *Optimizer) Best() (assort.Selection, float64, error) {
	if o.swarm == nil {
		return nil, 0, ErrNotInitialized
	}
	return o.swarm.Social.Selection.Clone(), o.swarm.Social.Objective, nil
}

// Iteration returns how many steps have run since Initialize.
func (o *Optimizer) Iteration() int { return o.count }

// recombine pulls cur toward target: items in both stay, items in exactly
// one side are kept with probability one half.
func recombine(cur, target assort.Selection, rng *rand.Rand) assort.Selection {
	ids := make([]string, 0, len(cur)+len(target))
	for _, id := range cur {
		if target.Has(id) || rng.Float64() < 0.5 {
			ids = append(ids, id)
		}
	}
	for _, id := range target {
		if !cur.Has(id) && rng.Float64() < 0.5 {
			ids = append(ids, id)
		}
	}
	return assort.NewSelection(ids...)
}

// swap exchanges k selected items for k unselected ones, both drawn
// uniformly without replacement.  k is bounded by the configured count, the
// selected count, and the unselected count; when the bound is zero the
// selection is kept as is.
func swap(cur assort.Selection, cat assort.Catalog, k int, rng *rand.Rand) assort.Selection {
	outside := make([]string, 0, len(cat)-len(cur))
	for _, id := range cat {
		if !cur.Has(id) {
			outside = append(outside, id)
		}
	}

	if k > len(cur) {
		k = len(cur)
	}
	if k > len(outside) {
		k = len(outside)
	}
	if k == 0 {
		return cur
	}

	next := cur.Clone()
	for _, i := range rng.Perm(len(cur))[:k] {
		next = next.Remove(cur[i])
	}
	for _, i := range rng.Perm(len(outside))[:k] {
		next = next.Add(outside[i])
	}
	return next
}

// Package greedy implements deterministic forward selection: starting from a
// base selection, repeatedly add the single item with the best fitness until
// the capacity is exhausted or no acceptable addition remains.  Items are
// never removed once added, so this is a one-directional hill-climb with no
// optimality guarantee.
package greedy

import (
	"fmt"

	"github.com/menosgeze/assort"
)

// Option configures a Selector.
type Option func(*Selector)

// Mode sets the fitness mode used to rank candidate additions.  The default
// is assort.FitnessObjectivePerSize.
func Mode(m assort.FitnessMode) Option {
	return func(s *Selector) { s.mode = m }
}

// Floor sets the acceptance floor: a candidate is only accepted when its
// fitness is strictly greater than the floor.  The default of zero rejects
// moves that do not improve the objective, which can stop the climb early
// even when feasible candidates remain; lower it to allow such moves.
func Floor(f float64) Option {
	return func(s *Selector) { s.floor = f }
}

// Selector runs greedy forward selection.  The zero-argument New gives the
// default per-size fitness with a zero acceptance floor.
type Selector struct {
	mode  assort.FitnessMode
	floor float64
}

func New(opts ...Option) *Selector {
	s := &Selector{mode: assort.FitnessObjectivePerSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select hill-climbs from base (nil means the empty selection), adding one
// item per step.  Candidates are enumerated in the catalog's sorted order,
// and only candidates that fit the capacity and have not been visited
// before are scored; the first candidate seen keeps priority on fitness
// ties.  It returns the final selection and the full trace of every
// selection evaluated, accepted or not.
func (s *Selector) Select(obj assort.Objectiver, cat assort.Catalog, sizes map[string]float64, capacity float64, base assort.Selection) (assort.Selection, *Trace, error) {
	if !s.mode.Valid() {
		return nil, nil, fmt.Errorf("greedy: %w: %q", assort.ErrFitnessMode, s.mode)
	}

	cur := base.Clone()
	curSize, err := assort.Size(cur, sizes)
	if err != nil {
		return nil, nil, err
	}
	curObj, err := obj.Objective(cur)
	if err != nil {
		return nil, nil, err
	}
	// the root is scored against a virtual empty selection
	fit, err := assort.Fitness(curObj, 0, curSize, 0, s.mode)
	if err != nil {
		return nil, nil, err
	}

	trace := newTrace()
	trace.add(&Record{Selection: cur, From: nil, Size: curSize, Objective: curObj, Fitness: fit})

	for curSize <= capacity {
		var best *Record
		bestFit := s.floor

		for _, id := range cat {
			if cur.Has(id) {
				continue
			}
			size, ok := sizes[id]
			if !ok {
				return nil, nil, fmt.Errorf("greedy: %w: item %q has no size", assort.ErrShapeMismatch, id)
			}
			cand := cur.Add(id)
			candSize := curSize + size
			if candSize > capacity || trace.Seen(cand) {
				continue
			}

			candObj, err := obj.Objective(cand)
			if err != nil {
				return nil, nil, err
			}
			fit, err := assort.Fitness(candObj, curObj, candSize, curSize, s.mode)
			if err != nil {
				return nil, nil, err
			}

			rec := &Record{Selection: cand, From: cur, Size: candSize, Objective: candObj, Fitness: fit}
			trace.add(rec)
			if fit > bestFit {
				bestFit = fit
				best = rec
			}
		}

		// no feasible unvisited candidate beat the floor
		if best == nil {
			break
		}
		cur, curSize, curObj = best.Selection, best.Size, best.Objective
	}

	return cur, trace, nil
}

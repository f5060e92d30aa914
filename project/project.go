// Package project maps arbitrary selections onto the feasible region
// defined by a capacity: the result of Project always has total size at or
// below capacity, as close to it as a single randomized pass allows.
package project

import (
	"math"
	"math/rand"

	"github.com/menosgeze/assort"
)

// Tol is the absolute tolerance used when comparing a selection's size
// against the capacity.
const Tol = 1e-9

// Project returns a feasible version of sel.  When sel is under capacity it
// visits the not-yet-selected catalog items in a random order and greedily
// adds any item that still fits; when sel is over capacity it removes
// selected items in a random order until the size drops to capacity.  A
// selection already at capacity (within Tol) is returned unchanged.
//
// The pass is intentionally randomized - different rng draws diversify the
// feasible selections produced from the same input, which the swarm
// optimizer relies on.  Project never fails: it returns its best effort
// within one pass even when capacity cannot be filled exactly.  Items
// missing from the size table are never added.
func Project(sel assort.Selection, cat assort.Catalog, sizes map[string]float64, capacity float64, rng *rand.Rand) assort.Selection {
	size := 0.0
	for _, id := range sel {
		size += sizes[id]
	}

	switch {
	case math.Abs(size-capacity) <= Tol:
		return sel.Clone()
	case size > capacity:
		return shrink(sel, sizes, capacity, size, rng)
	default:
		return grow(sel, cat, sizes, capacity, size, rng)
	}
}

func grow(sel assort.Selection, cat assort.Catalog, sizes map[string]float64, capacity, size float64, rng *rand.Rand) assort.Selection {
	candidates := make([]string, 0, len(cat))
	for _, id := range cat {
		if !sel.Has(id) {
			if s, ok := sizes[id]; ok && s > 0 {
				candidates = append(candidates, id)
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	out := sel.Clone()
	for _, id := range candidates {
		if size+sizes[id] <= capacity+Tol {
			out = out.Add(id)
			size += sizes[id]
		}
	}
	return out
}

func shrink(sel assort.Selection, sizes map[string]float64, capacity, size float64, rng *rand.Rand) assort.Selection {
	order := make([]string, len(sel))
	copy(order, sel)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	out := sel.Clone()
	for _, id := range order {
		if size <= capacity+Tol {
			break
		}
		out = out.Remove(id)
		size -= sizes[id]
	}
	return out
}

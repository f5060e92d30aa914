package assort

import (
	"errors"
	"fmt"
)

var (
	// ErrFitnessMode marks an unrecognized fitness mode string.
	ErrFitnessMode = errors.New("assort: unrecognized fitness mode")

	// ErrNotGrown marks a claimed selection growth whose size did not
	// actually increase while its objective changed.  A per-size fitness is
	// undefined for such a transition, so it is surfaced as a contract
	// violation rather than silently divided through.
	ErrNotGrown = errors.New("assort: selection did not grow")
)

// FitnessMode selects how a candidate transition is scored.
type FitnessMode string

const (
	// FitnessObjective scores a transition by raw objective gain.
	FitnessObjective FitnessMode = "objective"
	// FitnessObjectivePerSize scores a transition by objective gain per
	// unit of added size.
	FitnessObjectivePerSize FitnessMode = "objective_per_size"
)

// Valid reports whether m is one of the recognized fitness modes.
func (m FitnessMode) Valid() bool {
	return m == FitnessObjective || m == FitnessObjectivePerSize
}

// Size returns the total size of the selection: zero for the empty
// selection, and an ErrShapeMismatch error if any selected item is missing
// from the size table.
func Size(s Selection, sizes map[string]float64) (float64, error) {
	total := 0.0
	for _, id := range s {
		size, ok := sizes[id]
		if !ok {
			return 0, fmt.Errorf("%w: item %q has no size", ErrShapeMismatch, id)
		}
		total += size
	}
	return total, nil
}

// Fitness scores the transition from a previous selection (prevObj,
// prevSize) to the current one (thisObj, thisSize) under the given mode.
//
// A zero objective delta always scores zero, regardless of the sizes - this
// short-circuit keeps the per-size mode well-defined when nothing changed.
// Otherwise the per-size mode requires thisSize > prevSize and returns
// ErrNotGrown when it does not hold.
func Fitness(thisObj, prevObj, thisSize, prevSize float64, mode FitnessMode) (float64, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: %q (want %q or %q)", ErrFitnessMode, mode, FitnessObjective, FitnessObjectivePerSize)
	}

	delta := thisObj - prevObj
	if mode == FitnessObjective || delta == 0 {
		return delta, nil
	}

	sizeDelta := thisSize - prevSize
	if sizeDelta <= 0 {
		return 0, fmt.Errorf("%w: this size %v <= previous size %v with objective delta %v", ErrNotGrown, thisSize, prevSize, delta)
	}
	return delta / sizeDelta, nil
}

package assort

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch marks inputs whose dimensions or index sets do not
	// line up - a transfer matrix of the wrong shape, or an item missing
	// from the size/baseline tables.
	ErrShapeMismatch = errors.New("assort: input shape mismatch")

	// ErrBadTransfer marks a transfer matrix that violates its invariants:
	// diagonal entries must be zero and each row must sum to a value in
	// [0,1].
	ErrBadTransfer = errors.New("assort: invalid transfer matrix")
)

// rowSumTol absorbs float accumulation error when checking that transfer
// matrix rows sum to at most one.
const rowSumTol = 1e-9

// Objectiver evaluates the total realized objective of a selection.  The
// objective must be framed so that greater values are better.
type Objectiver interface {
	Objective(s Selection) (float64, error)
}

// Problem is a full assortment instance: the catalog, per-item sizes and
// baseline objectives, and the pairwise demand transfer matrix.  Transfer
// entry (i,j) is the fraction of item i's baseline that moves to item j when
// i is excluded and j is included; the shortfall from a row summing below
// one is demand lost outright.
type Problem struct {
	Catalog   Catalog
	Sizes     map[string]float64
	Baselines map[string]float64
	Transfer  *mat.Dense

	index map[string]int
}

// NewProblem validates the inputs against each other and returns a Problem.
// The catalog is sorted and deduplicated; the transfer matrix rows/columns
// must follow that sorted order.
func NewProblem(catalog []string, sizes, baselines map[string]float64, transfer *mat.Dense) (*Problem, error) {
	cat := NewCatalog(catalog...)
	n := len(cat)

	if transfer == nil {
		return nil, fmt.Errorf("%w: transfer matrix is nil", ErrShapeMismatch)
	}
	r, c := transfer.Dims()
	if r != n || c != n {
		return nil, fmt.Errorf("%w: transfer matrix is %vx%v, catalog has %v items", ErrShapeMismatch, r, c, n)
	}

	index := make(map[string]int, n)
	for i, id := range cat {
		index[id] = i

		size, ok := sizes[id]
		if !ok {
			return nil, fmt.Errorf("%w: item %q has no size", ErrShapeMismatch, id)
		}
		if size <= 0 || math.IsNaN(size) {
			return nil, fmt.Errorf("%w: item %q has non-positive size %v", ErrShapeMismatch, id, size)
		}

		base, ok := baselines[id]
		if !ok {
			return nil, fmt.Errorf("%w: item %q has no baseline objective", ErrShapeMismatch, id)
		}
		if base < 0 || math.IsNaN(base) {
			return nil, fmt.Errorf("%w: item %q has negative baseline %v", ErrShapeMismatch, id, base)
		}
	}

	row := make([]float64, n)
	for i := 0; i < n; i++ {
		if d := transfer.At(i, i); d != 0 {
			return nil, fmt.Errorf("%w: diagonal entry (%v,%v) is %v, want 0", ErrBadTransfer, i, i, d)
		}
		mat.Row(row, i, transfer)
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: entry (%v,%v) is negative", ErrBadTransfer, i, j)
			}
		}
		if sum := floats.Sum(row); sum > 1+rowSumTol {
			return nil, fmt.Errorf("%w: row %v sums to %v, want at most 1", ErrBadTransfer, i, sum)
		}
	}

	return &Problem{
		Catalog:   cat,
		Sizes:     sizes,
		Baselines: baselines,
		Transfer:  transfer,
		index:     index,
	}, nil
}

// Evaluate computes the realized objective for every catalog item under the
// given selection, and the total over selected items.  Excluded items
// contribute zero themselves; their baseline demand is pooled through the
// transfer matrix and credited to the selected destinations.  An empty
// selection realizes zero everywhere - there is no item present to receive
// transfers.
//
// Evaluation is a pure function of the selection's membership; item order
// never matters.
func (p *Problem) Evaluate(s Selection) (realized map[string]float64, total float64, err error) {
	n := len(p.Catalog)
	realized = make(map[string]float64, n)
	for _, id := range p.Catalog {
		realized[id] = 0
	}

	for _, id := range s {
		if _, ok := p.index[id]; !ok {
			return nil, 0, fmt.Errorf("%w: selection item %q is not in the catalog", ErrShapeMismatch, id)
		}
	}
	if len(s) == 0 {
		return realized, 0, nil
	}

	// Pool the demand leaving each excluded item into a per-destination
	// transferring total, then credit it to the selected destinations.
	transferring := make([]float64, n)
	row := make([]float64, n)
	for i, id := range p.Catalog {
		if s.Has(id) {
			realized[id] = p.Baselines[id]
			continue
		}
		mat.Row(row, i, p.Transfer)
		floats.AddScaled(transferring, p.Baselines[id], row)
	}

	for i, id := range p.Catalog {
		if s.Has(id) {
			realized[id] += transferring[i]
			total += realized[id]
		}
	}
	return realized, total, nil
}

// Objective returns the total realized objective of s, satisfying the
// Objectiver interface.
func (p *Problem) Objective(s Selection) (float64, error) {
	_, total, err := p.Evaluate(s)
	return total, err
}

// Size returns the total size of the selection, or an ErrShapeMismatch
// error if any item has no entry in the problem's size table.
func (p *Problem) Size(s Selection) (float64, error) {
	return Size(s, p.Sizes)
}

// Package bench generates synthetic assortment instances for exercising the
// selectors: random item sizes and baseline objectives drawn uniformly
// within a controlled variation band, and random transfer matrices with
// zero diagonals and normally-distributed row losses.  All generators draw
// from an explicitly passed generator so instances are reproducible.
package bench

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/menosgeze/assort"
)

// Defaults matching the kind of instances the selectors are tuned on.
const (
	DefaultSizeVariation = 0.2
	DefaultScale         = 1000
	DefaultMeanLoss      = 0.15
	DefaultStdLoss       = 0.03
)

// Instance is a self-contained synthetic assortment problem.
type Instance struct {
	Catalog   assort.Catalog
	Sizes     map[string]float64
	Baselines map[string]float64
	Transfer  *mat.Dense
	Capacity  float64
}

// Problem validates the instance and returns it as an assort.Problem.
func (in *Instance) Problem() (*assort.Problem, error) {
	return assort.NewProblem(in.Catalog, in.Sizes, in.Baselines, in.Transfer)
}

// Rand generates an n-item instance with default variation parameters and a
// capacity equal to capFrac times the total size of all items.
func Rand(n int, capFrac float64, rng *rand.Rand) *Instance {
	cat := Catalog(n)
	sizes := Sizes(cat, DefaultSizeVariation, rng)
	total := 0.0
	for _, s := range sizes {
		total += s
	}
	return &Instance{
		Catalog:   cat,
		Sizes:     sizes,
		Baselines: Baselines(cat, DefaultScale, 1, rng),
		Transfer:  Transfer(n, DefaultMeanLoss, DefaultStdLoss, rng),
		Capacity:  capFrac * total,
	}
}

// Catalog returns n synthetic item ids in sorted order.
func Catalog(n int) assort.Catalog {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("item%04d", i)
	}
	return assort.NewCatalog(ids...)
}

// UniformValues draws n values uniformly and rescales them so the minimum
// lands at scale and the maximum at scale*(1+variation).  The absolute
// scale of item sizes is irrelevant to the selection problem, so size
// generation pins the minimum at one and only the spread matters.
func UniformValues(n int, variation, scale float64, rng *rand.Rand) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.Float64() * 100
	}
	lo := floats.Min(values)
	span := floats.Max(values) - lo
	if span == 0 {
		span = 1
	}
	for i, v := range values {
		values[i] = scale * (1 + variation/span*(v-lo))
	}
	return values
}

// Sizes generates positive item sizes in [1, 1+variation].
func Sizes(cat assort.Catalog, variation float64, rng *rand.Rand) map[string]float64 {
	values := UniformValues(len(cat), variation, 1, rng)
	sizes := make(map[string]float64, len(cat))
	for i, id := range cat {
		sizes[id] = values[i]
	}
	return sizes
}

// Baselines generates baseline objectives in [scale, scale*(1+variation)].
func Baselines(cat assort.Catalog, scale, variation float64, rng *rand.Rand) map[string]float64 {
	values := UniformValues(len(cat), variation, scale, rng)
	baselines := make(map[string]float64, len(cat))
	for i, id := range cat {
		baselines[id] = values[i]
	}
	return baselines
}

// Transfer generates an n by n transfer matrix: zero diagonal, non-negative
// entries, and each row summing to 1-loss where loss is drawn from
// N(meanLoss, stdLoss) clamped to [0,1].
func Transfer(n int, meanLoss, stdLoss float64, rng *rand.Rand) *mat.Dense {
	t := mat.NewDense(n, n, nil)
	row := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := range row {
			row[j] = rng.Float64()
		}
		row[i] = 0

		loss := meanLoss + stdLoss*rng.NormFloat64()
		if loss < 0 {
			loss = 0
		} else if loss > 1 {
			loss = 1
		}
		floats.Scale((1-loss)/floats.Sum(row), row)
		t.SetRow(i, row)
	}
	return t
}

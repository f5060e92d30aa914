package swarm

import (
	"database/sql"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"github.com/menosgeze/assort"
)

const testCapacity = 7

func testProblem(t *testing.T) *assort.Problem {
	t.Helper()
	transfer := mat.NewDense(5, 5, []float64{
		0, 0.2, 0.2, 0.2, 0.2,
		0.2, 0, 0.2, 0.2, 0.2,
		0.2, 0.2, 0, 0.2, 0.2,
		0.2, 0.2, 0.2, 0, 0.2,
		0.2, 0.2, 0.2, 0.2, 0,
	})
	p, err := assort.NewProblem(
		[]string{"a", "b", "c", "d", "e"},
		map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5},
		map[string]float64{"a": 10, "b": 25, "c": 35, "d": 40, "e": 55},
		transfer,
	)
	require.NoError(t, err)
	return p
}

func newOptimizer(t *testing.T, opts ...Option) *Optimizer {
	t.Helper()
	p := testProblem(t)
	o, err := New(p, p.Catalog, p.Sizes, testCapacity, opts...)
	require.NoError(t, err)
	return o
}

func TestNewValidation(t *testing.T) {
	p := testProblem(t)

	_, err := New(p, p.Catalog, p.Sizes, testCapacity, Swaps(0))
	require.True(t, errors.Is(err, ErrSwapCount), "got %v", err)

	_, err = New(p, p.Catalog, p.Sizes, testCapacity, Probabilities(-0.1, 0.3))
	require.True(t, errors.Is(err, ErrProbability), "got %v", err)

	_, err = New(p, p.Catalog, p.Sizes, testCapacity, Probabilities(0.6, 0.6))
	require.True(t, errors.Is(err, ErrProbability), "got %v", err)
}

func TestStepBeforeInitialize(t *testing.T) {
	o := newOptimizer(t)
	err := o.Step(rand.New(rand.NewSource(1)))
	require.True(t, errors.Is(err, ErrNotInitialized), "got %v", err)

	_, _, err = o.Best()
	require.True(t, errors.Is(err, ErrNotInitialized), "got %v", err)
	require.Nil(t, o.Swarm())
}

func TestInitialize(t *testing.T) {
	o := newOptimizer(t)
	rng := rand.New(rand.NewSource(7))

	require.True(t, errors.Is(o.Initialize(0, rng), ErrNumAgents))

	seed := assort.NewSelection("a", "b", "c", "d", "e") // size 15, infeasible
	require.NoError(t, o.Initialize(6, rng, seed))

	s := o.Swarm()
	require.Len(t, s.Agents, 6)
	require.Len(t, s.Cognitive, 6)

	for i, agent := range s.Agents {
		size, err := assort.Size(agent.Selection, testProblem(t).Sizes)
		require.NoError(t, err)
		require.LessOrEqual(t, size, float64(testCapacity)+1e-9, "agent %v infeasible", i)
		require.Equal(t, agent.Objective, s.Cognitive[i].Objective)
		require.LessOrEqual(t, agent.Objective, s.Social.Objective)
	}
}

func TestSocialBestMonotonic(t *testing.T) {
	o := newOptimizer(t)
	rng := rand.New(rand.NewSource(13))
	require.NoError(t, o.Initialize(8, rng))

	_, prev, err := o.Best()
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, o.Step(rng))
		_, best, err := o.Best()
		require.NoError(t, err)
		require.GreaterOrEqual(t, best, prev, "social best regressed at iteration %v", i+1)
		prev = best
	}
	require.Equal(t, 30, o.Iteration())
}

func TestAgentsStayFeasible(t *testing.T) {
	o := newOptimizer(t)
	p := testProblem(t)
	rng := rand.New(rand.NewSource(3))
	require.NoError(t, o.Initialize(5, rng))

	for i := 0; i < 20; i++ {
		require.NoError(t, o.Step(rng))
		for j, agent := range o.Swarm().Agents {
			size, err := assort.Size(agent.Selection, p.Sizes)
			require.NoError(t, err)
			require.LessOrEqual(t, size, float64(testCapacity)+1e-9, "agent %v infeasible at iteration %v", j, i+1)
		}
	}
}

func TestSwarmCopyDoesNotAlias(t *testing.T) {
	o := newOptimizer(t)
	rng := rand.New(rand.NewSource(5))
	require.NoError(t, o.Initialize(3, rng))

	snap := o.Swarm()
	snap.Agents[0].Selection = assort.NewSelection("e")
	snap.Agents[0].Objective = -1
	snap.Social.Objective = -1

	fresh := o.Swarm()
	require.NotEqual(t, -1.0, fresh.Agents[0].Objective, "snapshot mutation leaked into the optimizer")
	require.NotEqual(t, -1.0, fresh.Social.Objective)
}

func TestReproducibleRuns(t *testing.T) {
	run := func() (assort.Selection, float64) {
		o := newOptimizer(t)
		rng := rand.New(rand.NewSource(99))
		require.NoError(t, o.Initialize(6, rng))
		for i := 0; i < 15; i++ {
			require.NoError(t, o.Step(rng))
		}
		sel, best, err := o.Best()
		require.NoError(t, err)
		return sel, best
	}

	selA, bestA := run()
	selB, bestB := run()
	require.True(t, selA.Equal(selB), "same seed diverged: %v vs %v", selA, selB)
	require.Equal(t, bestA, bestB)
}

func TestDB(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	o := newOptimizer(t, DB(db))
	rng := rand.New(rand.NewSource(11))
	require.NoError(t, o.Initialize(4, rng))
	for i := 0; i < 5; i++ {
		require.NoError(t, o.Step(rng))
	}

	var count int
	// iterations 0..5 with 4 agents each
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+TblAgents).Scan(&count))
	require.Equal(t, 24, count)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+TblCognitive).Scan(&count))
	require.Equal(t, 24, count)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+TblBest).Scan(&count))
	require.Equal(t, 6, count)

	var objective float64
	require.NoError(t, db.QueryRow("SELECT objective FROM "+TblBest+" ORDER BY iter DESC LIMIT 1").Scan(&objective))
	_, best, err := o.Best()
	require.NoError(t, err)
	require.Equal(t, best, objective)
}

// Command assort runs both selectors on a synthetic assortment instance and
// prints the results side by side.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/menosgeze/assort/bench"
	"github.com/menosgeze/assort/greedy"
	"github.com/menosgeze/assort/swarm"
)

var (
	nitems  = flag.Int("n", 50, "number of items in the synthetic catalog")
	capfrac = flag.Float64("capfrac", 0.3, "capacity as a fraction of total item size")
	nagents = flag.Int("agents", 20, "number of swarm agents")
	niter   = flag.Int("iter", 200, "number of swarm iterations")
	seed    = flag.Int64("seed", 1, "random seed")
)

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	in := bench.Rand(*nitems, *capfrac, rng)
	p, err := in.Problem()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("instance: %v items, capacity %.3f\n", len(in.Catalog), in.Capacity)

	sel, trace, err := greedy.New().Select(p, p.Catalog, p.Sizes, in.Capacity, nil)
	if err != nil {
		log.Fatal(err)
	}
	greedyObj, err := p.Objective(sel)
	if err != nil {
		log.Fatal(err)
	}
	greedySize, _ := p.Size(sel)
	fmt.Printf("greedy: %v items, size %.3f, objective %.3f (%v selections evaluated)\n",
		sel.Len(), greedySize, greedyObj, trace.Len())
	for _, rec := range trace.Best(3) {
		fmt.Printf("    visited: objective %.3f, size %.3f, %v items\n", rec.Objective, rec.Size, rec.Selection.Len())
	}

	opt, err := swarm.New(p, p.Catalog, p.Sizes, in.Capacity)
	if err != nil {
		log.Fatal(err)
	}
	// seed the swarm with the greedy result so the population starts from
	// a known-good selection
	if err := opt.Initialize(*nagents, rng, sel); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *niter; i++ {
		if err := opt.Step(rng); err != nil {
			log.Fatal(err)
		}
	}

	best, bestObj, err := opt.Best()
	if err != nil {
		log.Fatal(err)
	}
	bestSize, _ := p.Size(best)
	fmt.Printf("swarm: %v items, size %.3f, objective %.3f after %v iterations\n",
		best.Len(), bestSize, bestObj, opt.Iteration())

	switch {
	case bestObj > greedyObj:
		fmt.Printf("swarm improved on greedy by %.3f\n", bestObj-greedyObj)
	case bestObj == greedyObj:
		fmt.Println("swarm matched greedy")
	default:
		fmt.Printf("greedy beat swarm by %.3f\n", greedyObj-bestObj)
	}
}

// Package simulate generates synthetic pedigrees for testing and
// benchmarking REC-GEN: a stochastic Poisson-fertility builder and a
// deterministic fixed-branching-factor builder (spec §4.1, §8).
package simulate

import (
	"math"
	"math/rand"
	"sort"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Params bundles the statistics a simulated pedigree is built from: B
// genes per genome, Alpha the expected (or, if Deterministic, exact)
// number of children per couple, Generations the number of layers, and
// FounderPop the size of the top generation (rounded down to even, since
// an unpaired founder cannot mate).
type Params struct {
	Blocks        int
	Alpha         int
	Generations   int
	FounderPop    int
	Deterministic bool
}

type matingPoolEntry struct {
	key int64
	x   *pedigree.Individual
}

// BuildPoisson constructs a pedigree top-down: a founder generation is
// generated with one distinct gene value per founder (shared across all
// blocks), founders are paired off by a random mating key, each couple
// bears a Poisson(Alpha)-distributed (or, under Deterministic, exactly
// Alpha) number of children, and each child inherits each block from a
// uniformly random parent with no recombination across blocks. The
// bottom generation is self-coupled and the top generation is marked as
// its own parent (spec §4.1 "extant", §3 "founder").
//
// Grounded directly on poisson_pedigree::build(): the ordering of steps
// (founder generation, sort-and-pair, fertility, inheritance, descend,
// self-couple, self-parent) is preserved exactly.
func BuildPoisson(rng *rand.Rand, params Params) *pedigree.Pedigree {
	p := pedigree.New(params.Blocks, params.Alpha, params.Generations, params.FounderPop)
	for i := 0; i < params.Generations-1; i++ {
		p.NewGrade()
	}

	founderCount := (params.FounderPop / 2) * 2
	pool := make([]matingPoolEntry, 0, founderCount)
	for i := 1; i <= founderCount; i++ {
		x := p.NewIndividual()
		for j := 0; j < params.Blocks; j++ {
			x.SetGene(j, pedigree.Gene(i))
		}
		pool = append(pool, matingPoolEntry{key: rng.Int63(), x: x})
	}

	for p.CurGrade() > 0 {
		sort.Slice(pool, func(i, j int) bool { return pool[i].key < pool[j].key })
		if len(pool)%2 == 1 {
			pool = pool[:len(pool)-1]
		}

		var couples []*pedigree.Couple
		for i := 0; i+1 < len(pool); i += 2 {
			couples = append(couples, p.AddToCurrent(p.NewCouple(pool[i].x, pool[i+1].x)))
		}
		pool = pool[:0]

		for _, c := range couples {
			n := fertility(rng, params)
			for i := 0; i < n; i++ {
				ch := p.NewIndividual()
				for j := 0; j < params.Blocks; j++ {
					ch.SetGene(j, c.Member(parentIndex(rng)).Gene(j))
				}
				c.AddChild(ch)
				pool = append(pool, matingPoolEntry{key: rng.Int63(), x: ch})
			}
		}

		p.PrevGrade()
	}

	// Couple the extant generation to itself.
	for _, entry := range pool {
		p.AddToCurrent(p.MateExtant(entry.x))
	}

	// Founders are their own parents.
	for c := range p.Layer(params.Generations - 1) {
		c.Member(0).AssignParent(c)
		c.Member(1).AssignParent(c)
	}

	p.Reset()
	return p
}

func fertility(rng *rand.Rand, params Params) int {
	if params.Deterministic {
		return params.Alpha
	}
	return poisson(rng, float64(params.Alpha))
}

func parentIndex(rng *rand.Rand) int {
	if rng.Float64() < 0.5 {
		return 0
	}
	return 1
}

// poisson draws from a Poisson distribution with mean lambda using
// Knuth's multiplicative algorithm expressed in log space (to avoid
// underflow at the small-to-moderate lambda REC-GEN pedigrees use).
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	threshold := -lambda
	k := 0
	sum := 0.0
	for {
		k++
		u := rng.Float64()
		if u <= 0 {
			u = 1e-300
		}
		sum += math.Log(u)
		if sum <= threshold {
			return k - 1
		}
	}
}

// BuildTree constructs a fully deterministic pedigree: two founders, and
// at every generation each couple bears exactly branching children
// (branching must be even, so consecutive sibling pairs can themselves be
// mated into the next generation's couples), each child inheriting gene j
// from parent j%2. It supplements the stochastic simulator with the
// fixed-shape trees spec §8's small hand-checkable scenarios need.
// Grounded on original_source's deterministic tree_ped constructor.
func BuildTree(blocks, generations, branching int) *pedigree.Pedigree {
	p := pedigree.New(blocks, branching, generations, 2)
	for i := 0; i < generations-1; i++ {
		p.NewGrade()
	}

	a, b := p.NewIndividual(), p.NewIndividual()
	for j := 0; j < blocks; j++ {
		a.SetGene(j, pedigree.Gene(1))
		b.SetGene(j, pedigree.Gene(2))
	}
	pool := []*pedigree.Individual{a, b}

	for p.CurGrade() > 0 {
		var couples []*pedigree.Couple
		for i := 0; i+1 < len(pool); i += 2 {
			couples = append(couples, p.AddToCurrent(p.NewCouple(pool[i], pool[i+1])))
		}
		pool = pool[:0]
		for _, c := range couples {
			for i := 0; i < branching; i++ {
				ch := p.NewIndividual()
				for j := 0; j < blocks; j++ {
					ch.SetGene(j, c.Member(j%2).Gene(j))
				}
				c.AddChild(ch)
				pool = append(pool, ch)
			}
		}
		p.PrevGrade()
	}

	for _, x := range pool {
		p.AddToCurrent(p.MateExtant(x))
	}
	for c := range p.Layer(generations - 1) {
		c.Member(0).AssignParent(c)
		c.Member(1).AssignParent(c)
	}

	p.Reset()
	return p
}

package simulate

import (
	"math/rand"
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func TestBuildTree_LayerSizesAndFounders(t *testing.T) {
	p := BuildTree(2, 3, 2)
	if p.NumGrades() != 3 {
		t.Fatalf("expected 3 grades, got %d", p.NumGrades())
	}
	// 2 founders -> 1 couple at the top, 2 children each generation down.
	if len(p.Layer(2)) != 1 {
		t.Fatalf("expected 1 founder couple, got %d", len(p.Layer(2)))
	}
	if len(p.Layer(1)) != 1 {
		t.Fatalf("expected 1 couple at generation 1 (2 children mated), got %d", len(p.Layer(1)))
	}
	if len(p.Layer(0)) != 2 {
		t.Fatalf("expected 2 extant couples, got %d", len(p.Layer(0)))
	}
	for c := range p.Layer(2) {
		if !c.Member(0).IsFounder() || !c.Member(1).IsFounder() {
			t.Error("expected founder-layer members to be self-parented")
		}
	}
	for c := range p.Layer(0) {
		if !c.IsSelfCoupled() {
			t.Error("expected extant-layer couples to be self-coupled")
		}
	}
}

func TestBuildTree_InheritanceIsDeterministic(t *testing.T) {
	a := BuildTree(3, 2, 2)
	b := BuildTree(3, 2, 2)
	dumpA := collectGenomes(a)
	dumpB := collectGenomes(b)
	if len(dumpA) != len(dumpB) {
		t.Fatalf("expected identical individual counts, got %d vs %d", len(dumpA), len(dumpB))
	}
	for id, genome := range dumpA {
		other, ok := dumpB[id]
		if !ok {
			t.Fatalf("individual %d missing from second build", id)
		}
		for i := range genome {
			if genome[i] != other[i] {
				t.Fatalf("individual %d block %d: expected deterministic builds to match, got %d vs %d", id, i, genome[i], other[i])
			}
		}
	}
}

func collectGenomes(p *pedigree.Pedigree) map[int64]pedigree.Genome {
	out := make(map[int64]pedigree.Genome)
	for _, x := range p.Individuals().All() {
		out[x.ID()] = x.Genome()
	}
	return out
}

func TestBuildPoisson_FounderPopRoundedEven(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := BuildPoisson(rng, Params{Blocks: 2, Alpha: 2, Generations: 3, FounderPop: 5})
	if len(p.Layer(2))*2 != 4 {
		t.Fatalf("expected odd founder pop 5 rounded down to 4 (2 couples), got %d couples", len(p.Layer(2)))
	}
}

func TestBuildPoisson_ExtantAreSelfCoupled(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := BuildPoisson(rng, Params{Blocks: 2, Alpha: 2, Generations: 3, FounderPop: 8})
	if len(p.Layer(0)) == 0 {
		t.Fatal("expected a nonempty extant layer")
	}
	for c := range p.Layer(0) {
		if !c.IsSelfCoupled() {
			t.Error("expected every extant couple to be self-coupled")
		}
	}
}

func TestBuildPoisson_FoundersAreSelfParented(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := BuildPoisson(rng, Params{Blocks: 2, Alpha: 2, Generations: 3, FounderPop: 8})
	for c := range p.Layer(p.NumGrades() - 1) {
		if !c.Member(0).IsFounder() || !c.Member(1).IsFounder() {
			t.Error("expected founder-layer members to be self-parented")
		}
	}
}

func TestBuildPoisson_DeterministicFertilityMatchesAlpha(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := BuildPoisson(rng, Params{Blocks: 1, Alpha: 3, Generations: 2, FounderPop: 2, Deterministic: true})
	for c := range p.Layer(1) {
		if c.NumChildren() != 3 {
			t.Fatalf("expected exactly alpha=3 children under deterministic fertility, got %d", c.NumChildren())
		}
	}
}

func TestPoisson_ZeroLambdaAlwaysZero(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 10; i++ {
		if got := poisson(rng, 0); got != 0 {
			t.Fatalf("expected 0 for lambda<=0, got %d", got)
		}
	}
}

package collect

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/bp"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func newTestEngine(t *testing.T) *bp.Engine {
	t.Helper()
	return bp.NewEngine(0.01, bp.MemFull, 16)
}

func twoChildParent(t *testing.T, g1, g2 pedigree.Gene) (*pedigree.Pedigree, *pedigree.Couple) {
	t.Helper()
	p := pedigree.New(1, 2, 2, 4)
	parent := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	c1 := parent.AddChild(p.NewIndividual())
	c1.SetGene(0, g1)
	p.MateExtant(c1)
	c2 := parent.AddChild(p.NewIndividual())
	c2.SetGene(0, g2)
	p.MateExtant(c2)
	return p, parent
}

func assertGotBoth(t *testing.T, parent *pedigree.Couple, a, b pedigree.Gene) {
	t.Helper()
	got := map[pedigree.Gene]bool{parent.Member(0).Gene(0): true, parent.Member(1).Gene(0): true}
	if !got[a] || !got[b] {
		t.Fatalf("expected parent genome to hold {%d,%d}, got {%d,%d}", a, b, parent.Member(0).Gene(0), parent.Member(1).Gene(0))
	}
}

func TestMostFrequent_PicksBothDistinctChildGenes(t *testing.T) {
	_, parent := twoChildParent(t, 4, 6)
	if err := (MostFrequent{}).Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertGotBoth(t, parent, 4, 6)
}

func TestMostFrequent_DoublesSoleGene(t *testing.T) {
	_, parent := twoChildParent(t, 5, 5)
	if err := (MostFrequent{}).Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.Member(0).Gene(0) != 5 || parent.Member(1).Gene(0) != 5 {
		t.Fatalf("expected the sole witnessed gene doubled, got %d, %d", parent.Member(0).Gene(0), parent.Member(1).Gene(0))
	}
}

func TestRecursive_PicksBothDistinctChildGenes(t *testing.T) {
	_, parent := twoChildParent(t, 4, 6)
	r := NewRecursive(1)
	if err := r.Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertGotBoth(t, parent, 4, 6)
}

func TestParsimony_MinimizesUncoveredChildren(t *testing.T) {
	_, parent := twoChildParent(t, 4, 6)
	pc := NewParsimony()
	if err := pc.Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertGotBoth(t, parent, 4, 6)
}

func TestTripleVote_UnanimousTripleInserted(t *testing.T) {
	p := pedigree.New(1, 2, 2, 6)
	parent := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	for i := 0; i < 3; i++ {
		ch := parent.AddChild(p.NewIndividual())
		ch.SetGene(0, 9)
		p.MateExtant(ch)
	}
	if err := (TripleVote{}).Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.Member(0).Gene(0) != 9 && parent.Member(1).Gene(0) != 9 {
		t.Fatalf("expected unanimous gene 9 to be inserted, got %d, %d", parent.Member(0).Gene(0), parent.Member(1).Gene(0))
	}
}

func TestTripleVote_NoConsensusInsertsNothing(t *testing.T) {
	p := pedigree.New(1, 2, 2, 6)
	parent := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	genes := []pedigree.Gene{1, 2, 3}
	for _, g := range genes {
		ch := parent.AddChild(p.NewIndividual())
		ch.SetGene(0, g)
		p.MateExtant(ch)
	}
	if err := (TripleVote{}).Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parent.Member(0).Gene(0) != 0 || parent.Member(1).Gene(0) != 0 {
		t.Fatalf("expected no gene inserted without unanimous agreement, got %d, %d", parent.Member(0).Gene(0), parent.Member(1).Gene(0))
	}
}

func TestBeliefProp_DelegatesToEngine(t *testing.T) {
	_, parent := twoChildParent(t, 4, 6)
	allGenes := [][]pedigree.Gene{{4, 6}}
	bp := NewBeliefProp(newTestEngine(t), allGenes)
	if err := bp.Collect(parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertGotBoth(t, parent, 4, 6)
}

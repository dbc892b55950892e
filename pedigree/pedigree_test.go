package pedigree

import "testing"

func TestNewIndividual_BlankGenome(t *testing.T) {
	p := New(4, 2, 3, 8)
	x := p.NewIndividual()
	if x.NumBlocks() != 4 {
		t.Fatalf("expected 4 blocks, got %d", x.NumBlocks())
	}
	for b := 0; b < 4; b++ {
		if x.Gene(b) != 0 {
			t.Errorf("block %d: expected unassigned, got %d", b, x.Gene(b))
		}
	}
}

func TestNewCouple_SetsMate(t *testing.T) {
	p := New(2, 2, 2, 4)
	a, b := p.NewIndividual(), p.NewIndividual()
	c := p.NewCouple(a, b)
	if a.Couple() != c || b.Couple() != c {
		t.Fatal("expected both members' mate couple to be c")
	}
}

func TestMateExtant_SelfCoupled(t *testing.T) {
	p := New(2, 2, 2, 4)
	x := p.NewIndividual()
	c := p.MateExtant(x)
	if !c.IsSelfCoupled() {
		t.Fatal("expected self-coupled couple")
	}
	if c.Member(0) != x || c.Member(1) != x {
		t.Fatal("expected both member slots to be x")
	}
}

func TestRegistry_IDsAreUniqueAndMonotonic(t *testing.T) {
	p := New(2, 2, 2, 4)
	first := p.NewIndividual()
	second := p.NewIndividual()
	if second.ID() <= first.ID() {
		t.Fatalf("expected monotonically increasing IDs, got %d then %d", first.ID(), second.ID())
	}
	got, ok := p.Individuals().Get(first.ID())
	if !ok || got != first {
		t.Fatal("expected registry lookup to resolve first individual")
	}
}

func TestResize_PreservesExistingLayers(t *testing.T) {
	p := New(2, 2, 2, 4)
	x := p.NewIndividual()
	c := p.MateExtant(x)
	p.AddToCurrent(c)
	p.Resize(5)
	if p.NumGrades() != 5 {
		t.Fatalf("expected 5 grades, got %d", p.NumGrades())
	}
	if len(p.Layer(0)) != 1 {
		t.Fatal("expected layer 0 to still hold its couple after resize")
	}
	if len(p.Layer(4)) != 0 {
		t.Fatal("expected new layer 4 to be empty")
	}
}

func TestNewGrade_AdvancesAndClears(t *testing.T) {
	p := New(2, 2, 3, 4)
	c := p.MateExtant(p.NewIndividual())
	p.AddToCurrent(c)
	p.NewGrade()
	if p.CurGrade() != 1 {
		t.Fatalf("expected current grade 1, got %d", p.CurGrade())
	}
	if p.Size() != 0 {
		t.Fatal("expected new grade to start empty")
	}
}

func TestDone_TrueOnlyAtLastGrade(t *testing.T) {
	p := New(2, 2, 2, 4)
	if p.Done() {
		t.Fatal("grade 0 of 2 should not be done")
	}
	p.NewGrade()
	if !p.Done() {
		t.Fatal("grade 1 of 2 should be done")
	}
}

func TestAllGenes_DedupsAndSortsPerBlock(t *testing.T) {
	p := New(2, 2, 1, 2)
	a := p.NewIndividual()
	a.SetGene(0, 5)
	a.SetGene(1, 9)
	ca := p.MateExtant(a)
	p.AddToCurrent(ca)

	b := p.NewIndividual()
	b.SetGene(0, 3)
	b.SetGene(1, 9)
	cb := p.MateExtant(b)
	p.AddToCurrent(cb)

	genes := p.AllGenes()
	if len(genes) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(genes))
	}
	if got := genes[0]; len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("block 0: expected [3 5], got %v", got)
	}
	if got := genes[1]; len(got) != 1 || got[0] != 9 {
		t.Errorf("block 1: expected [9] (deduped), got %v", got)
	}
}

func TestAllGenes_Cached(t *testing.T) {
	p := New(1, 2, 1, 2)
	x := p.NewIndividual()
	x.SetGene(0, 7)
	p.AddToCurrent(p.MateExtant(x))

	first := p.AllGenes()
	y := p.NewIndividual()
	y.SetGene(0, 99)
	p.AddToCurrent(p.MateExtant(y))

	second := p.AllGenes()
	if len(second) != len(first) || len(second[0]) != len(first[0]) {
		t.Fatal("expected AllGenes to return the cached result, ignoring the new individual added after the first call")
	}
}

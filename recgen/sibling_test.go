package recgen

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func threeIdenticalExtant(t *testing.T) *pedigree.Pedigree {
	t.Helper()
	p := pedigree.New(2, 2, 1, 6)
	for i := 0; i < 3; i++ {
		x := p.NewIndividual()
		x.SetGene(0, 1)
		x.SetGene(1, 2)
		p.AddToCurrent(p.MateExtant(x))
	}
	return p
}

func TestNaiveSiblingTest_FindsFullOverlapTriple(t *testing.T) {
	p := threeIdenticalExtant(t)
	g := NaiveSiblingTest{}.Test(p, 1.0, 0)
	if g.EdgeCount() != 1 {
		t.Fatalf("expected 1 edge among 3 identical couples, got %d", g.EdgeCount())
	}
}

func TestNaiveSiblingTest_ThresholdTooHighFindsNothing(t *testing.T) {
	p := pedigree.New(2, 2, 1, 6)
	x := p.NewIndividual()
	x.SetGene(0, 1)
	x.SetGene(1, 2)
	p.AddToCurrent(p.MateExtant(x))
	y := p.NewIndividual()
	y.SetGene(0, 3)
	y.SetGene(1, 4)
	p.AddToCurrent(p.MateExtant(y))
	z := p.NewIndividual()
	z.SetGene(0, 5)
	z.SetGene(1, 6)
	p.AddToCurrent(p.MateExtant(z))

	g := NaiveSiblingTest{}.Test(p, 1.0, 0)
	if g.EdgeCount() != 0 {
		t.Fatalf("expected no edges among disjoint couples, got %d", g.EdgeCount())
	}
}

func TestQuadraticSiblingTest_FindsFullOverlapTriple(t *testing.T) {
	p := threeIdenticalExtant(t)
	g := QuadraticSiblingTest{}.Test(p, 1.0, 1.0)
	if g.EdgeCount() != 1 {
		t.Fatalf("expected 1 edge among 3 identical couples, got %d", g.EdgeCount())
	}
}

func TestQuadraticSiblingTest_PruneClaimedSkipsAssignedOrphans(t *testing.T) {
	p := threeIdenticalExtant(t)
	couples := p.SortedCurrent()
	parent := p.MateFresh()
	couples[0].GetOrphan().AssignParent(parent)

	g := QuadraticSiblingTest{PruneClaimed: true}.Test(p, 1.0, 1.0)
	if g.VertexCount() != 0 {
		t.Fatalf("expected claimed couple excluded, leaving too few for a triple, got %d vertices", g.VertexCount())
	}
}

func TestPickOverride_FallsBackWithoutList(t *testing.T) {
	if got := pickOverride(nil, 2, 0.42); got != 0.42 {
		t.Fatalf("expected fallback 0.42, got %v", got)
	}
}

func TestPickOverride_ClampsToLastElement(t *testing.T) {
	list := []float64{0.9, 0.5}
	if got := pickOverride(list, 5, 0.1); got != 0.5 {
		t.Fatalf("expected clamped last element 0.5, got %v", got)
	}
}

func TestPickOverride_UsesExactIndex(t *testing.T) {
	list := []float64{0.9, 0.5, 0.2}
	if got := pickOverride(list, 1, 0.1); got != 0.5 {
		t.Fatalf("expected list[1]=0.5, got %v", got)
	}
}

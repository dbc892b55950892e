package recgen

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/hypergraph"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func TestAssignParents_CreatesCoupleFromClique(t *testing.T) {
	p := pedigree.New(1, 2, 2, 6)
	couples := make([]*pedigree.Couple, 3)
	for i := range couples {
		couples[i] = p.AddToCurrent(p.MateExtant(p.NewIndividual()))
	}

	g := hypergraph.New()
	g.InsertEdge(couples[0], couples[1], couples[2])

	created := AssignParents(p, g, 3)
	if created != 1 {
		t.Fatalf("expected 1 couple created, got %d", created)
	}
	if p.CurGrade() != 1 {
		t.Fatalf("expected current grade advanced to 1, got %d", p.CurGrade())
	}
	if len(p.Layer(1)) != 1 {
		t.Fatalf("expected 1 couple in the new layer, got %d", len(p.Layer(1)))
	}
	for newCouple := range p.Layer(1) {
		if newCouple.NumChildren() != 3 {
			t.Fatalf("expected the new couple to claim all 3 clique members as children, got %d", newCouple.NumChildren())
		}
	}
}

func TestAssignParents_NoCliqueCreatesNothing(t *testing.T) {
	p := pedigree.New(1, 2, 2, 6)
	p.AddToCurrent(p.MateExtant(p.NewIndividual()))
	g := hypergraph.New()

	created := AssignParents(p, g, 3)
	if created != 0 {
		t.Fatalf("expected 0 couples created without a qualifying clique, got %d", created)
	}
	if len(p.Layer(1)) != 0 {
		t.Fatalf("expected the new layer to remain empty, got %d", len(p.Layer(1)))
	}
}

package hypergraph

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func threeCouples(t *testing.T) (*pedigree.Pedigree, *pedigree.Couple, *pedigree.Couple, *pedigree.Couple) {
	t.Helper()
	p := pedigree.New(1, 2, 1, 6)
	u := p.MateExtant(p.NewIndividual())
	v := p.MateExtant(p.NewIndividual())
	w := p.MateExtant(p.NewIndividual())
	return p, u, v, w
}

func TestInsertEdge_HasEdgeAndMultiplicity(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(u, v, w)
	if !h.HasEdge(u, v, w) {
		t.Fatal("expected edge present after insert")
	}
	if got := h.Multiplicity(u, v, w); got != 1 {
		t.Fatalf("expected multiplicity 1, got %d", got)
	}
}

func TestInsertEdge_OrderIndependent(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(w, u, v)
	if !h.HasEdge(u, v, w) {
		t.Fatal("expected canonical ordering to make edges order-independent")
	}
}

func TestInsertEdge_MultiplicityCapped(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	for i := 0; i < 5; i++ {
		h.InsertEdge(u, v, w)
	}
	if got := h.Multiplicity(u, v, w); got != maxMultiplicity {
		t.Fatalf("expected multiplicity capped at %d, got %d", maxMultiplicity, got)
	}
}

func TestEraseEdge_RemovesOnceMultiplicityReachesZero(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(u, v, w)
	h.EraseEdge(u, v, w)
	if h.HasEdge(u, v, w) {
		t.Fatal("expected edge gone after erasing its only unit of evidence")
	}
	if h.EdgeCount() != 0 {
		t.Fatalf("expected 0 edges, got %d", h.EdgeCount())
	}
	if h.VertexCount() != 0 {
		t.Fatalf("expected 0 vertices once their sole edge is erased, got %d", h.VertexCount())
	}
}

func TestEraseEdge_DecrementsWithoutRemoval(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(u, v, w)
	h.InsertEdge(u, v, w)
	h.EraseEdge(u, v, w)
	if !h.HasEdge(u, v, w) {
		t.Fatal("expected edge to survive decrementing from multiplicity 2 to 1")
	}
}

func TestRemoveVertex_RemovesIncidentEdges(t *testing.T) {
	p, u, v, w := threeCouples(t)
	x := p.MateExtant(p.NewIndividual())
	h := New()
	h.InsertEdge(u, v, w)
	h.InsertEdge(u, v, x)
	h.RemoveVertex(u)
	if h.EdgeCount() != 0 {
		t.Fatalf("expected both edges incident to u removed, got %d remaining", h.EdgeCount())
	}
}

func TestPruneClaimed_RemovesAssignedOrphans(t *testing.T) {
	p, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(u, v, w)

	parent := p.MateFresh()
	u.GetOrphan().AssignParent(parent)

	h.PruneClaimed()
	if h.VertexCount() != 0 {
		t.Fatalf("expected all vertices pruned once u's orphan is claimed, got %d", h.VertexCount())
	}
}

func TestExtractClique_FindsRequestedSize(t *testing.T) {
	p := pedigree.New(1, 2, 1, 8)
	couples := make([]*pedigree.Couple, 4)
	for i := range couples {
		couples[i] = p.MateExtant(p.NewIndividual())
	}
	h := New()
	// Make all 4 couples mutually connected (every triple present).
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			for k := j + 1; k < 4; k++ {
				h.InsertEdge(couples[i], couples[j], couples[k])
			}
		}
	}
	clique := h.ExtractClique(4)
	if len(clique) != 4 {
		t.Fatalf("expected a clique of size 4, got %d", len(clique))
	}
}

func TestExtractClique_EmptyHypergraph(t *testing.T) {
	h := New()
	clique := h.ExtractClique(3)
	if len(clique) != 0 {
		t.Fatalf("expected empty clique on empty hypergraph, got %d", len(clique))
	}
}

func TestExtractClique_ReturnsLargestPartialWhenTargetUnreachable(t *testing.T) {
	_, u, v, w := threeCouples(t)
	h := New()
	h.InsertEdge(u, v, w)
	clique := h.ExtractClique(5)
	if len(clique) != 3 {
		t.Fatalf("expected the only available triple (size 3) since 5 is unreachable, got %d", len(clique))
	}
}

package bp

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func TestNewDomain_CanonicalOrder(t *testing.T) {
	a := NewDomain(pedigree.Gene(5), pedigree.Gene(2))
	b := NewDomain(pedigree.Gene(2), pedigree.Gene(5))
	if a != b {
		t.Fatalf("expected canonical form to make order irrelevant, got %v vs %v", a, b)
	}
	lo, hi := a.Genes()
	if lo != 2 || hi != 5 {
		t.Fatalf("expected (2, 5), got (%d, %d)", lo, hi)
	}
}

func TestDomain_Contains(t *testing.T) {
	d := NewDomain(pedigree.Gene(3), pedigree.Gene(7))
	if !d.Contains(3) || !d.Contains(7) {
		t.Fatal("expected both genes to be contained")
	}
	if d.Contains(4) {
		t.Fatal("expected an unrelated gene not to be contained")
	}
}

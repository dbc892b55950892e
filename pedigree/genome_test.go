package pedigree

import "testing"

func TestNewGenome_AllZero(t *testing.T) {
	g := NewGenome(3)
	if len(g) != 3 {
		t.Fatalf("expected length 3, got %d", len(g))
	}
	for i, v := range g {
		if v != 0 {
			t.Errorf("block %d: expected 0, got %d", i, v)
		}
	}
}

func TestGenomeClone_Independent(t *testing.T) {
	g := NewGenome(2)
	g[0] = 5
	clone := g.Clone()
	clone[0] = 9
	if g[0] != 5 {
		t.Fatal("mutating the clone should not affect the original")
	}
}

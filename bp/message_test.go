package bp

import (
	"math"
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

func genes(vs ...pedigree.Gene) []pedigree.Gene { return vs }

func TestMessage_GetDefaultsToNullval(t *testing.T) {
	m := NewMessage(genes(1, 2, 3), 0.1)
	if got := m.Get(NewDomain(1, 2)); got != 0.1 {
		t.Fatalf("expected nullval 0.1 for an unset pair, got %v", got)
	}
}

func TestMessage_SetOverridesGet(t *testing.T) {
	m := NewMessage(genes(1, 2), 0.1)
	m.Set(NewDomain(1, 2), 0.9)
	if got := m.Get(NewDomain(1, 2)); got != 0.9 {
		t.Fatalf("expected 0.9, got %v", got)
	}
}

func TestMessage_Inc(t *testing.T) {
	m := NewMessage(genes(1, 2), 0.0)
	m.Inc(NewDomain(1, 1), 0.5)
	m.Inc(NewDomain(1, 1), 0.25)
	if got := m.Get(NewDomain(1, 1)); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestMessage_MarginalIncludesImplicitPairs(t *testing.T) {
	m := NewMessage(genes(1, 2, 3), 0.1)
	// No pairs set: marginal(1) should be nullval * (number of genes), since
	// every pair containing gene 1 is still implicit.
	want := 0.1 * 3
	if got := m.Marginal(1); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected marginal %v, got %v", want, got)
	}
}

func TestMessage_MarginalAfterSet(t *testing.T) {
	m := NewMessage(genes(1, 2, 3), 0.1)
	m.Set(NewDomain(1, 2), 0.5)
	// Gene 1 now has one explicit pair (0.5) and 2 remaining implicit pairs.
	want := 0.5 + 0.1*2
	if got := m.Marginal(1); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected marginal %v, got %v", want, got)
	}
}

func TestMessage_Normalize(t *testing.T) {
	m := NewMessage(genes(1, 2), 0)
	m.Set(NewDomain(1, 1), 2)
	m.Set(NewDomain(1, 2), 2)
	m.Set(NewDomain(2, 2), 4)
	m.Normalize()
	sum := m.Get(NewDomain(1, 1)) + m.Get(NewDomain(1, 2)) + m.Get(NewDomain(2, 2))
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected weights to sum to 1 after normalize, got %v", sum)
	}
}

func TestMessage_ExtractMaxPicksGreatestWeight(t *testing.T) {
	m := NewMessage(genes(1, 2, 3), 0)
	m.Set(NewDomain(1, 1), 0.1)
	m.Set(NewDomain(2, 3), 0.9)
	if got := m.ExtractMax(); got != NewDomain(2, 3) {
		t.Fatalf("expected (2,3) to win, got %v", got)
	}
}

func TestMessage_AddCombinesWeightsAndNullval(t *testing.T) {
	a := NewMessage(genes(1, 2), 0.1)
	b := NewMessage(genes(1, 2), 0.2)
	a.Set(NewDomain(1, 1), 1)
	b.Set(NewDomain(1, 1), 2)
	a.Add(b)
	if got := a.Get(NewDomain(1, 1)); got != 3 {
		t.Fatalf("expected combined weight 3, got %v", got)
	}
}

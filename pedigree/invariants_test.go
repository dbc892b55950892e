package pedigree

import "testing"

func buildValidPedigree(t *testing.T) *Pedigree {
	t.Helper()
	p := New(1, 2, 2, 4)
	founderCouple := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	founderCouple.Member(0).AssignParent(founderCouple)
	founderCouple.Member(1).AssignParent(founderCouple)

	child := founderCouple.AddChild(p.NewIndividual())
	extant := p.MateExtant(child)

	p.layers[0] = map[*Couple]struct{}{extant: {}}
	p.layers[1] = map[*Couple]struct{}{founderCouple: {}}
	return p
}

func TestValidate_AcceptsWellFormedPedigree(t *testing.T) {
	p := buildValidPedigree(t)
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid pedigree, got error: %v", err)
	}
}

func TestValidate_RejectsExtantNotSelfCoupled(t *testing.T) {
	p := New(1, 2, 2, 4)
	mismatched := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	p.AddToCurrent(mismatched)
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for non-self-coupled extant couple")
	}
}

func TestValidate_RejectsFounderNotSelfParented(t *testing.T) {
	p := New(1, 2, 2, 4)
	p.NewGrade()
	notFounder := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	p.AddToCurrent(notFounder)
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for founder-layer couple whose members aren't self-parented")
	}
}

func TestValidate_RejectsChildParentMismatch(t *testing.T) {
	p := New(1, 2, 2, 4)
	couple := p.NewCouple(p.NewIndividual(), p.NewIndividual())
	stray := p.NewIndividual()
	couple.children[stray] = struct{}{} // bypass AddChild to corrupt the back-link
	p.NewGrade()
	p.AddToCurrent(couple)
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error when a listed child's Parent() disagrees")
	}
}

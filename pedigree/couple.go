package pedigree

import "sort"

// Couple is an unordered pair of individuals. A self-coupling (both member
// slots pointing to the same individual) represents an unmated extant
// member of the bottom generation. A couple owns a finite set of child
// individuals and carries a stable ID.
type Couple struct {
	id       int64
	members  [2]*Individual
	children map[*Individual]struct{}
}

// ID returns the couple's stable identifier.
func (c *Couple) ID() int64 { return c.id }

// Member indexes a couple's two individuals; index is clamped to {0,1}
// (index<=0 returns member 0), matching the original implementation's
// operator[] semantics.
func (c *Couple) Member(index int) *Individual {
	if index <= 0 {
		return c.members[0]
	}
	return c.members[1]
}

// SetMember overwrites one of the couple's two member slots. Used by the
// restore path to fix up members once the referenced individuals exist.
func (c *Couple) SetMember(index int, x *Individual) {
	if index <= 0 {
		c.members[0] = x
	} else {
		c.members[1] = x
	}
}

// IsSelfCoupled reports whether both member slots hold the same
// individual — the representation of an unmated extant member.
func (c *Couple) IsSelfCoupled() bool { return c.members[0] == c.members[1] }

// HasGene reports whether g is nonzero and one of the couple's two members
// carries it at block b (spec §4.1).
func (c *Couple) HasGene(b int, g Gene) bool {
	return g != 0 && (c.members[0].Gene(b) == g || c.members[1].Gene(b) == g)
}

// InsertGene places g into the first member whose block b is currently
// unassigned (zero). If g is zero or both slots at b are already filled,
// InsertGene is a no-op (spec §4.1 contract).
func (c *Couple) InsertGene(b int, g Gene) *Couple {
	if g == 0 {
		return c
	}
	if c.members[0].Gene(b) == 0 {
		c.members[0].SetGene(b, g)
	} else if c.members[1].Gene(b) == 0 {
		c.members[1].SetGene(b, g)
	}
	return c
}

// GetOrphan returns the member of the couple that has not yet been
// assigned a parent couple. Parent assignment always attaches this
// individual, never the couple itself (spec glossary, "Orphan").
func (c *Couple) GetOrphan() *Individual {
	if c.members[0].Parent() == nil {
		return c.members[0]
	}
	return c.members[1]
}

// AddChild attaches other as a child of this couple, assigning its parent
// pointer, and returns other.
func (c *Couple) AddChild(other *Individual) *Individual {
	other.AssignParent(c)
	if c.children == nil {
		c.children = make(map[*Individual]struct{})
	}
	c.children[other] = struct{}{}
	return other
}

// EraseChild removes ch from this couple's children, if present, and
// returns ch regardless.
func (c *Couple) EraseChild(ch *Individual) *Individual {
	delete(c.children, ch)
	return ch
}

// IsChildIndividual reports whether other is a registered child of c.
func (c *Couple) IsChildIndividual(other *Individual) bool {
	_, ok := c.children[other]
	return ok
}

// IsChildCouple reports whether couple other is a child of c — true iff
// either member of other is a child of c.
func (c *Couple) IsChildCouple(other *Couple) bool {
	if other == nil {
		return false
	}
	return c.IsChildIndividual(other.members[0]) || c.IsChildIndividual(other.members[1])
}

// IsSibling reports whether c and other share at least one parent couple.
func (c *Couple) IsSibling(other *Couple) bool {
	if other == nil {
		return false
	}
	p0 := c.members[0].Parent()
	p1 := c.members[1].Parent()
	return (p0 != nil && p0.IsChildCouple(other)) || (p1 != nil && p1.IsChildCouple(other))
}

// NumChildren returns the number of children registered to c.
func (c *Couple) NumChildren() int { return len(c.children) }

// Children returns the couple's children in unspecified order.
func (c *Couple) Children() []*Individual {
	out := make([]*Individual, 0, len(c.children))
	for ch := range c.children {
		out = append(out, ch)
	}
	return out
}

// SortedChildren returns the couple's children sorted by individual ID
// ascending. Spec §5 requires reproducible iteration order for fixed
// inputs wherever clique extraction or sibling testing drives behavior
// off of iteration order.
func (c *Couple) SortedChildren() []*Individual {
	out := c.Children()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// ExtantDescendants returns the closure, over child.Couple() traversal, of
// every extant individual descended from c. If c is itself a
// self-coupled (extant) couple, its lone member is its own sole
// descendant.
func (c *Couple) ExtantDescendants() map[*Individual]struct{} {
	if c.IsSelfCoupled() {
		return map[*Individual]struct{}{c.members[0]: {}}
	}
	desc := make(map[*Individual]struct{})
	for ch := range c.children {
		for ext := range ch.Couple().ExtantDescendants() {
			desc[ext] = struct{}{}
		}
	}
	return desc
}

// SharedBlocks counts the blocks at which the "siblinghood" hypothesis for
// the triple (u, v, w) is witnessed: a block b counts if both v and w
// carry u's member-0 gene at b, or both v and w carry u's member-1 gene at
// b (spec §4.6 shared₃, §9 "Open questions": the aggregation across the
// two member orientations is a logical OR).
func SharedBlocks(u, v, w *Couple) int {
	shared := 0
	for b := 0; b < u.members[0].NumBlocks(); b++ {
		g0, g1 := u.members[0].Gene(b), u.members[1].Gene(b)
		if (v.HasGene(b, g0) && w.HasGene(b, g0)) || (v.HasGene(b, g1) && w.HasGene(b, g1)) {
			shared++
		}
	}
	return shared
}

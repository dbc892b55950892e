package pedigree

// Individual carries a genome, an owning parent couple, and a mate couple.
// Every individual belongs to exactly one mate couple — self-coupling (the
// couple's two member slots pointing at the same individual) represents an
// unmated extant member of the bottom generation.
type Individual struct {
	id     int64
	genome Genome
	parent *Couple
	mate   *Couple
}

// ID returns the individual's stable identifier.
func (x *Individual) ID() int64 { return x.id }

// Gene returns the value stored at block b.
func (x *Individual) Gene(b int) Gene { return x.genome[b] }

// SetGene overwrites the value stored at block b. Most callers should
// prefer Couple.InsertGene, which respects the "only write into an
// unassigned slot" contract (spec §4.1); SetGene is for construction and
// restore paths that populate a genome wholesale.
func (x *Individual) SetGene(b int, g Gene) { x.genome[b] = g }

// Genome returns the individual's full genome. Callers must not mutate the
// returned slice in place except through SetGene/InsertGene semantics.
func (x *Individual) Genome() Genome { return x.genome }

// NumBlocks returns the genome length.
func (x *Individual) NumBlocks() int { return len(x.genome) }

// Couple returns the mate couple this individual belongs to.
func (x *Individual) Couple() *Couple { return x.mate }

// Parent returns the owning parent couple, or nil if unassigned.
func (x *Individual) Parent() *Couple { return x.parent }

// AssignParent sets the individual's parent couple and returns it.
func (x *Individual) AssignParent(par *Couple) *Couple {
	x.parent = par
	return par
}

// SetMate overwrites the individual's mate couple directly, without
// touching that couple's member slots. Used by the restore path, which
// fixes up both directions of the mate link from separate dump lines.
func (x *Individual) SetMate(c *Couple) { x.mate = c }

// SetGenome replaces the individual's genome wholesale. Used by
// construction and restore paths; ordinary simulation and collection code
// should go through SetGene/InsertGene.
func (x *Individual) SetGenome(g Genome) { x.genome = g }

// IsFounder reports whether x's parent couple is the couple x itself
// belongs to (a self-parent loop), the defining property of a founder
// (spec §3). Note this is distinct from extant self-coupling: a founder's
// mate couple still has two distinct founder members (unless the top
// generation happens to be of size one), it is the *parent* link that
// loops back onto the mate couple.
func (x *Individual) IsFounder() bool { return x.parent != nil && x.parent == x.mate }

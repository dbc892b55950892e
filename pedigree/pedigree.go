package pedigree

import (
	"fmt"
	"sort"
)

// Pedigree holds the generation-layered couples of a multi-generation
// diploid pedigree plus the identity registries needed to resolve stable
// IDs back to live objects (spec §3, §4.1).
//
// Parameters: Blocks is B (genes per genome), Alpha is the expected
// children per couple, Generations is T, FounderPop is N. Layers are
// numbered 0 (extant) .. Generations-1 (founders).
type Pedigree struct {
	Blocks      int
	Alpha       int
	Generations int
	FounderPop  int

	layers  []map[*Couple]struct{}
	current int

	individuals *Registry[*Individual]
	couples     *Registry[*Couple]

	allGenesCache [][]Gene
}

// New returns an empty pedigree with Generations empty layers and fresh
// identity registries.
func New(blocks, alpha, generations, founderPop int) *Pedigree {
	p := &Pedigree{
		Blocks:      blocks,
		Alpha:       alpha,
		Generations: generations,
		FounderPop:  founderPop,
		individuals: NewRegistry[*Individual](),
		couples:     NewRegistry[*Couple](),
	}
	p.layers = make([]map[*Couple]struct{}, generations)
	for i := range p.layers {
		p.layers[i] = make(map[*Couple]struct{})
	}
	return p
}

// Individuals exposes the individual identity registry (used by the
// serialize package during restore).
func (p *Pedigree) Individuals() *Registry[*Individual] { return p.individuals }

// Couples exposes the couple identity registry (used by the serialize
// package during restore).
func (p *Pedigree) Couples() *Registry[*Couple] { return p.couples }

// NewIndividual allocates a fresh individual with a blank genome of length
// p.Blocks and a newly-minted ID, registers it, and returns it.
func (p *Pedigree) NewIndividual() *Individual {
	return p.NewIndividualWithID(p.individuals.Next())
}

// NewIndividualWithID allocates an individual with an explicit ID (used by
// the restore path, where IDs are dictated by the dump).
func (p *Pedigree) NewIndividualWithID(id int64) *Individual {
	x := &Individual{id: id, genome: NewGenome(p.Blocks)}
	p.individuals.Set(id, x)
	return x
}

// NewCouple allocates a fresh couple of the two given individuals with a
// newly-minted ID, registers it, and returns it. Passing the same
// individual twice yields a self-coupling.
func (p *Pedigree) NewCouple(a, b *Individual) *Couple {
	return p.newCoupleWithID(p.couples.Next(), a, b)
}

// NewCoupleWithID allocates a couple with an explicit ID (restore path).
func (p *Pedigree) NewCoupleWithID(id int64, a, b *Individual) *Couple {
	return p.newCoupleWithID(id, a, b)
}

func (p *Pedigree) newCoupleWithID(id int64, a, b *Individual) *Couple {
	c := &Couple{id: id, members: [2]*Individual{a, b}, children: make(map[*Individual]struct{})}
	if a != nil {
		a.mate = c
	}
	if b != nil {
		b.mate = c
	}
	p.couples.Set(id, c)
	return c
}

// MateFresh allocates two fresh individuals and mates them into a new
// couple — the "two fresh individuals (blank genomes)" construction used
// by parent assignment (spec §4.6).
func (p *Pedigree) MateFresh() *Couple {
	return p.NewCouple(p.NewIndividual(), p.NewIndividual())
}

// MateExtant self-couples x, the representation of an unmated extant
// member (spec §3).
func (p *Pedigree) MateExtant(x *Individual) *Couple {
	return p.NewCouple(x, x)
}

// Resize sets the number of generation layers to n, preserving any layers
// already populated and zero-filling any new ones. Restore needs this
// because T arrives from the dump after the pedigree has already been
// constructed with an unknown layer count.
func (p *Pedigree) Resize(generations int) {
	p.Generations = generations
	for len(p.layers) < generations {
		p.layers = append(p.layers, make(map[*Couple]struct{}))
	}
	p.layers = p.layers[:generations]
}

// NumBlocks returns B.
func (p *Pedigree) NumBlocks() int { return p.Blocks }

// NumChildTarget returns alpha, the expected number of children per
// couple.
func (p *Pedigree) NumChildTarget() int { return p.Alpha }

// NumGrades returns T, the number of generation layers.
func (p *Pedigree) NumGrades() int { return p.Generations }

// CurGrade returns the index of the current layer.
func (p *Pedigree) CurGrade() int { return p.current }

// Size returns the number of couples in the current layer.
func (p *Pedigree) Size() int { return len(p.layers[p.current]) }

// Reset moves the current-layer pointer back to 0 (extant) and returns p.
func (p *Pedigree) Reset() *Pedigree {
	p.current = 0
	return p
}

// Done reports whether the current layer is the last one (the founders).
func (p *Pedigree) Done() bool { return p.current == p.Generations-1 }

// NewGrade advances the current-layer pointer and ensures the new layer
// exists empty, returning p. Used when a new generation of ancestors is
// about to be populated by parent assignment.
func (p *Pedigree) NewGrade() *Pedigree {
	p.current++
	if p.current >= len(p.layers) {
		p.layers = append(p.layers, make(map[*Couple]struct{}))
	} else {
		p.layers[p.current] = make(map[*Couple]struct{})
	}
	return p
}

// NextGrade moves to the next layer without clearing it, returning p.
func (p *Pedigree) NextGrade() *Pedigree {
	p.current++
	return p
}

// PrevGrade moves to the previous layer without clearing it, returning p.
func (p *Pedigree) PrevGrade() *Pedigree {
	p.current--
	return p
}

// AddToCurrent adds couple to the current layer and returns it.
func (p *Pedigree) AddToCurrent(couple *Couple) *Couple {
	p.layers[p.current][couple] = struct{}{}
	return couple
}

// Layer indexes the pedigree's layers directly.
func (p *Pedigree) Layer(grade int) map[*Couple]struct{} { return p.layers[grade] }

// Current returns the current layer's couples in unspecified order.
func (p *Pedigree) Current() []*Couple {
	layer := p.layers[p.current]
	out := make([]*Couple, 0, len(layer))
	for c := range layer {
		out = append(out, c)
	}
	return out
}

// SortedCurrent returns the current layer's couples sorted by ID ascending,
// the deterministic iteration order spec §5 requires for reproducible
// sibling-test and clique-extraction results.
func (p *Pedigree) SortedCurrent() []*Couple {
	return sortedCouples(p.Current())
}

func sortedCouples(cs []*Couple) []*Couple {
	out := append([]*Couple(nil), cs...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// AllGenes returns, for each block, the distinct gene values carried by the
// extant population (layer 0), sorted ascending. The result is computed
// once and cached on the pedigree: a collection strategy that needs the
// full gene universe at a block (belief propagation's domain) shares the
// same cache rather than recomputing its own
// (spec §9, "the all_genes cache is owned by the pedigree, not any one
// collector").
func (p *Pedigree) AllGenes() [][]Gene {
	if p.allGenesCache != nil {
		return p.allGenesCache
	}
	seen := make([]map[Gene]struct{}, p.Blocks)
	for b := range seen {
		seen[b] = make(map[Gene]struct{})
	}
	for c := range p.layers[0] {
		x := c.Member(0)
		for b := 0; b < p.Blocks; b++ {
			seen[b][x.Gene(b)] = struct{}{}
		}
	}
	out := make([][]Gene, p.Blocks)
	for b := 0; b < p.Blocks; b++ {
		genes := make([]Gene, 0, len(seen[b]))
		for g := range seen[b] {
			genes = append(genes, g)
		}
		sort.Slice(genes, func(i, j int) bool { return genes[i] < genes[j] })
		out[b] = genes
	}
	p.allGenesCache = out
	return out
}

// String renders a short human-readable summary, useful in logging and
// error messages.
func (p *Pedigree) String() string {
	return fmt.Sprintf("pedigree(B=%d A=%d T=%d N=%d grade=%d/%d)",
		p.Blocks, p.Alpha, p.Generations, p.FounderPop, p.current, p.Generations-1)
}

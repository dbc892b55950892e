package collect

import (
	"sort"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Parsimony is the minimum-error symbol collector (spec §4.7d): per block,
// it tracks the set of genes consistent with some minimum-error assignment
// at every couple, and builds a parent's set from the union of its
// children's sets by minimizing the number of children that carry
// neither candidate gene.
//
// Grounded directly on rec_gen_parsimony::collect_symbols: a couple
// without a genes-so-far set yet (an extant couple visited for the first
// time) is seeded with just its own gene, at every block, with no
// trade-off to minimize.
type Parsimony struct {
	minErr map[*pedigree.Couple][]map[pedigree.Gene]struct{}
}

// NewParsimony returns a Parsimony collector with an empty per-couple
// memo table.
func NewParsimony() *Parsimony {
	return &Parsimony{minErr: make(map[*pedigree.Couple][]map[pedigree.Gene]struct{})}
}

// Collect implements Collector.
func (p *Parsimony) Collect(par *pedigree.Couple) error {
	blocks := par.Member(0).NumBlocks()
	children := par.SortedChildren()

	for _, ch := range children {
		p.ensureSeeded(ch.Couple(), blocks)
	}

	sets := p.entry(par, blocks)
	for b := 0; b < blocks; b++ {
		desGenes := make(map[pedigree.Gene]struct{})
		for _, ch := range children {
			for g := range p.entry(ch.Couple(), blocks)[b] {
				desGenes[g] = struct{}{}
			}
		}
		genes := sortedDesGenes(desGenes)

		bestCost := len(children)
		var minPairs [][2]pedigree.Gene
		for _, g1 := range genes {
			for _, g2 := range genes {
				cost := 0
				for _, ch := range children {
					childSet := p.entry(ch.Couple(), blocks)[b]
					_, has1 := childSet[g1]
					_, has2 := childSet[g2]
					if !has1 && !has2 {
						cost++
					}
				}
				if cost < bestCost {
					bestCost = cost
					minPairs = minPairs[:0]
				}
				if cost == bestCost {
					minPairs = append(minPairs, [2]pedigree.Gene{g1, g2})
				}
			}
		}

		if len(minPairs) > 0 {
			chosen := minPairs[0]
			par.InsertGene(b, chosen[0])
			par.InsertGene(b, chosen[1])
			for _, pair := range minPairs {
				sets[b][pair[0]] = struct{}{}
				sets[b][pair[1]] = struct{}{}
			}
		}
	}
	return nil
}

func (p *Parsimony) ensureSeeded(c *pedigree.Couple, blocks int) {
	if _, ok := p.minErr[c]; ok {
		return
	}
	if !c.IsSelfCoupled() {
		return
	}
	sets := make([]map[pedigree.Gene]struct{}, blocks)
	for b := 0; b < blocks; b++ {
		sets[b] = map[pedigree.Gene]struct{}{c.Member(0).Gene(b): {}}
	}
	p.minErr[c] = sets
}

func (p *Parsimony) entry(c *pedigree.Couple, blocks int) []map[pedigree.Gene]struct{} {
	p.ensureSeeded(c, blocks)
	sets, ok := p.minErr[c]
	if !ok {
		sets = make([]map[pedigree.Gene]struct{}, blocks)
		for b := range sets {
			sets[b] = make(map[pedigree.Gene]struct{})
		}
		p.minErr[c] = sets
	}
	return sets
}

func sortedDesGenes(set map[pedigree.Gene]struct{}) []pedigree.Gene {
	out := make([]pedigree.Gene, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

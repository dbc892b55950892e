package collect

import "github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"

// TripleVote is the basic symbol collector (spec §4.7a): a gene is only
// ever inserted into par when three independent extant witnesses, one per
// distinct direct child, unanimously agree on it at the same block.
type TripleVote struct{}

// Collect implements Collector.
func (TripleVote) Collect(par *pedigree.Couple) error {
	children := par.SortedChildren()
	blocks := par.Member(0).NumBlocks()

	for i := 0; i < len(children); i++ {
		extU := sortedExtant(children[i].Couple())
		for j := i + 1; j < len(children); j++ {
			extV := sortedExtant(children[j].Couple())
			for k := j + 1; k < len(children); k++ {
				extW := sortedExtant(children[k].Couple())
				voteTriple(par, blocks, extU, extV, extW)
			}
		}
	}
	return nil
}

func voteTriple(par *pedigree.Couple, blocks int, extU, extV, extW []*pedigree.Individual) {
	for _, x := range extU {
		for _, y := range extV {
			if y == x {
				continue
			}
			for _, z := range extW {
				if z == x || z == y {
					continue
				}
				for b := 0; b < blocks; b++ {
					g := x.Gene(b)
					if g != 0 && g == y.Gene(b) && g == z.Gene(b) && !par.HasGene(b, g) {
						par.InsertGene(b, g)
					}
				}
			}
		}
	}
}

package collect

import "github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"

// MostFrequent is the quadratic symbol collector (spec §4.7b): at each
// block, it counts how many of par's direct children have any extant
// descendant carrying each gene, and keeps the two most widely witnessed.
type MostFrequent struct{}

// Collect implements Collector.
func (MostFrequent) Collect(par *pedigree.Couple) error {
	children := par.SortedChildren()
	blocks := par.Member(0).NumBlocks()

	for b := 0; b < blocks; b++ {
		counts := make(map[pedigree.Gene]int)
		for _, ch := range children {
			seen := make(map[pedigree.Gene]struct{})
			for _, x := range sortedExtant(ch.Couple()) {
				seen[x.Gene(b)] = struct{}{}
			}
			for g := range seen {
				if g != 0 {
					counts[g]++
				}
			}
		}
		top := topTwoByCount(counts)
		for _, g := range top {
			par.InsertGene(b, g)
		}
	}
	return nil
}

// topTwoByCount returns the two genes with the highest counts, in
// descending order; if only one gene scored positive it is returned
// twice (spec's "insert it twice" rule for a degenerate block).
func topTwoByCount(counts map[pedigree.Gene]int) []pedigree.Gene {
	var best, second pedigree.Gene
	var bestCount, secondCount int
	genes := sortedGenes(counts)
	for _, g := range genes {
		c := counts[g]
		if c > bestCount {
			second, secondCount = best, bestCount
			best, bestCount = g, c
		} else if c > secondCount {
			second, secondCount = g, c
		}
	}
	if bestCount == 0 {
		return nil
	}
	if secondCount == 0 {
		return []pedigree.Gene{best, best}
	}
	return []pedigree.Gene{best, second}
}

func sortedGenes(counts map[pedigree.Gene]int) []pedigree.Gene {
	out := make([]pedigree.Gene, 0, len(counts))
	for g := range counts {
		out = append(out, g)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

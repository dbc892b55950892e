// Package collect implements REC-GEN's five symbol-collection strategies:
// inferring a newly-assigned parent couple's genome from the genomes of
// its reconstructed descendants (spec §4.7). Every strategy is modeled as
// the same one-operation capability rather than a class hierarchy — a
// collector is anything that can fill in one couple's genes from the
// pedigree state already built (spec §9).
package collect

import "github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"

// Collector fills in par's genome, block by block, from the state of its
// already-reconstructed descendants.
type Collector interface {
	Collect(par *pedigree.Couple) error
}

// sortedExtant returns v's extant descendants (spec "ext(v)") sorted by
// individual ID, for deterministic iteration.
func sortedExtant(v *pedigree.Couple) []*pedigree.Individual {
	set := v.ExtantDescendants()
	out := make([]*pedigree.Individual, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID() < out[j-1].ID(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

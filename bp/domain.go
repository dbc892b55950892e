// Package bp implements the belief-propagation message algebra REC-GEN's
// BP collection strategy runs over a couple's descendant subtree: a sparse
// probability distribution over unordered gene pairs, plus the bottom-up
// recurrence that computes one couple's message from its children's
// (spec §4.7e, §9).
package bp

import "github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"

// Domain is an unordered pair of genes — the two alleles a couple's orphan
// might carry at one block — stored in canonical (low, high) order so two
// Domains built from the same pair of genes, in either order, compare
// equal and hash to the same map key (spec §4.7e, bp_domain).
type Domain struct {
	lo, hi pedigree.Gene
}

// NewDomain returns the canonical Domain for the unordered pair {a, b}.
func NewDomain(a, b pedigree.Gene) Domain {
	if a <= b {
		return Domain{lo: a, hi: b}
	}
	return Domain{lo: b, hi: a}
}

// Genes returns the pair's two genes in canonical (low, high) order. For a
// homozygous pair both returns are equal.
func (d Domain) Genes() (pedigree.Gene, pedigree.Gene) { return d.lo, d.hi }

// Contains reports whether g is one of the domain's two genes.
func (d Domain) Contains(g pedigree.Gene) bool { return d.lo == g || d.hi == g }

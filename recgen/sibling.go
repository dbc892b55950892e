// Package recgen implements the REC-GEN driver: the generation loop that
// orchestrates sibling testing, clique-based parent assignment and symbol
// collection into one reconstructed pedigree (spec §4.4, §4.6, §9).
package recgen

import (
	"github.com/lesfleursdelanuitdev/ligneous-recgen/hypergraph"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// SiblingTest detects likely-sibling triples among the couples of the
// pedigree's current generation, returning the populated hypergraph (spec
// §4.6). Modeled as a single-operation capability per spec §9 rather than
// a class hierarchy, so the driver can swap between the naive and
// quadratic variants without an inheritance chain.
type SiblingTest interface {
	Test(p *pedigree.Pedigree, sib, cand float64) *hypergraph.Hypergraph
}

// NaiveSiblingTest is the cubic baseline variant (spec §4.6): every triple
// of couples in the current grade is tested directly against the sib
// threshold, with no candidate-pair pre-filter.
type NaiveSiblingTest struct{}

// Test implements SiblingTest.
func (NaiveSiblingTest) Test(p *pedigree.Pedigree, sib, _ float64) *hypergraph.Hypergraph {
	g := hypergraph.New()
	couples := p.SortedCurrent()
	blocks := p.NumBlocks()
	threshold := sib * float64(blocks)

	for i := 0; i < len(couples); i++ {
		for j := i + 1; j < len(couples); j++ {
			for k := j + 1; k < len(couples); k++ {
				u, v, w := couples[i], couples[j], couples[k]
				if float64(pedigree.SharedBlocks(u, v, w)) >= threshold {
					g.InsertEdge(u, v, w)
				}
			}
		}
	}
	return g
}

// QuadraticSiblingTest is the preferred, candidate-pair-filtered variant
// (spec §4.6): step 1 narrows all pairs down to those with enough pairwise
// overlap; step 2 only tests triple completion against the surviving
// candidate pairs. PruneClaimed, when set, skips couples whose orphan
// individual already has an assigned parent when building candidate pairs
// and completing triples — the DFS-pruning optimization from
// rec_gen_quadratic::prune_dfs (spec SPEC_FULL.md supplemented features).
type QuadraticSiblingTest struct {
	PruneClaimed bool
}

type pairCandidate struct {
	u, v *pedigree.Couple
}

// Test implements SiblingTest.
func (qt QuadraticSiblingTest) Test(p *pedigree.Pedigree, sib, cand float64) *hypergraph.Hypergraph {
	g := hypergraph.New()
	couples := p.SortedCurrent()
	if qt.PruneClaimed {
		couples = filterUnclaimed(couples)
	}
	blocks := p.NumBlocks()
	candThreshold := cand * float64(blocks)
	sibThreshold := sib * float64(blocks)

	var candidates []pairCandidate
	for i := 0; i < len(couples); i++ {
		for j := i + 1; j < len(couples); j++ {
			u, v := couples[i], couples[j]
			if float64(shared2(u, v)) >= candThreshold {
				candidates = append(candidates, pairCandidate{u, v})
			}
		}
	}

	for _, pc := range candidates {
		for _, w := range couples {
			if w == pc.u || w == pc.v {
				continue
			}
			if g.HasEdge(pc.u, pc.v, w) {
				continue
			}
			if float64(pedigree.SharedBlocks(w, pc.u, pc.v)) >= sibThreshold {
				g.InsertEdge(pc.u, pc.v, w)
			}
		}
	}
	return g
}

func filterUnclaimed(couples []*pedigree.Couple) []*pedigree.Couple {
	out := make([]*pedigree.Couple, 0, len(couples))
	for _, c := range couples {
		if c.GetOrphan().Parent() == nil {
			out = append(out, c)
		}
	}
	return out
}

// shared2 counts the blocks at which v witnesses either of u's two member
// genes (spec §4.6 shared₂, "logical OR" per §9's open-question
// resolution).
func shared2(u, v *pedigree.Couple) int {
	shared := 0
	for b := 0; b < u.Member(0).NumBlocks(); b++ {
		g0, g1 := u.Member(0).Gene(b), u.Member(1).Gene(b)
		if v.HasGene(b, g0) || v.HasGene(b, g1) {
			shared++
		}
	}
	return shared
}

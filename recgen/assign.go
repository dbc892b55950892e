package recgen

import (
	"github.com/lesfleursdelanuitdev/ligneous-recgen/hypergraph"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// AssignParents pushes a fresh upper layer onto p and repeatedly extracts
// a clique of size at least d from g, creating one new couple per clique
// and attaching each clique member's orphan as a child, until no clique of
// that size remains (spec §4.6). It returns the number of couples
// created.
//
// Grounded on rec_gen_basic::assign_parents: the loop condition is
// "clique.size() >= d", the couple is built from two fresh blank-genome
// individuals, and every edge wholly within the clique is erased exactly
// once so the hypergraph naturally re-prunes vertices whose orphan just
// got claimed.
func AssignParents(p *pedigree.Pedigree, g *hypergraph.Hypergraph, d int) int {
	p.NewGrade()
	created := 0
	for {
		clique := g.ExtractClique(d)
		if len(clique) < d {
			return created
		}
		couple := p.MateFresh()
		for _, c := range clique {
			couple.AddChild(c.GetOrphan())
		}
		p.AddToCurrent(couple)
		eraseTriplesWithin(g, clique)
		g.PruneClaimed()
		created++
	}
}

func eraseTriplesWithin(g *hypergraph.Hypergraph, clique []*pedigree.Couple) {
	for i := 0; i < len(clique); i++ {
		for j := i + 1; j < len(clique); j++ {
			for k := j + 1; k < len(clique); k++ {
				g.EraseEdge(clique[i], clique[j], clique[k])
			}
		}
	}
}

// Package hypergraph implements the siblinghood hypergraph REC-GEN's
// sibling test populates and parent assignment consumes: a 3-uniform
// hypergraph over couples in the current generation, with capped edge
// multiplicity and greedy maximal-clique extraction (spec §4.5, §9).
package hypergraph

import (
	"sort"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// maxMultiplicity caps how many times the same canonical triple may be
// inserted, per the paper's definition 3.11 (spec §9): a domain-theoretic
// constraint on what "siblinghood evidence" means, not an implementation
// convenience.
const maxMultiplicity = 2

// edgeKey is the canonical form of a hyperedge: the three incident
// couples' IDs sorted ascending, used as the sole map key everywhere so
// no non-canonical triple can ever be constructed (spec §9).
type edgeKey [3]int64

type edgeEntry struct {
	verts [3]*pedigree.Couple
	mult  int
}

// Hypergraph is a 3-uniform hypergraph whose vertices are couples and
// whose edges are unordered triples asserting "these three couples are
// likely siblings."
type Hypergraph struct {
	edges    map[edgeKey]*edgeEntry
	incident map[*pedigree.Couple]map[edgeKey]struct{}
}

// New returns an empty hypergraph.
func New() *Hypergraph {
	return &Hypergraph{
		edges:    make(map[edgeKey]*edgeEntry),
		incident: make(map[*pedigree.Couple]map[edgeKey]struct{}),
	}
}

func canonical(u, v, w *pedigree.Couple) (edgeKey, [3]*pedigree.Couple) {
	verts := [3]*pedigree.Couple{u, v, w}
	sort.Slice(verts[:], func(i, j int) bool { return verts[i].ID() < verts[j].ID() })
	return edgeKey{verts[0].ID(), verts[1].ID(), verts[2].ID()}, verts
}

func (h *Hypergraph) addIncidence(c *pedigree.Couple, key edgeKey) {
	set, ok := h.incident[c]
	if !ok {
		set = make(map[edgeKey]struct{})
		h.incident[c] = set
	}
	set[key] = struct{}{}
}

// InsertEdge records one unit of siblinghood evidence for the triple
// (u, v, w), capped at maxMultiplicity occurrences, and reports whether
// the edge is present afterward (it always is, unless the cap was
// already reached and this call was a further no-op increment beyond
// it — which still reports true, since the edge remains present).
func (h *Hypergraph) InsertEdge(u, v, w *pedigree.Couple) bool {
	key, verts := canonical(u, v, w)
	e, ok := h.edges[key]
	if !ok {
		e = &edgeEntry{verts: verts}
		h.edges[key] = e
		for _, c := range verts {
			h.addIncidence(c, key)
		}
	}
	if e.mult < maxMultiplicity {
		e.mult++
	}
	return true
}

// HasEdge reports whether the canonical triple (u, v, w) currently has
// nonzero multiplicity.
func (h *Hypergraph) HasEdge(u, v, w *pedigree.Couple) bool {
	key, _ := canonical(u, v, w)
	e, ok := h.edges[key]
	return ok && e.mult > 0
}

// Multiplicity returns the current multiplicity of the canonical triple
// (u, v, w), 0 if absent.
func (h *Hypergraph) Multiplicity(u, v, w *pedigree.Couple) int {
	key, _ := canonical(u, v, w)
	if e, ok := h.edges[key]; ok {
		return e.mult
	}
	return 0
}

// EdgeCount returns the number of distinct canonical triples currently
// present (multiplicity > 0), not the sum of multiplicities.
func (h *Hypergraph) EdgeCount() int { return len(h.edges) }

// VertexCount returns the number of couples with at least one incident
// edge.
func (h *Hypergraph) VertexCount() int { return len(h.incident) }

// EraseEdge decrements the multiplicity of the canonical triple
// (u, v, w); once it reaches zero the edge is removed from the adjacency
// map and from each incident vertex's edge list, and any vertex left
// with an empty edge list is removed entirely (spec §4.5 erase
// semantics).
func (h *Hypergraph) EraseEdge(u, v, w *pedigree.Couple) {
	key, verts := canonical(u, v, w)
	e, ok := h.edges[key]
	if !ok {
		return
	}
	e.mult--
	if e.mult > 0 {
		return
	}
	delete(h.edges, key)
	for _, c := range verts {
		h.removeIncidence(c, key)
	}
}

func (h *Hypergraph) removeIncidence(c *pedigree.Couple, key edgeKey) {
	set, ok := h.incident[c]
	if !ok {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(h.incident, c)
	}
}

// RemoveVertex deletes c and every edge incident to it.
func (h *Hypergraph) RemoveVertex(c *pedigree.Couple) {
	for key := range h.incident[c] {
		e := h.edges[key]
		delete(h.edges, key)
		for _, other := range e.verts {
			if other != c {
				h.removeIncidence(other, key)
			}
		}
	}
	delete(h.incident, c)
}

// PruneClaimed removes every vertex whose orphan individual has already
// been assigned a parent couple — evidence that some earlier clique
// extraction already claimed it — together with all of its incident
// edges (spec §4.5, §9 "collect then delete" to avoid mutating the
// vertex map mid-iteration).
func (h *Hypergraph) PruneClaimed() {
	var claimed []*pedigree.Couple
	for c := range h.incident {
		if c.GetOrphan().Parent() != nil {
			claimed = append(claimed, c)
		}
	}
	for _, c := range claimed {
		h.RemoveVertex(c)
	}
}

func (h *Hypergraph) sortedVertices() []*pedigree.Couple {
	out := make([]*pedigree.Couple, 0, len(h.incident))
	for c := range h.incident {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func extends(clique []*pedigree.Couple, cand *pedigree.Couple, h *Hypergraph) bool {
	for i := 0; i < len(clique); i++ {
		for j := i + 1; j < len(clique); j++ {
			if !h.HasEdge(clique[i], clique[j], cand) {
				return false
			}
		}
	}
	return true
}

// ExtractClique performs a greedy constructive search with pruning for a
// clique of size at least d (spec §4.5): it recurses over vertices in
// ID-sorted order, extending the working clique whenever every pair
// formed with the candidate is an existing edge, stopping the
// backtracking search the moment size d is reached and then greedily
// augmenting to maximal by scanning the remaining vertices once more. If
// no clique of size d is ever reached, it returns the largest partial
// clique the search encountered (possibly empty).
func (h *Hypergraph) ExtractClique(d int) []*pedigree.Couple {
	verts := h.sortedVertices()
	var best []*pedigree.Couple
	var clique []*pedigree.Couple

	var search func(start int) bool
	search = func(start int) bool {
		if len(clique) > len(best) {
			best = append([]*pedigree.Couple(nil), clique...)
		}
		if len(clique) >= d {
			return true
		}
		for i := start; i < len(verts); i++ {
			cand := verts[i]
			if extends(clique, cand, h) {
				clique = append(clique, cand)
				if search(i + 1) {
					return true
				}
				clique = clique[:len(clique)-1]
			}
		}
		return false
	}

	if !search(0) {
		return best
	}

	inClique := make(map[*pedigree.Couple]struct{}, len(clique))
	for _, c := range clique {
		inClique[c] = struct{}{}
	}
	for _, cand := range verts {
		if _, already := inClique[cand]; already {
			continue
		}
		if extends(clique, cand, h) {
			clique = append(clique, cand)
			inClique[cand] = struct{}{}
		}
	}
	return clique
}

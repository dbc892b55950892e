package collect

import (
	"math"
	"sort"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Recursive is the bushiness symbol collector (spec §4.7c): each couple
// keeps, per block, a list of (gene, bushiness) pairs built from its
// children's own lists, where a gene's bushiness is an h-index-style
// measure over the thresholds of the children that carry it. Extant
// couples start with their own gene at infinite bushiness.
type Recursive struct {
	BushThreshold int

	memo map[*pedigree.Couple]map[int]map[pedigree.Gene]int
}

// NewRecursive returns a Recursive collector whose h-index aggregation
// only counts a child's guess once its bushiness reaches bushThreshold.
func NewRecursive(bushThreshold int) *Recursive {
	return &Recursive{
		BushThreshold: bushThreshold,
		memo:          make(map[*pedigree.Couple]map[int]map[pedigree.Gene]int),
	}
}

// Collect implements Collector.
func (r *Recursive) Collect(par *pedigree.Couple) error {
	blocks := par.Member(0).NumBlocks()
	for b := 0; b < blocks; b++ {
		full := r.computeFull(par, b)
		g1, g2 := topTwoBushy(full)
		par.InsertGene(b, g1)
		par.InsertGene(b, g2)
		r.store(par, b, full, g1, g2)
	}
	return nil
}

// computeFull aggregates a couple's children's descendant lists into a
// per-gene h-index (spec §4.7c). BushThreshold is applied here, filtering
// out a child's guess before it counts toward this couple's own h-index —
// it never gates what a child stored in the first place (see
// descendantListAt).
func (r *Recursive) computeFull(v *pedigree.Couple, block int) map[pedigree.Gene]int {
	if v.IsSelfCoupled() {
		return map[pedigree.Gene]int{v.Member(0).Gene(block): math.MaxInt}
	}
	perGene := make(map[pedigree.Gene][]int)
	for _, ch := range v.SortedChildren() {
		for g, t := range r.descendantListAt(ch.Couple(), block) {
			if t < r.BushThreshold {
				continue
			}
			perGene[g] = append(perGene[g], t)
		}
	}
	full := make(map[pedigree.Gene]int, len(perGene))
	for g, vals := range perGene {
		full[g] = hIndex(vals)
	}
	return full
}

// descendantListAt returns v's memoized descendant list at block: its two
// guessed genes and their bushiness. The two guesses are force-inserted
// unconditionally, regardless of BushThreshold (original_source
// rec_gen_recursive.cpp's insert_des_gene always records both b1/b2); the
// threshold only gates whether a parent's computeFull later counts them.
func (r *Recursive) descendantListAt(v *pedigree.Couple, block int) map[pedigree.Gene]int {
	if byBlock, ok := r.memo[v]; ok {
		if list, ok := byBlock[block]; ok {
			return list
		}
	}
	full := r.computeFull(v, block)
	g1, g2 := topTwoBushy(full)
	r.store(v, block, full, g1, g2)
	return r.memo[v][block]
}

// store force-inserts v's two guessed genes (g1, g2) into its memoized
// descendant list at block, unconditionally — BushThreshold never gates
// storage, only aggregation (see computeFull).
func (r *Recursive) store(v *pedigree.Couple, block int, full map[pedigree.Gene]int, g1, g2 pedigree.Gene) {
	byBlock, ok := r.memo[v]
	if !ok {
		byBlock = make(map[int]map[pedigree.Gene]int)
		r.memo[v] = byBlock
	}
	stored := make(map[pedigree.Gene]int, 2)
	if g1 != 0 {
		stored[g1] = full[g1]
	}
	if g2 != 0 && g2 != g1 {
		stored[g2] = full[g2]
	}
	byBlock[block] = stored
}

// hIndex returns max over i of min(i, the i-th largest value in vals),
// i.e. the largest h such that at least h values are >= h.
func hIndex(vals []int) int {
	sorted := append([]int(nil), vals...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	best := 0
	for i, v := range sorted {
		rank := i + 1
		m := rank
		if v < rank {
			m = v
		}
		if m > best {
			best = m
		}
	}
	return best
}

// topTwoBushy returns the two genes with the highest bushiness, ties
// broken by ascending gene value for determinism; a single distinct gene
// is doubled, an empty set returns (0, 0).
func topTwoBushy(full map[pedigree.Gene]int) (pedigree.Gene, pedigree.Gene) {
	type entry struct {
		gene pedigree.Gene
		bush int
	}
	entries := make([]entry, 0, len(full))
	for g, t := range full {
		entries = append(entries, entry{g, t})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].bush != entries[j].bush {
			return entries[i].bush > entries[j].bush
		}
		return entries[i].gene < entries[j].gene
	})
	switch len(entries) {
	case 0:
		return 0, 0
	case 1:
		return entries[0].gene, entries[0].gene
	default:
		return entries[0].gene, entries[1].gene
	}
}

package pedigree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidInput is returned when an analysis query names a couple ID the
// pedigree does not recognize (spec §7 "Input malformed").
var ErrInvalidInput = errors.New("invalid input")

// Analysis holds a pedigree's precomputed ancestor/descendant/extant-
// descendant closures, the structural information tree-info's analytics
// flags are built from (spec §6 `tree-info`, grounded on
// `source/tree_analyze.{h,cpp}`'s `preprocess`).
//
// Construction walks every layer twice: once extant-to-founders to build
// des/ext bottom-up, once founders-to-extant to build anc top-down.
type Analysis struct {
	p *Pedigree

	anc map[*Couple]map[*Couple]struct{}
	des map[*Couple]map[*Couple]struct{}
	ext map[*Couple]map[*Couple]struct{}

	gradeOf map[*Couple]int
	extant  []*Couple
}

// NewAnalysis preprocesses p. p's current-layer pointer is left at the
// extant layer (0) on return.
func NewAnalysis(p *Pedigree) *Analysis {
	a := &Analysis{
		p:       p,
		anc:     make(map[*Couple]map[*Couple]struct{}),
		des:     make(map[*Couple]map[*Couple]struct{}),
		ext:     make(map[*Couple]map[*Couple]struct{}),
		gradeOf: make(map[*Couple]int),
	}

	p.Reset()
	for p.CurGrade() < p.NumGrades() {
		for _, v := range p.Current() {
			a.gradeOf[v] = p.CurGrade()
			a.des[v] = map[*Couple]struct{}{v: {}}
			if v.IsSelfCoupled() {
				a.extant = append(a.extant, v)
				a.ext[v] = map[*Couple]struct{}{v: {}}
			} else {
				a.ext[v] = map[*Couple]struct{}{}
			}
			for _, ch := range v.Children() {
				mergeCouples(a.des[v], a.des[ch.Couple()])
				mergeCouples(a.ext[v], a.ext[ch.Couple()])
			}
		}
		p.NextGrade()
	}

	for p.CurGrade() > 0 {
		p.PrevGrade()
		for _, v := range p.Current() {
			a.anc[v] = map[*Couple]struct{}{v: {}}
			for i := 0; i < 2; i++ {
				if par := v.Member(i).Parent(); par != nil {
					mergeCouples(a.anc[v], a.anc[par])
				}
			}
		}
	}
	p.Reset()
	return a
}

func mergeCouples(dst, src map[*Couple]struct{}) {
	for c := range src {
		dst[c] = struct{}{}
	}
}

// LCABucket holds one generation's joint-LCA count alongside the total
// number of extant pairs descended from distinct children, the two figures
// tree-info's `-L` flag reports as a ratio.
type LCABucket struct {
	Bad   int
	Total int
}

// BadJointLCAs counts, for every generation, the number of extant-pair/
// ancestor triples where the pair's lowest common ancestor in that
// generation is reached through a *shared* child rather than two distinct
// ones — the "joint LCA" defect tree-info's `-L` flag surfaces (spec §6,
// grounded on `bad_joint_LCAs`).
//
// The reference implementation's pair-count denominator has a bug (it never
// accumulates the sum-of-squares term its own comment describes, so the
// divisor collapses to half the raw child-descendant sum instead of the
// number of distinct-child pairs). This reconstructs the documented intent:
// total = Σ over couples v in the generation of (deg(v)² − Σ_child deg²)/2,
// where deg(v) is v's extant-descendant count.
func (a *Analysis) BadJointLCAs() []LCABucket {
	buckets := make([]LCABucket, a.p.NumGrades())

	for x := 0; x < len(a.extant); x++ {
		for y := x + 1; y < len(a.extant); y++ {
			ex, ey := a.extant[x], a.extant[y]
			mutual := make(map[*Couple]struct{})
			for v := range a.anc[ex] {
				if _, ok := a.anc[ey][v]; ok {
					mutual[v] = struct{}{}
				}
			}
			for v := range mutual {
				for u := range mutual {
					if v == u {
						continue
					}
					if _, ok := a.des[v][u]; !ok {
						continue
					}
					bad := false
					for _, ch := range v.Children() {
						desc := a.ext[ch.Couple()]
						_, hasX := desc[ex]
						_, hasY := desc[ey]
						if hasX && !hasY {
							bad = true
							break
						}
					}
					if bad {
						buckets[a.gradeOf[v]].Bad++
					}
				}
			}
		}
	}

	a.p.Reset()
	for !a.p.Done() {
		a.p.NextGrade()
		for _, v := range a.p.Current() {
			sum, sumSq := 0, 0
			for _, ch := range v.Children() {
				n := len(a.ext[ch.Couple()])
				sum += n
				sumSq += n * n
			}
			buckets[a.p.CurGrade()].Total += (sum*sum - sumSq) / 2
		}
	}
	a.p.Reset()
	return buckets
}

// BlockShare returns, for each generation and each block, three per-block
// counts over that generation's couples: how many extant descendants carry
// only the couple's member-0 allele at that block, how many carry only
// member-1's, and the remainder (both, or neither) — the `-B` block-share
// breakdown of how a generation's alleles propagate to the extant
// population. Result is indexed `[grade][category][block]`.
//
// The original `block_share_stat` body is not present in the retrieved
// source pack (only its call site in main/treeinfo_main.cpp); this rebuilds
// the three-category breakdown from the couple-level allele test
// (Couple.HasGene) already established for sibling detection, generalized
// across a whole generation's extant descendants.
func (a *Analysis) BlockShare() [][3][]int {
	blocks := a.p.NumBlocks()
	out := make([][3][]int, a.p.NumGrades())
	for i := range out {
		for cat := 0; cat < 3; cat++ {
			out[i][cat] = make([]int, blocks)
		}
	}

	a.p.Reset()
	for {
		grade := a.p.CurGrade()
		for _, v := range a.p.Current() {
			for b := 0; b < blocks; b++ {
				g0, g1 := v.Member(0).Gene(b), v.Member(1).Gene(b)
				for ext := range a.ext[v] {
					x := ext.Member(0)
					has0 := g0 != 0 && x.Gene(b) == g0
					has1 := g1 != 0 && x.Gene(b) == g1
					switch {
					case has0 && !has1:
						out[grade][0][b]++
					case has1 && !has0:
						out[grade][1][b]++
					default:
						out[grade][2][b]++
					}
				}
			}
		}
		if a.p.Done() {
			break
		}
		a.p.NextGrade()
	}
	a.p.Reset()
	return out
}

// SiblingBlockShare returns, for every couple that is not self-coupled
// (founder couples included, extant couples excluded) sorted by ID, a
// per-block count of how many of its siblings (other children of the same
// parent couple) carry one of its members' alleles at that block — the
// `-b` sibling-block-share analytic tree-info reports. Rows are ordered by
// couple ID for reproducibility (spec §5).
func (a *Analysis) SiblingBlockShare() [][]int {
	blocks := a.p.NumBlocks()
	var couples []*Couple
	for c := range a.gradeOf {
		if !c.IsSelfCoupled() {
			couples = append(couples, c)
		}
	}
	sort.Slice(couples, func(i, j int) bool { return couples[i].ID() < couples[j].ID() })

	out := make([][]int, 0, len(couples))
	for _, v := range couples {
		row := make([]int, blocks)
		siblings := siblingsOf(v)
		for b := 0; b < blocks; b++ {
			for _, w := range siblings {
				if w.HasGene(b, v.Member(0).Gene(b)) || w.HasGene(b, v.Member(1).Gene(b)) {
					row[b]++
				}
			}
		}
		out = append(out, row)
	}
	return out
}

func siblingsOf(v *Couple) []*Couple {
	var out []*Couple
	seen := map[*Couple]struct{}{v: {}}
	add := func(par *Couple) {
		if par == nil {
			return
		}
		for _, ch := range par.Children() {
			sib := ch.Couple()
			if _, dup := seen[sib]; dup {
				continue
			}
			seen[sib] = struct{}{}
			out = append(out, sib)
		}
	}
	add(v.Member(0).Parent())
	add(v.Member(1).Parent())
	return out
}

// Subtree renders the couple identified by id and its descendants down to
// the extant layer as an indented tree, the `-d id` subtree-dump analytic.
// Returns an error if id does not name a couple known to the pedigree.
func (a *Analysis) Subtree(id int64) (string, error) {
	root, ok := a.p.Couples().Get(id)
	if !ok {
		return "", fmt.Errorf("%w: couple %d not found", ErrInvalidInput, id)
	}
	var sb strings.Builder
	writeSubtree(&sb, root, 0)
	return sb.String(), nil
}

func writeSubtree(sb *strings.Builder, v *Couple, depth int) {
	fmt.Fprintf(sb, "%scouple %d (%d, %d)\n", strings.Repeat("  ", depth), v.ID(), v.Member(0).ID(), v.Member(1).ID())
	if v.IsSelfCoupled() {
		return
	}
	for _, ch := range v.SortedChildren() {
		writeSubtree(sb, ch.Couple(), depth+1)
	}
}

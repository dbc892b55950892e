// Package diff implements the tree-diff evaluator (spec §4.8): a bijection
// between an original pedigree and a REC-GEN reconstruction of it, scored
// for node, edge and block recovery, in total and per-generation buckets.
package diff

import (
	"fmt"
	"sort"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Progress mirrors recgen.Progress: an optional, nil-safe reporting hook
// for the topology-bijection loop (spec SPEC_FULL.md ambient stack).
type Progress interface {
	Add(n int)
	Finish()
}

// Bucket holds one metric's attempted/correct counts, either for one
// generation or as the running total.
type Bucket struct {
	Attempted int
	Correct   int
}

// Format renders the bucket as "correct/attempted (p%)", rounded down, per
// spec §4.8's human-display format.
func (b Bucket) Format() string {
	pct := 0
	if b.Attempted > 0 {
		pct = 100 * b.Correct / b.Attempted
	}
	return fmt.Sprintf("%d/%d (%d%%)", b.Correct, b.Attempted, pct)
}

// Stats holds the diff's totals and per-generation buckets for nodes,
// edges and blocks (spec §4.8 "Outputs").
type Stats struct {
	Nodes  Bucket
	Edges  Bucket
	Blocks Bucket

	NodesByGen  []Bucket
	EdgesByGen  []Bucket
	BlocksByGen []Bucket
}

func (s *Stats) ensureGen(grade int) {
	for len(s.NodesByGen) <= grade {
		s.NodesByGen = append(s.NodesByGen, Bucket{})
		s.EdgesByGen = append(s.EdgesByGen, Bucket{})
		s.BlocksByGen = append(s.BlocksByGen, Bucket{})
	}
}

func (s *Stats) addNodes(grade, attempted, correct int) {
	s.ensureGen(grade)
	s.NodesByGen[grade].Attempted += attempted
	s.NodesByGen[grade].Correct += correct
	s.Nodes.Attempted += attempted
	s.Nodes.Correct += correct
}

func (s *Stats) addEdges(grade, attempted, correct int) {
	s.ensureGen(grade)
	s.EdgesByGen[grade].Attempted += attempted
	s.EdgesByGen[grade].Correct += correct
	s.Edges.Attempted += attempted
	s.Edges.Correct += correct
}

func (s *Stats) addBlocks(grade, attempted, correct int) {
	s.ensureGen(grade)
	s.BlocksByGen[grade].Attempted += attempted
	s.BlocksByGen[grade].Correct += correct
	s.Blocks.Attempted += attempted
	s.Blocks.Correct += correct
}

// DefaultChildAccuracy is the minimum fraction of children that must
// correspond for a candidate parent to be accepted during ancestral
// bijection, the reference implementation's DEFAULT_CH_ACC (spec §4.8).
const DefaultChildAccuracy = 0.49

// Diff compares an original pedigree against a REC-GEN reconstruction of
// it: it builds a couple-to-couple bijection generation by generation,
// oldest-first above the extant layer, and checks block content once the
// bijection is known (spec §4.8).
type Diff struct {
	orig, recon *pedigree.Pedigree
	chAcc       float64
	progress    Progress

	origToRecon map[*pedigree.Couple]*pedigree.Couple
	reconToOrig map[*pedigree.Couple]*pedigree.Couple
	gradeOfOrig map[*pedigree.Couple]int

	Stats Stats
}

// New returns a Diff over orig and recon with the default child-accuracy
// threshold.
func New(orig, recon *pedigree.Pedigree) *Diff {
	return &Diff{
		orig:        orig,
		recon:       recon,
		chAcc:       DefaultChildAccuracy,
		origToRecon: make(map[*pedigree.Couple]*pedigree.Couple),
		reconToOrig: make(map[*pedigree.Couple]*pedigree.Couple),
		gradeOfOrig: make(map[*pedigree.Couple]int),
	}
}

// SetChildAccuracy overrides the child-accuracy threshold (spec §6, -a).
func (d *Diff) SetChildAccuracy(acc float64) *Diff {
	d.chAcc = acc
	return d
}

// SetProgress installs an optional progress-reporting hook over the
// topology-bijection loop.
func (d *Diff) SetProgress(p Progress) *Diff {
	d.progress = p
	return d
}

func (d *Diff) biject(orig, recon *pedigree.Couple, grade int) {
	d.origToRecon[orig] = recon
	d.reconToOrig[recon] = orig
	d.gradeOfOrig[orig] = grade
}

// bijectExtant matches extant couples one-to-one by shared individual ID
// (spec §4.8 "Extant bijection").
func (d *Diff) bijectExtant() {
	byID := make(map[int64]*pedigree.Individual)
	for c := range d.orig.Layer(0) {
		byID[c.Member(0).ID()] = c.Member(0)
	}
	for c := range d.recon.Layer(0) {
		if x, ok := byID[c.Member(0).ID()]; ok {
			d.biject(x.Couple(), c, 0)
		}
	}
}

// TopologyBiject runs the full greedy, oldest-first ancestral bijection
// (spec §4.8 "Ancestral bijection") on top of the extant bijection,
// accumulating node and edge statistics as it goes.
func (d *Diff) TopologyBiject() *Diff {
	d.orig.Reset()
	d.recon.Reset()
	d.bijectExtant()

	for !d.orig.Done() {
		d.orig.NextGrade()
		grade := d.orig.CurGrade()

		pars := d.orig.SortedCurrent()
		sort.SliceStable(pars, func(i, j int) bool {
			return pars[i].NumChildren() > pars[j].NumChildren()
		})

		d.addNodesTotal(grade, len(pars))
		for _, par := range pars {
			d.addEdgesTotal(grade, par.NumChildren())
			matched := d.bijectParent(par)
			d.addNodesCorrect(grade, oneIfPositive(matched))
			if matched > 0 {
				image := d.origToRecon[par]
				for _, ch := range par.Children() {
					if image.IsChildCouple(d.origToRecon[ch.Couple()]) {
						d.addEdgesCorrect(grade, 1)
					}
				}
			}
		}
		d.recon.NextGrade()
		if d.progress != nil {
			d.progress.Add(1)
		}
	}
	if d.progress != nil {
		d.progress.Finish()
	}
	return d
}

func (d *Diff) addNodesTotal(grade, n int)   { d.Stats.addNodes(grade, n, 0) }
func (d *Diff) addNodesCorrect(grade, n int) { d.Stats.addNodes(grade, 0, n) }
func (d *Diff) addEdgesTotal(grade, n int)   { d.Stats.addEdges(grade, n, 0) }
func (d *Diff) addEdgesCorrect(grade, n int) { d.Stats.addEdges(grade, 0, n) }

func oneIfPositive(n int) int {
	if n > 0 {
		return 1
	}
	return 0
}

// bijectParent searches for v's image among couples whose children's
// original images are v's children, scoring candidates by how many of v's
// children point to them as a parent on either side (spec §4.8): the
// selected candidate must exceed ch_acc * v.NumChildren() and
// ch_acc * candidate.NumChildren(), and must be unclaimed.
func (d *Diff) bijectParent(v *pedigree.Couple) int {
	counts := make(map[*pedigree.Couple]int)
	var order []*pedigree.Couple
	// d.recon is still positioned at the children's grade: the caller
	// advances it to match orig only after every parent in this grade has
	// been processed (mirroring tree_diff_basic::topology_biject's
	// ordering).
	for _, reconChild := range d.recon.Current() {
		orig, ok := d.reconToOrig[reconChild]
		if !ok || !v.IsChildCouple(orig) {
			continue
		}
		insert := func(par *pedigree.Couple) {
			if par == nil {
				return
			}
			if _, seen := counts[par]; !seen {
				order = append(order, par)
			}
			counts[par]++
		}
		insert(reconChild.Member(0).Parent())
		if reconChild.Member(0) != reconChild.Member(1) {
			insert(reconChild.Member(1).Parent())
		}
	}

	var best *pedigree.Couple
	bestCount := 0
	for _, cand := range order {
		n := counts[cand]
		if float64(n) <= d.chAcc*float64(v.NumChildren()) {
			continue
		}
		if float64(n) <= d.chAcc*float64(cand.NumChildren()) {
			continue
		}
		if _, claimed := d.reconToOrig[cand]; claimed {
			continue
		}
		if n > bestCount {
			best, bestCount = cand, n
		}
	}
	if best == nil {
		return 0
	}
	d.biject(v, best, d.orig.CurGrade())
	return bestCount
}

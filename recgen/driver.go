package recgen

import (
	"math"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/collect"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/internal/rlog"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Progress is the capability the driver reports generation-loop progress
// through. It is nil-safe on the zero value of any concrete no-op
// implementation; passing a nil Progress to Options disables reporting
// entirely. The core driver never constructs its own bar (spec SPEC_FULL.md
// ambient stack: "the core driver never prints"), so cmd/rec-gen is the
// only place a real progressbar.ProgressBar-backed Progress gets built.
type Progress interface {
	Add(n int)
	Finish()
}

// Options bundles REC-GEN's tunable parameters (spec §4.4).
type Options struct {
	Sib   float64
	Cand  float64
	Rec   float64
	Decay float64
	D     int
	NoTop bool

	// SibList and CandList, when non-empty, override the decayed Sib/Cand
	// thresholds on a per-generation basis: SibList[g] (clamped to the
	// last element once g exceeds its length) is used verbatim instead of
	// Sib*Decay^g.
	SibList  []float64
	CandList []float64

	// PruneClaimed enables the QuadraticSiblingTest DFS-pruning
	// optimization (SPEC_FULL.md supplemented features).
	PruneClaimed bool

	Progress Progress
	Log      *rlog.Logger
}

// Driver composes the three REC-GEN capabilities spec §9 calls out —
// sibling_test, assign_parents, collect_symbols — over a single pedigree,
// rather than baking the generation loop into any one collector or
// sibling-test implementation.
type Driver struct {
	Sibling   SiblingTest
	Collector collect.Collector
	Options   Options
}

// NewDriver returns a Driver using the preferred quadratic sibling test
// and the given collector.
func NewDriver(collector collect.Collector, opts Options) *Driver {
	return &Driver{
		Sibling:   QuadraticSiblingTest{PruneClaimed: opts.PruneClaimed},
		Collector: collector,
		Options:   opts,
	}
}

func (d *Driver) logger() *rlog.Logger {
	if d.Options.Log != nil {
		return d.Options.Log
	}
	return rlog.Discard()
}

// thresholdAt returns the (sib, cand) thresholds for generation grade,
// honoring a per-generation override list when present and otherwise
// applying Decay^grade to the base thresholds (spec §4.4 "update
// thresholds").
func (d *Driver) thresholdAt(grade int) (sib, cand float64) {
	sib = pickOverride(d.Options.SibList, grade, d.Options.Sib*math.Pow(d.Options.Decay, float64(grade)))
	cand = pickOverride(d.Options.CandList, grade, d.Options.Cand*math.Pow(d.Options.Decay, float64(grade)))
	return sib, cand
}

func pickOverride(list []float64, grade int, fallback float64) float64 {
	if len(list) == 0 {
		return fallback
	}
	if grade >= len(list) {
		return list[len(list)-1]
	}
	return list[grade]
}

// Run executes the REC-GEN generation loop (spec §4.4, Algorithm 1) over
// p, which must be reset to its extant layer, and returns p with every
// generation above 0 reconstructed. At termination every top-layer couple
// is made its own parent, matching apply_rec_gen's final self-parenting
// pass over the founder generation.
func (d *Driver) Run(p *pedigree.Pedigree) *pedigree.Pedigree {
	log := d.logger()
	p.Reset()
	log.Work("REC-GEN begins")

	for !p.Done() {
		log.Work("new generation at grade %d", p.CurGrade())
		if !d.Options.NoTop {
			sib, cand := d.thresholdAt(p.CurGrade())
			log.Work("sibling test: sib=%.4f cand=%.4f", sib, cand)
			g := d.Sibling.Test(p, sib, cand)
			log.Data("hypergraph built with %d edges over %d vertices", g.EdgeCount(), g.VertexCount())
			created := AssignParents(p, g, d.Options.D)
			log.Data("assigned %d parent couples at grade %d", created, p.CurGrade())
			if created == 0 {
				log.Data("no clique of size %d found at grade %d; generation stops growing", d.Options.D, p.CurGrade())
			}
		} else {
			p.NextGrade()
		}
		for _, v := range p.SortedCurrent() {
			log.Work("collecting symbols for couple %d", v.ID())
			if err := d.Collector.Collect(v); err != nil {
				log.Data("symbol collection failed for couple %d: %v", v.ID(), err)
			}
			if d.Options.Progress != nil {
				d.Options.Progress.Add(1)
			}
		}
	}

	log.Work("done")
	for _, v := range p.SortedCurrent() {
		v.Member(0).AssignParent(v)
		v.Member(1).AssignParent(v)
	}
	if d.Options.Progress != nil {
		d.Options.Progress.Finish()
	}
	return p
}

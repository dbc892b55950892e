package recgen

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/collect"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/serialize"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/simulate"
)

func TestDriver_Run_ReconstructsToFounderLayer(t *testing.T) {
	orig := simulate.BuildTree(2, 3, 4)
	extantDump := serialize.DumpExtant(orig)
	p, err := serialize.RestoreExtant(extantDump)
	if err != nil {
		t.Fatalf("unexpected restore error: %v", err)
	}

	driver := NewDriver(collect.TripleVote{}, Options{
		Sib:   1.0,
		Cand:  1.0,
		Decay: 1.0,
		D:     3,
	})
	result := driver.Run(p)

	if !result.Done() {
		t.Fatalf("expected the generation loop to terminate at the founder layer, stopped at grade %d", result.CurGrade())
	}
	for c := range result.Layer(result.CurGrade()) {
		if !c.Member(0).IsFounder() || !c.Member(1).IsFounder() {
			t.Error("expected every top-layer member to be self-parented at termination")
		}
	}
}

func TestDriver_ThresholdAt_DecaysPerGeneration(t *testing.T) {
	d := &Driver{Options: Options{Sib: 0.8, Cand: 0.4, Decay: 0.5}}
	sib0, cand0 := d.thresholdAt(0)
	sib1, cand1 := d.thresholdAt(1)
	if sib0 != 0.8 || cand0 != 0.4 {
		t.Fatalf("expected generation 0 to use the base thresholds unchanged, got sib=%v cand=%v", sib0, cand0)
	}
	if sib1 != 0.4 || cand1 != 0.2 {
		t.Fatalf("expected generation 1 decayed by 0.5, got sib=%v cand=%v", sib1, cand1)
	}
}

func TestDriver_ThresholdAt_HonorsOverrideList(t *testing.T) {
	d := &Driver{Options: Options{Sib: 0.8, Decay: 0.5, SibList: []float64{0.9}}}
	sib, _ := d.thresholdAt(0)
	if sib != 0.9 {
		t.Fatalf("expected override 0.9 regardless of decay, got %v", sib)
	}
}

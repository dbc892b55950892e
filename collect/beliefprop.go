package collect

import (
	"github.com/lesfleursdelanuitdev/ligneous-recgen/bp"
	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// BeliefProp adapts a bp.Engine into the Collector capability (spec §4.7e):
// it fills in a couple's genome from the engine's message at each block,
// over a fixed gene universe computed once per pedigree.
type BeliefProp struct {
	engine  *bp.Engine
	genomes [][]pedigree.Gene
}

// NewBeliefProp returns a BeliefProp collector driven by engine, with
// allGenesPerBlock the full per-block gene universe (pedigree.AllGenes())
// the message domains are built over.
func NewBeliefProp(engine *bp.Engine, allGenesPerBlock [][]pedigree.Gene) *BeliefProp {
	return &BeliefProp{engine: engine, genomes: allGenesPerBlock}
}

// Collect implements Collector.
func (b *BeliefProp) Collect(par *pedigree.Couple) error {
	b.engine.CollectSymbols(par, b.genomes)
	return nil
}

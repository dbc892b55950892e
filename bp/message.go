package bp

import (
	"math"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// Message is a sparse probability distribution over the unordered pairs of
// a fixed gene universe. Pairs not explicitly Set carry an implicit
// default weight, nullval — the mass BP assigns to "this pair was never
// distinguished from any other," which starts at a power of the mutation
// parameter epsilon and only shrinks as a couple accumulates extant
// descendants (spec §4.7e, bp_message).
//
// Per-gene marginals are tracked incrementally rather than recomputed by
// scanning every stored pair: explicitSum/explicitCount hold the
// contribution of the pairs actually stored, and Marginal adds in the
// implicit nullval contribution of every pair containing g that was never
// stored. This stays correct even if nullval changes after pairs have
// already been set, since the implicit contribution is computed from the
// current nullval at read time rather than baked in at write time.
type Message struct {
	genes   []pedigree.Gene
	nullval float64

	probs         map[Domain]float64
	explicitSum   map[pedigree.Gene]float64
	explicitCount map[pedigree.Gene]int
}

// NewMessage returns an all-default message over the given gene universe:
// every pair currently carries weight nullval.
func NewMessage(genes []pedigree.Gene, nullval float64) *Message {
	return &Message{
		genes:         append([]pedigree.Gene(nil), genes...),
		nullval:       nullval,
		probs:         make(map[Domain]float64),
		explicitSum:   make(map[pedigree.Gene]float64),
		explicitCount: make(map[pedigree.Gene]int),
	}
}

// Genes returns the message's gene universe.
func (m *Message) Genes() []pedigree.Gene { return m.genes }

// domainSize is the normalization constant |domain|^2 used by Normalize:
// the square of the gene universe's size, per spec. It is a looser
// bookkeeping constant than the per-gene pair count Marginal uses below —
// the two need not agree exactly, since Normalize only needs a total-mass
// denominator while Marginal needs an O(1) per-gene figure.
func (m *Message) domainSize() int {
	n := len(m.genes)
	return n * n
}

// Get returns the weight stored at d, or nullval if d was never Set.
func (m *Message) Get(d Domain) float64 {
	if v, ok := m.probs[d]; ok {
		return v
	}
	return m.nullval
}

// Set records an explicit weight for d, updating the incremental marginal
// bookkeeping for both of d's genes.
func (m *Message) Set(d Domain, val float64) {
	g1, g2 := d.Genes()
	old, had := m.probs[d]
	m.probs[d] = val
	if had {
		delta := val - old
		m.explicitSum[g1] += delta
		if g2 != g1 {
			m.explicitSum[g2] += delta
		}
		return
	}
	m.explicitSum[g1] += val
	m.explicitCount[g1]++
	if g2 != g1 {
		m.explicitSum[g2] += val
		m.explicitCount[g2]++
	}
}

// Inc adds delta to d's current weight (Get then Set).
func (m *Message) Inc(d Domain, delta float64) { m.Set(d, m.Get(d)+delta) }

// Marginal returns the total weight of every pair containing g, in O(1):
// the explicitly-stored contribution plus nullval times the number of
// pairs containing g that were never stored (spec §9's "O(1) marg(g)").
func (m *Message) Marginal(g pedigree.Gene) float64 {
	unmapped := len(m.genes) - m.explicitCount[g]
	return m.explicitSum[g] + m.nullval*float64(unmapped)
}

// allKeys returns the union of two messages' explicitly-stored domains.
func allKeys(a, b *Message) map[Domain]struct{} {
	keys := make(map[Domain]struct{}, len(a.probs)+len(b.probs))
	for d := range a.probs {
		keys[d] = struct{}{}
	}
	for d := range b.probs {
		keys[d] = struct{}{}
	}
	return keys
}

// Add adds other into m pairwise (pair weights and nullval alike).
func (m *Message) Add(other *Message) {
	for d := range allKeys(m, other) {
		m.Set(d, m.Get(d)+other.Get(d))
	}
	m.nullval += other.nullval
}

// Mul multiplies m by other pairwise.
func (m *Message) Mul(other *Message) {
	for d := range allKeys(m, other) {
		m.Set(d, m.Get(d)*other.Get(d))
	}
	m.nullval *= other.nullval
}

// Scale multiplies every weight, explicit and implicit, by factor.
func (m *Message) Scale(factor float64) {
	for d, v := range m.probs {
		m.Set(d, v*factor)
	}
	m.nullval *= factor
}

// Normalize divides every weight by the message's total mass (the sum of
// every pair's weight over the full domain, explicit and implicit alike),
// so the message sums to 1. A message whose total mass has underflowed to
// zero has its nullval clamped to the smallest representable positive
// magnitude instead, so after normalizing every never-Set pair carries an
// equal share of the mass and no division by zero occurs (spec §7, numeric
// underflow clamp).
func (m *Message) Normalize() {
	sum := 0.0
	for _, v := range m.probs {
		sum += v
	}
	unmapped := m.domainSize() - len(m.probs)
	sum += m.nullval * float64(unmapped)
	if sum <= 0 {
		// Clamped nullval / (clamped nullval * unmapped) is 1/unmapped;
		// it is set outright because 1/SmallestNonzeroFloat64 overflows.
		if unmapped > 0 {
			m.nullval = 1 / float64(unmapped)
		}
		return
	}
	m.Scale(1 / sum)
}

// ExtractMax returns the domain pair with the greatest explicitly-stored
// weight, defaulting to the canonical pair of the first two genes in the
// universe (or the single gene doubled, if the universe has only one) when
// no stored pair beats a zero baseline. Implicit (nullval-only) pairs are
// never considered: the DP recurrence Sets only the pairs drawn from the
// couple's descendant genes, and every other pair of the universe is
// ignored here.
func (m *Message) ExtractMax() Domain {
	best := m.defaultDomain()
	bestVal := 0.0
	for d, v := range m.probs {
		if v > bestVal {
			bestVal = v
			best = d
		}
	}
	return best
}

func (m *Message) defaultDomain() Domain {
	if len(m.genes) == 0 {
		return Domain{}
	}
	if len(m.genes) == 1 {
		return NewDomain(m.genes[0], m.genes[0])
	}
	return NewDomain(m.genes[0], m.genes[1])
}

package bp

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lesfleursdelanuitdev/ligneous-recgen/pedigree"
)

// MemoryMode selects how aggressively the Engine's message cache is
// retained across a generation's collection pass (spec §6, -m memmode).
type MemoryMode int

const (
	// MemFull keeps every computed message alive for the lifetime of the
	// Engine: fastest, but memory grows with the number of couples times
	// the number of blocks.
	MemFull MemoryMode = iota
	// MemPurgeChild discards the messages of a couple's children as soon
	// as that couple's own message has been computed, and bounds the rest
	// of the cache with an LRU, trading recomputation (if the same message
	// is needed again later, e.g. by the other member's parent couple) for
	// a bounded cache footprint.
	MemPurgeChild
)

type cacheKey struct {
	coupleID int64
	block    int
}

// Engine computes and caches belief-propagation messages over a pedigree's
// current generation, per block, honoring one of the two memory modes
// (spec §4.7e, §9).
type Engine struct {
	epsilon float64
	mode    MemoryMode

	full map[cacheKey]*Message
	lru  *lru.Cache[cacheKey, *Message]

	desGenes map[*pedigree.Couple]map[int]map[pedigree.Gene]struct{}
}

// NewEngine returns an Engine with the given mutation parameter and memory
// mode. cacheSize bounds the LRU cache used under MemPurgeChild; it is
// ignored under MemFull, which never evicts.
func NewEngine(epsilon float64, mode MemoryMode, cacheSize int) *Engine {
	e := &Engine{
		epsilon:  epsilon,
		mode:     mode,
		desGenes: make(map[*pedigree.Couple]map[int]map[pedigree.Gene]struct{}),
	}
	if mode == MemPurgeChild {
		if cacheSize < 1 {
			cacheSize = 1
		}
		c, _ := lru.New[cacheKey, *Message](cacheSize)
		e.lru = c
	} else {
		e.full = make(map[cacheKey]*Message)
	}
	return e
}

func (e *Engine) getCached(key cacheKey) (*Message, bool) {
	if e.mode == MemPurgeChild {
		return e.lru.Get(key)
	}
	m, ok := e.full[key]
	return m, ok
}

func (e *Engine) putCached(key cacheKey, m *Message) {
	if e.mode == MemPurgeChild {
		e.lru.Add(key, m)
		return
	}
	e.full[key] = m
}

func (e *Engine) evict(key cacheKey) {
	if e.mode == MemPurgeChild {
		e.lru.Remove(key)
	}
}

// desGenesAt returns the set of distinct genes, at block, carried by v's
// extant descendants — computed once per (couple, block) and memoized
// indefinitely (this cache is small: one gene set per couple per block,
// never a full message, so it is kept outside the memory-mode tradeoff).
func (e *Engine) desGenesAt(v *pedigree.Couple, block int) map[pedigree.Gene]struct{} {
	byBlock, ok := e.desGenes[v]
	if ok {
		if set, ok := byBlock[block]; ok {
			return set
		}
	} else {
		byBlock = make(map[int]map[pedigree.Gene]struct{})
		e.desGenes[v] = byBlock
	}

	var set map[pedigree.Gene]struct{}
	if v.IsSelfCoupled() {
		set = map[pedigree.Gene]struct{}{v.Member(0).Gene(block): {}}
	} else {
		set = make(map[pedigree.Gene]struct{})
		for _, ch := range v.SortedChildren() {
			for g := range e.desGenesAt(ch.Couple(), block) {
				set[g] = struct{}{}
			}
		}
	}
	byBlock[block] = set
	return set
}

func sortedGenes(set map[pedigree.Gene]struct{}) []pedigree.Gene {
	out := make([]pedigree.Gene, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Message returns v's belief-propagation message at block, computing and
// caching it (and, transitively, every descendant message it depends on) if
// it is not already cached.
//
// Grounded on rec_gen_bp.cpp's compute_message_at: an extant (self-coupled)
// couple's message places all its mass on the single homozygous pair of
// its own gene. An internal couple's message, for every candidate pair
// {g1, g2} drawn from its descendants' gene universe, runs a DP over its
// children computing the probability that exactly j of them fail to carry
// either g1 or g2, then weights each failure count by epsilon^j — mirroring
// the independent per-child mutation model the recurrence assumes.
func (e *Engine) Message(v *pedigree.Couple, block int, allGenes []pedigree.Gene) *Message {
	key := cacheKey{v.ID(), block}
	if m, ok := e.getCached(key); ok {
		return m
	}

	if v.IsSelfCoupled() {
		// A point mass on the extant individual's actual pair: no missing
		// weight at all, not epsilon^0=1 spread over the whole domain
		// (spec §4.7e).
		g := v.Member(0).Gene(block)
		msg := NewMessage(allGenes, 0)
		msg.Set(NewDomain(g, g), 1)
		msg.Normalize()
		e.putCached(key, msg)
		return msg
	}

	nullval := math.Pow(e.epsilon, float64(v.NumChildren()))
	msg := NewMessage(allGenes, nullval)

	genes := sortedGenes(e.desGenesAt(v, block))
	children := v.SortedChildren()
	n := len(children)

	for _, g1 := range genes {
		for _, g2 := range genes {
			if g1 > g2 {
				continue
			}
			d := NewDomain(g1, g2)

			// numMissing[i][j]: probability that, among the first i
			// children considered, exactly j failed to carry g1 or g2.
			numMissing := make([][]float64, n+1)
			for i := range numMissing {
				numMissing[i] = make([]float64, n+1)
			}
			numMissing[0][0] = 1

			for i, indiv := range children {
				chMsg := e.Message(indiv.Couple(), block, allGenes)
				p := chMsg.Marginal(g1)
				if g1 != g2 {
					p += chMsg.Marginal(g2) - chMsg.Get(NewDomain(g1, g2))
				}
				for j := 0; j <= i; j++ {
					numMissing[i+1][j] += numMissing[i][j] * p
					numMissing[i+1][j+1] += numMissing[i][j] * (1 - p)
				}
			}

			total := 0.0
			for j := 0; j <= n; j++ {
				total += numMissing[n][j] * math.Pow(e.epsilon, float64(j))
			}
			msg.Set(d, total)
		}
	}

	msg.Normalize()
	e.putCached(key, msg)

	if e.mode == MemPurgeChild {
		for _, indiv := range children {
			e.evict(cacheKey{indiv.Couple().ID(), block})
		}
	}
	return msg
}

// CollectSymbols fills in v's two unassigned genome blocks, block by block,
// with the pair of genes its belief-propagation message at that block
// assigns the greatest mass (spec §4.7e).
func (e *Engine) CollectSymbols(v *pedigree.Couple, allGenesPerBlock [][]pedigree.Gene) {
	for b, genes := range allGenesPerBlock {
		msg := e.Message(v, b, genes)
		g1, g2 := msg.ExtractMax().Genes()
		v.InsertGene(b, g1)
		v.InsertGene(b, g2)
	}
}

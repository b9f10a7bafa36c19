package dataset

import "github.com/okian/harmony/internal/domain/model"

type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	a, b = model.NormalizeKey(a), model.NormalizeKey(b)
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// SynergyIndex answers pairwise synergy lookups independent of the order the
// pair was stored or is asked in. Absent pairs score 0.
type SynergyIndex struct {
	scores map[pairKey]float64
}

// NewSynergyIndex indexes pairs. When an unordered pair repeats, the first
// record wins.
func NewSynergyIndex(pairs []model.SynergyPair) *SynergyIndex {
	idx := &SynergyIndex{scores: make(map[pairKey]float64, len(pairs))}
	for _, p := range pairs {
		k := newPairKey(p.A, p.B)
		if _, ok := idx.scores[k]; ok {
			continue
		}
		idx.scores[k] = p.Score
	}
	return idx
}

// Score returns synergy(a, b) == synergy(b, a), or 0 when unknown.
func (x *SynergyIndex) Score(a, b string) float64 {
	if x == nil {
		return 0
	}
	return x.scores[newPairKey(a, b)]
}

// Len returns the number of distinct pairs.
func (x *SynergyIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.scores)
}

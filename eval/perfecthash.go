package eval

import (
	"sort"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/tables"
)

// PerfectHashEvaluator scores via the combinatorial-index tables: an
// 8192-entry flush table keyed by 13-bit rank mask, and a 50388-entry
// rank table keyed by the colex index of the 7-card rank multiset
// (spec.md §4.1, §4.2).
type PerfectHashEvaluator struct {
	t *tables.Tables
}

// LoadPerfectHash loads generated tables from tableDir, or builds them
// in-memory if tableDir is empty.
func LoadPerfectHash(tableDir string) (*PerfectHashEvaluator, error) {
	if tableDir == "" {
		return &PerfectHashEvaluator{t: tables.BuildInMemory()}, nil
	}
	t, err := tables.Load(tableDir)
	if err != nil {
		return nil, err
	}
	return &PerfectHashEvaluator{t: t}, nil
}

func (e *PerfectHashEvaluator) Score7(hand [7]cards.Card) int32 {
	var suitCount [4]int
	var suitMask [4]uint16
	multiset := make([]int, 7)
	for i, c := range hand {
		r := int(c.Rank - cards.Two)
		multiset[i] = r
		suitCount[c.Suit]++
		suitMask[c.Suit] |= 1 << uint(r)
	}

	sort.Ints(multiset)
	var m7 [7]int
	copy(m7[:], multiset)
	best := e.t.Rank[tables.ColexIndex(m7, e.t.Hash)]

	for s := 0; s < 4; s++ {
		if suitCount[s] >= 5 {
			if v := e.t.Flush[suitMask[s]]; v > best {
				best = v
			}
		}
	}
	return best
}

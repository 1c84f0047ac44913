package eval

import (
	"fmt"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/tables"
)

// TwoPlusTwoEvaluator walks the offline-generated HR state-machine table:
// starting from the root pointer, each of the seven dealt cards advances
// the state by one HR lookup, and the final lookup yields the packed
// score (spec.md §4.1).
type TwoPlusTwoEvaluator struct {
	hr []int32
}

// LoadTwoPlusTwo loads the HR table generated by cmd/gentables from
// tableDir. Unlike the other evaluators this one cannot fall back to an
// in-memory build: the full table enumerates every possible 7-card deal
// and is meant to be generated once, offline (spec.md §4.2).
func LoadTwoPlusTwo(tableDir string) (*TwoPlusTwoEvaluator, error) {
	if tableDir == "" {
		return nil, fmt.Errorf("eval: two_plus_two requires a generated table directory (run cmd/gentables)")
	}
	hr, err := tables.LoadTwoPlusTwoRaw(tableDir)
	if err != nil {
		return nil, err
	}
	return &TwoPlusTwoEvaluator{hr: hr}, nil
}

func (e *TwoPlusTwoEvaluator) Score7(hand [7]cards.Card) int32 {
	p := e.hr[tables.RootPointerSlot]
	for _, c := range hand {
		idx := int(c.Rank-cards.Two)*4 + int(c.Suit) + 1
		p = e.hr[int(p)+idx]
	}
	return e.hr[p]
}

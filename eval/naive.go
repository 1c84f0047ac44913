package eval

import (
	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/handrank"
)

// NaiveEvaluator enumerates all C(7,5)=21 five-card subsets of a hand and
// classifies each by rank histogram and flush/straight test, returning the
// best score. It uses no lookup tables and is the reference implementation
// every other evaluator is checked against (spec.md §8, evaluator
// agreement).
type NaiveEvaluator struct{}

func (NaiveEvaluator) Score7(hand [7]cards.Card) int32 {
	var best int32 = -1
	for _, combo := range choose7of5 {
		var five [5]cards.Card
		for i, idx := range combo {
			five[i] = hand[idx]
		}
		if s := scoreFive(five); s > best {
			best = s
		}
	}
	return best
}

// scoreFive classifies exactly five cards.
func scoreFive(five [5]cards.Card) int32 {
	rankIdx := make([]int, 5)
	suitCount := map[cards.Suit]int{}
	for i, c := range five {
		rankIdx[i] = int(c.Rank - cards.Two)
		suitCount[c.Suit]++
	}
	for _, n := range suitCount {
		if n == 5 {
			return handrank.ClassifyFlush(rankIdx)
		}
	}
	counts, presence := handrank.RankCounts(rankIdx)
	return handrank.ClassifyNonFlush(counts, presence)
}

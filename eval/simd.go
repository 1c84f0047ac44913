package eval

import "github.com/domino14/pokerequity/cards"

// SIMDEvaluator is scalar-correctness-equivalent to CactusKevEvaluator; it
// additionally exposes ScoreBatch, a struct-of-arrays entry point meant to
// be vectorized (AVX2, K=8) on capable targets. This build has no cgo/asm
// backend, so ScoreBatch always takes the documented non-AVX fallback: a
// scalar loop that reproduces bit-for-bit what Score7 would return for
// each lane (spec.md §4.1, §9).
type SIMDEvaluator struct {
	scalar CactusKevEvaluator
}

func (e SIMDEvaluator) Score7(hand [7]cards.Card) int32 {
	return e.scalar.Score7(hand)
}

func (e SIMDEvaluator) ScoreBatch(batch *HandBatch, out *[BatchWidth]int32) {
	for k := 0; k < batch.N; k++ {
		var hand [7]cards.Card
		for c := 0; c < 7; c++ {
			hand[c] = cards.Card{
				Rank: cards.Rank(batch.Ranks[c][k]),
				Suit: cards.Suit(batch.Suits[c][k]),
			}
		}
		out[k] = e.scalar.Score7(hand)
	}
}

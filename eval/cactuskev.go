package eval

import (
	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/handrank"
)

// ranksPrimes is Paul Senzee / Cactus Kev's prime encoding for ranks
// 2..Ace, used so that a 5-card prime product uniquely identifies its
// rank multiset.
var ranksPrimes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// encodeCard packs a card into Cactus Kev's 32-bit word:
//
//	bits 0-7:   rank prime
//	bits 8-11:  rank index (0-12)
//	bits 12-15: suit, one-hot
//	bits 16-28: rank, one-hot
func encodeCard(c cards.Card) uint32 {
	rankIdx := uint32(c.Rank - cards.Two)
	prime := ranksPrimes[rankIdx]
	suitBit := uint32(1) << uint(c.Suit)
	rankBit := uint32(1) << rankIdx
	return prime | rankIdx<<8 | suitBit<<12 | rankBit<<16
}

// CactusKevEvaluator evaluates via Cactus Kev's prime/bitmask card
// encoding: flush by ANDing the suit nibble across a 5-card subset,
// straight by ORing the one-hot rank bits into a 13-bit mask. The optional
// Senzee perfect-hash reduction over the prime product is not implemented
// (spec.md §4.1 marks it as a performance-only option); non-flush hands
// are classified from the rank-index nibbles directly.
type CactusKevEvaluator struct{}

func (CactusKevEvaluator) Score7(hand [7]cards.Card) int32 {
	var words [7]uint32
	for i, c := range hand {
		words[i] = encodeCard(c)
	}
	var best int32 = -1
	for _, combo := range choose7of5 {
		var suitAnd uint32 = 0xF
		var rankOr uint32
		rankIdx := make([]int, 5)
		for i, idx := range combo {
			w := words[idx]
			suitAnd &= (w >> 12) & 0xF
			rankOr |= (w >> 16) & 0x1FFF
			rankIdx[i] = int((w >> 8) & 0xF)
		}
		var s int32
		if suitAnd != 0 {
			s = handrank.ClassifyFlush(rankIdx)
		} else {
			counts, _ := handrank.RankCounts(rankIdx)
			s = handrank.ClassifyNonFlush(counts, uint16(rankOr))
		}
		if s > best {
			best = s
		}
	}
	return best
}

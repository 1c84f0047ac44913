package handrank

import "testing"

func TestPackScoreOrdersByHandTypeFirst(t *testing.T) {
	// The worst FullHouse must still outrank the best Flush, regardless of
	// kickers, since hand type dominates the packed scale.
	worstFullHouse := PackScore(FullHouse, 0, 0)
	bestFlush := PackScore(Flush, 14, 14, 14, 14, 14)
	if worstFullHouse <= bestFlush {
		t.Errorf("worst FullHouse (%d) did not outrank best Flush (%d)", worstFullHouse, bestFlush)
	}
}

func TestPackScoreOrdersByKickersWithinType(t *testing.T) {
	low := PackScore(OnePair, 5, 4, 3, 2)
	high := PackScore(OnePair, 9, 4, 3, 2)
	if high <= low {
		t.Errorf("higher top kicker (%d) did not outrank lower (%d)", high, low)
	}
}

func TestTypeOfRecoversPackedType(t *testing.T) {
	for _, typ := range []HandType{HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush} {
		score := PackScore(typ, 7, 6, 5, 4, 3)
		if got := TypeOf(score); got != typ {
			t.Errorf("TypeOf(PackScore(%v, ...)) = %v, want %v", typ, got, typ)
		}
	}
}

func TestHandTypeStringIsNotUnknownForNamedValues(t *testing.T) {
	for _, typ := range []HandType{HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush} {
		if typ.String() == "Unknown" {
			t.Errorf("HandType(%d).String() = Unknown, want a named value", typ)
		}
	}
}

// Package handrank defines the shared score scale that every evaluator in
// package eval must agree on, and the starting-hand classification used to
// key range and opponent-class statistics.
package handrank

// HandType is the nine-valued hand-class enum, order-consistent with the
// packed score scale: HighCard=0 through RoyalFlush=9.
type HandType int

const (
	HighCard HandType = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "HighCard"
	case OnePair:
		return "OnePair"
	case TwoPair:
		return "TwoPair"
	case ThreeOfAKind:
		return "ThreeOfAKind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "FullHouse"
	case FourOfAKind:
		return "FourOfAKind"
	case StraightFlush:
		return "StraightFlush"
	case RoyalFlush:
		return "RoyalFlush"
	default:
		return "Unknown"
	}
}

// scoreBand is the fixed million-scale multiplier every evaluator packs its
// score into: score = int(typ)*Band + kickers.
const scoreBand = 1_000_000

// PackScore combines a hand type with up to five base-15 kicker ranks
// (most to least significant) into the unified score scale specified for
// all five evaluators.
func PackScore(typ HandType, kickers ...int) int32 {
	k := 0
	for _, r := range kickers {
		k = k*15 + r
	}
	return int32(typ)*scoreBand + int32(k)
}

// TypeOf recovers the hand-type band from a packed score.
func TypeOf(score int32) HandType {
	return HandType(score / scoreBand)
}

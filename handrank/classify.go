package handrank

import "sort"

// wheelMask is the rank-bit mask for the wheel straight (A,5,4,3,2), using
// bit i for rank index i = rank-2 (so Ace is bit 12, not bit 13).
const wheelMask = uint16(0x100F)

// straightWindow is a sliding 5-consecutive-bit window.
const straightWindow = uint16(0x1F)

// HighestStraightTop returns the rank index (0..12) of the top card of the
// highest straight present in the given 13-bit rank-presence mask, and
// whether one exists. The wheel (A-2-3-4-5) reports its top as index 3
// (rank Five), per spec: the wheel's high card is 5, not 14.
func HighestStraightTop(presence uint16) (int, bool) {
	best := -1
	for top := 12; top >= 4; top-- {
		window := straightWindow << uint(top-4)
		if presence&window == window {
			best = top
			break
		}
	}
	if best >= 0 {
		return best, true
	}
	if presence&wheelMask == wheelMask {
		return 3, true // Five-high wheel
	}
	return 0, false
}

// RankCounts tallies how many of the given rank indices (0..12) occur, and
// returns the 13-bit presence bitmask (bit set iff count > 0).
func RankCounts(rankIdx []int) (counts [13]int, presence uint16) {
	for _, r := range rankIdx {
		counts[r]++
		presence |= 1 << uint(r)
	}
	return counts, presence
}

type rankGroup struct{ rank, count int }

// ClassifyNonFlush scores the best 5-card hand obtainable from a rank
// histogram (over 5, 6 or 7 cards, suits ignored). It is the shared
// "classify by rank histogram" step every non-flush evaluation path uses.
func ClassifyNonFlush(counts [13]int, presence uint16) int32 {
	var groups []rankGroup
	for r := 12; r >= 0; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{r, counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	straightTop, hasStraight := HighestStraightTop(presence)

	switch {
	case groups[0].count == 4:
		kicker := 0
		for _, g := range groups[1:] {
			if g.rank > kicker {
				kicker = g.rank
			}
		}
		return PackScore(FourOfAKind, groups[0].rank, kicker)
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2:
		return PackScore(FullHouse, groups[0].rank, groups[1].rank)
	case hasStraight:
		return PackScore(Straight, straightTop)
	case groups[0].count == 3:
		k := kickersFrom(groups[1:], 2)
		return PackScore(ThreeOfAKind, append([]int{groups[0].rank}, k...)...)
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		kicker := 0
		for _, g := range groups[2:] {
			if g.rank > kicker {
				kicker = g.rank
			}
		}
		return PackScore(TwoPair, groups[0].rank, groups[1].rank, kicker)
	case groups[0].count == 2:
		k := kickersFrom(groups[1:], 3)
		return PackScore(OnePair, append([]int{groups[0].rank}, k...)...)
	default:
		k := kickersFrom(groups, 5)
		return PackScore(HighCard, k...)
	}
}

func kickersFrom(groups []rankGroup, n int) []int {
	out := make([]int, 0, n)
	for _, g := range groups {
		if len(out) == n {
			break
		}
		out = append(out, g.rank)
	}
	return out
}

// ClassifyFlush scores the best 5-card hand from a set of same-suit rank
// indices (at least 5). Straight-flush detection runs over the *entire*
// suited set before any top-5 truncation, so a straight flush hiding among
// six or seven suited cards is never missed.
func ClassifyFlush(rankIdx []int) int32 {
	var presence uint16
	for _, r := range rankIdx {
		presence |= 1 << uint(r)
	}
	if top, ok := HighestStraightTop(presence); ok {
		if top == 12 {
			return PackScore(RoyalFlush)
		}
		return PackScore(StraightFlush, top)
	}
	sorted := append([]int(nil), rankIdx...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	return PackScore(Flush, sorted...)
}

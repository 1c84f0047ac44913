package handrank

import "testing"

func presenceOf(ranks ...int) uint16 {
	var p uint16
	for _, r := range ranks {
		p |= 1 << uint(r)
	}
	return p
}

func TestHighestStraightTopBroadway(t *testing.T) {
	// T,J,Q,K,A -> rank indices 8,9,10,11,12
	top, ok := HighestStraightTop(presenceOf(8, 9, 10, 11, 12))
	if !ok || top != 12 {
		t.Errorf("got (%d, %v), want (12, true)", top, ok)
	}
}

func TestHighestStraightTopWheel(t *testing.T) {
	// A,2,3,4,5 -> rank indices 12,0,1,2,3; top reports as Five (index 3)
	top, ok := HighestStraightTop(presenceOf(12, 0, 1, 2, 3))
	if !ok || top != 3 {
		t.Errorf("got (%d, %v), want (3, true)", top, ok)
	}
}

func TestHighestStraightTopPrefersHigherOverWheel(t *testing.T) {
	// both a wheel and 4-5-6-7-8 present; the higher straight should win.
	top, ok := HighestStraightTop(presenceOf(12, 0, 1, 2, 3, 4, 5, 6))
	if !ok || top != 6 {
		t.Errorf("got (%d, %v), want (6, true)", top, ok)
	}
}

func TestHighestStraightTopNone(t *testing.T) {
	_, ok := HighestStraightTop(presenceOf(0, 1, 2, 5, 9))
	if ok {
		t.Errorf("expected no straight, got one")
	}
}

func TestClassifyNonFlushFourOfAKindBeatsFullHouse(t *testing.T) {
	quadsCounts, quadsPresence := RankCounts([]int{5, 5, 5, 5, 1})
	quads := ClassifyNonFlush(quadsCounts, quadsPresence)

	fhCounts, fhPresence := RankCounts([]int{6, 6, 6, 2, 2})
	fh := ClassifyNonFlush(fhCounts, fhPresence)

	if TypeOf(quads) != FourOfAKind {
		t.Fatalf("expected FourOfAKind, got %v", TypeOf(quads))
	}
	if TypeOf(fh) != FullHouse {
		t.Fatalf("expected FullHouse, got %v", TypeOf(fh))
	}
	if quads <= fh {
		t.Errorf("quads score %d did not outrank full house score %d", quads, fh)
	}
}

func TestClassifyNonFlushStraightBeatsThreeOfAKind(t *testing.T) {
	straightCounts, straightPresence := RankCounts([]int{0, 1, 2, 3, 4})
	straight := ClassifyNonFlush(straightCounts, straightPresence)
	if TypeOf(straight) != Straight {
		t.Fatalf("expected Straight, got %v", TypeOf(straight))
	}

	tripsCounts, tripsPresence := RankCounts([]int{8, 8, 8, 3, 1})
	trips := ClassifyNonFlush(tripsCounts, tripsPresence)
	if TypeOf(trips) != ThreeOfAKind {
		t.Fatalf("expected ThreeOfAKind, got %v", TypeOf(trips))
	}

	if straight <= trips {
		t.Errorf("straight score %d did not outrank trips score %d", straight, trips)
	}
}

func TestClassifyNonFlushTwoPairPicksBestKicker(t *testing.T) {
	// 9,9,4,4 with a 2 and 7 kicker available: best kicker is 7.
	counts, presence := RankCounts([]int{9, 9, 4, 4, 7, 2})
	score := ClassifyNonFlush(counts, presence)
	if TypeOf(score) != TwoPair {
		t.Fatalf("expected TwoPair, got %v", TypeOf(score))
	}
	withLowKicker := PackScore(TwoPair, 9, 4, 2)
	withHighKicker := PackScore(TwoPair, 9, 4, 7)
	if score != withHighKicker {
		t.Errorf("got %d, want %d (best kicker 7)", score, withHighKicker)
	}
	if withHighKicker <= withLowKicker {
		t.Errorf("sanity: higher kicker must outscore lower kicker")
	}
}

func TestClassifyFlushRoyal(t *testing.T) {
	score := ClassifyFlush([]int{8, 9, 10, 11, 12})
	if TypeOf(score) != RoyalFlush {
		t.Errorf("expected RoyalFlush, got %v", TypeOf(score))
	}
}

func TestClassifyFlushStraightFlushNotMissedAmongSevenSuited(t *testing.T) {
	// seven suited ranks containing a 5-6-7-8-9 straight flush plus two high
	// non-connecting cards; straight detection must run before any top-5 cut.
	score := ClassifyFlush([]int{3, 4, 5, 6, 7, 11, 12})
	if TypeOf(score) != StraightFlush {
		t.Errorf("expected StraightFlush, got %v", TypeOf(score))
	}
}

func TestClassifyFlushPlainFlushTakesTopFive(t *testing.T) {
	score := ClassifyFlush([]int{0, 2, 5, 8, 10, 11, 12})
	if TypeOf(score) != Flush {
		t.Fatalf("expected Flush, got %v", TypeOf(score))
	}
	want := PackScore(Flush, 12, 11, 10, 8, 5)
	if score != want {
		t.Errorf("got %d, want %d", score, want)
	}
}

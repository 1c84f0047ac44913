package eval

import (
	"math/rand/v2"
	"testing"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/handrank"
)

func mustParse(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return c
}

func hand7(t *testing.T, s ...string) [7]cards.Card {
	t.Helper()
	if len(s) != 7 {
		t.Fatalf("need 7 cards, got %d", len(s))
	}
	var h [7]cards.Card
	for i, c := range s {
		h[i] = mustParse(t, c)
	}
	return h
}

// fixtures mirror spec.md §8's testable-property table.
var fixtures = []struct {
	name  string
	cards []string
	typ   handrank.HandType
}{
	{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts", "2d", "3c"}, handrank.RoyalFlush},
	{"wheel straight flush", []string{"5h", "4h", "3h", "2h", "Ah", "7c", "Tc"}, handrank.StraightFlush},
	{"quads", []string{"Ah", "Ac", "As", "Ad", "2h", "3c", "4d"}, handrank.FourOfAKind},
	{"full house", []string{"Ah", "Ac", "As", "2d", "2h", "3c", "4d"}, handrank.FullHouse},
	{"flush", []string{"Ah", "2h", "5h", "7h", "9h", "Kd", "Qc"}, handrank.Flush},
	{"straight", []string{"9s", "8c", "7d", "6h", "5s", "2d", "2c"}, handrank.Straight},
	{"high card", []string{"Ah", "3c", "5d", "7h", "9c", "Jd", "Ks"}, handrank.HighCard},
}

func evaluators(t *testing.T) map[string]Evaluator {
	t.Helper()
	ph, err := LoadPerfectHash("")
	if err != nil {
		t.Fatalf("build perfect hash: %v", err)
	}
	return map[string]Evaluator{
		"naive":        NaiveEvaluator{},
		"cactus_kev":   CactusKevEvaluator{},
		"perfect_hash": ph,
		"simd":         SIMDEvaluator{},
	}
}

func TestFixturesScoreBand(t *testing.T) {
	for name, ev := range evaluators(t) {
		for _, f := range fixtures {
			h := hand7(t, f.cards...)
			score := ev.Score7(h)
			if got := handrank.TypeOf(score); got != f.typ {
				t.Errorf("%s/%s: got type %v, want %v (score %d)", name, f.name, got, f.typ, score)
			}
		}
	}
}

func TestRoyalFlushThreshold(t *testing.T) {
	h := hand7(t, "As", "Ks", "Qs", "Js", "Ts", "2d", "3c")
	for name, ev := range evaluators(t) {
		if s := ev.Score7(h); s < 9_000_000 {
			t.Errorf("%s: royal flush score %d below 9,000,000", name, s)
		}
	}
}

func TestWheelHighIsFive(t *testing.T) {
	h := hand7(t, "5h", "4h", "3h", "2h", "Ah", "7c", "Tc")
	for name, ev := range evaluators(t) {
		s := ev.Score7(h)
		// kicker packed as a single base-15 digit; wheel high card is rank
		// index 3 (Five), never 12 (Ace).
		if kicker := s - int32(handrank.StraightFlush)*1_000_000; kicker != 3 {
			t.Errorf("%s: wheel straight flush kicker = %d, want 3 (Five)", name, kicker)
		}
	}
}

// TestEvaluatorAgreement checks all evaluator pairs agree on random 7-card
// hands (spec.md §8, property 1).
func TestEvaluatorAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	evs := evaluators(t)
	names := make([]string, 0, len(evs))
	for n := range evs {
		names = append(names, n)
	}
	for trial := 0; trial < 1000; trial++ {
		hand := randomHand(rng)
		scores := make(map[string]int32, len(evs))
		for n, ev := range evs {
			scores[n] = ev.Score7(hand)
		}
		for _, n := range names[1:] {
			if scores[n] != scores[names[0]] {
				t.Fatalf("trial %d: %s scored %d, %s scored %d, hand=%v",
					trial, names[0], scores[names[0]], n, scores[n], hand)
			}
		}
	}
}

func randomHand(rng *rand.Rand) [7]cards.Card {
	idx := rng.Perm(52)[:7]
	var h [7]cards.Card
	for i, c := range idx {
		h[i] = cards.FromIndex(c)
	}
	return h
}

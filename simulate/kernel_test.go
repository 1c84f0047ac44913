package simulate

import (
	"math/rand/v2"
	"testing"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/eval"
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

func TestRunTrialAAvsRandomWinsMost(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	ev := eval.CactusKevEvaluator{}
	hole := [2]cards.Card{mustParse(t, "As"), mustParse(t, "Ah")}

	wins, ties, losses := 0, 0, 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		res := RunTrial(rng, hole, nil, 1, ev)
		switch res.Outcome {
		case Win:
			wins++
		case Tie:
			ties++
		case Loss:
			losses++
		}
	}
	if wins < trials*7/10 {
		t.Errorf("pocket aces heads-up won only %d/%d trials, expected a large majority", wins, trials)
	}
}

func TestRunTrialDuplicateHoleCardIsNeutral(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	ev := eval.CactusKevEvaluator{}
	hole := [2]cards.Card{mustParse(t, "As"), mustParse(t, "As")}
	res := RunTrial(rng, hole, nil, 1, ev)
	if res != neutralResult {
		t.Errorf("expected neutral result for duplicate hole cards, got %+v", res)
	}
}

func TestRunTrialKnownBoardDuplicateIsNeutral(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	ev := eval.CactusKevEvaluator{}
	hole := [2]cards.Card{mustParse(t, "As"), mustParse(t, "Kd")}
	board := []cards.Card{mustParse(t, "As"), mustParse(t, "2c"), mustParse(t, "3d")}
	res := RunTrial(rng, hole, board, 1, ev)
	if res != neutralResult {
		t.Errorf("expected neutral result for a board card duplicating a hole card, got %+v", res)
	}
}

func TestRunTrialFullBoardNoOpponentsIsWin(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	ev := eval.CactusKevEvaluator{}
	hole := [2]cards.Card{mustParse(t, "As"), mustParse(t, "Ah")}
	board := []cards.Card{
		mustParse(t, "2c"), mustParse(t, "5d"), mustParse(t, "9h"),
		mustParse(t, "Jc"), mustParse(t, "Td"),
	}
	res := RunTrial(rng, hole, board, 0, ev)
	if res.Outcome != Win {
		t.Errorf("expected Win with zero opponents, got %v", res.Outcome)
	}
	if res.OurType != handrank.OnePair {
		t.Errorf("expected pair of aces, got %v", res.OurType)
	}
}

func TestRunTrialOpponentClassIsPopulated(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	ev := eval.CactusKevEvaluator{}
	hole := [2]cards.Card{mustParse(t, "2c"), mustParse(t, "7d")}
	res := RunTrial(rng, hole, nil, 1, ev)
	if res.OppClass == handrank.Unknown {
		t.Errorf("expected a populated opponent class, got %q", res.OppClass)
	}
}

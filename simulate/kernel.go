// Package simulate implements the one-trial Monte Carlo kernel (spec.md
// §4.3): complete the board, deal opponents, score everyone, and report
// who won.
package simulate

import (
	"math/rand/v2"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/eval"
	"github.com/domino14/pokerequity/handrank"
)

// Outcome is the result of one trial from our hand's perspective.
type Outcome int

const (
	Loss Outcome = -1
	Tie  Outcome = 0
	Win  Outcome = 1
)

// Result is a single trial's outcome plus the classification detail the
// range-equity driver needs to fill in EquityResult's method matrices.
type Result struct {
	Outcome    Outcome
	OurType    handrank.HandType
	BestOppTyp handrank.HandType
	OppClass   string // canonical class of the opponent holding the best hand
}

// neutralResult is returned when a trial cannot be completed (deck
// underflow, duplicate cards): spec.md §7 classifies this as a Trial
// error, and the driver simply continues with a neutral tally.
var neutralResult = Result{Outcome: Tie, OurType: handrank.HighCard, OppClass: handrank.Unknown}

// RunTrial plays one Monte Carlo trial: complete the board to five cards,
// deal numOpponents disjoint two-card hands, score everyone with ev, and
// report the outcome (spec.md §4.3). rng is caller-owned so callers can
// give each worker (and, optionally, each replay of a seeded job) its own
// stream.
func RunTrial(rng *rand.Rand, hole [2]cards.Card, knownBoard []cards.Card, numOpponents int, ev eval.Evaluator) Result {
	deck := cards.New(rng)
	deck.Remove(hole[0])
	deck.Remove(hole[1])
	if hole[0] == hole[1] {
		return neutralResult
	}
	for _, c := range knownBoard {
		if !deck.Contains(c) {
			// Duplicate: either matches a hole card or an earlier board
			// card. Either way this trial cannot be scored meaningfully.
			return neutralResult
		}
		deck.Remove(c)
	}

	needed := 5 - len(knownBoard)
	if needed < 0 {
		return neutralResult
	}
	drawnBoard, err := deck.Sample(needed)
	if err != nil {
		return neutralResult
	}
	board := make([]cards.Card, 0, 5)
	board = append(board, knownBoard...)
	board = append(board, drawnBoard...)

	oppHoles := make([][2]cards.Card, numOpponents)
	for i := 0; i < numOpponents; i++ {
		pair, err := deck.Sample(2)
		if err != nil {
			return neutralResult
		}
		oppHoles[i] = [2]cards.Card{pair[0], pair[1]}
	}

	ourScore := ev.Score7(sevenCards(hole, board))
	ourType := handrank.TypeOf(ourScore)

	maxOppScore := int32(-1)
	maxOppIdx := -1
	for i, oh := range oppHoles {
		s := ev.Score7(sevenCards(oh, board))
		if s > maxOppScore {
			maxOppScore = s
			maxOppIdx = i
		}
	}

	var outcome Outcome
	switch {
	case numOpponents == 0:
		outcome = Win
	case ourScore > maxOppScore:
		outcome = Win
	case ourScore == maxOppScore:
		outcome = Tie
	default:
		outcome = Loss
	}

	bestOppType := handrank.HighCard
	oppClass := handrank.Unknown
	if maxOppIdx >= 0 {
		bestOppType = handrank.TypeOf(maxOppScore)
		oppClass = handrank.ClassOf(oppHoles[maxOppIdx])
	}

	return Result{
		Outcome:    outcome,
		OurType:    ourType,
		BestOppTyp: bestOppType,
		OppClass:   oppClass,
	}
}

func sevenCards(hole [2]cards.Card, board []cards.Card) [7]cards.Card {
	var out [7]cards.Card
	out[0], out[1] = hole[0], hole[1]
	copy(out[2:], board)
	return out
}

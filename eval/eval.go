// Package eval implements the five interchangeable 7-card hand evaluators
// named in the specification. Every evaluator maps seven cards to a score
// on the same packed scale (handrank.PackScore); callers select one kind
// at job start and never dispatch dynamically on the hot path (spec.md §9).
package eval

import (
	"fmt"

	"github.com/domino14/pokerequity/cards"
)

// Kind identifies one of the five evaluator variants.
type Kind int

const (
	Naive Kind = iota
	CactusKevKind
	PerfectHashKind
	TwoPlusTwoKind
	SIMDKind
)

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case CactusKevKind:
		return "cactus_kev"
	case PerfectHashKind:
		return "perfect_hash"
	case TwoPlusTwoKind:
		return "two_plus_two"
	case SIMDKind:
		return "simd"
	default:
		return "unknown"
	}
}

// ParseKind maps the algorithm names used in JobRequest (spec.md §6) to a
// Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "naive", "cpp_naive":
		return Naive, nil
	case "cactus_kev":
		return CactusKevKind, nil
	case "perfect_hash":
		return PerfectHashKind, nil
	case "two_plus_two":
		return TwoPlusTwoKind, nil
	case "simd":
		return SIMDKind, nil
	default:
		return 0, fmt.Errorf("eval: unknown algorithm %q", name)
	}
}

// Evaluator scores one 7-card hand.
type Evaluator interface {
	Score7(hand [7]cards.Card) int32
}

// HandBatch is a struct-of-arrays layout for the SIMD-capable evaluator's
// batched entry point. K hands of 7 cards each are stored column-major:
// ranks[c][k] and suits[c][k] are the rank/suit of card c of hand k.
type HandBatch struct {
	Ranks [7][BatchWidth]uint8
	Suits [7][BatchWidth]uint8
	N     int // number of hands actually populated (<= BatchWidth)
}

// BatchWidth is K: the number of hands a single ScoreBatch call scores.
// This is the AVX2 lane width (8 32-bit lanes); on non-AVX targets the
// batch entry point still accepts BatchWidth hands but scores them with a
// scalar loop.
const BatchWidth = 8

// BatchEvaluator is the optional fast path exposed by the SIMD-capable
// evaluator. Its contract is bit-for-bit agreement with Score7 on the same
// inputs (spec.md §9).
type BatchEvaluator interface {
	Evaluator
	ScoreBatch(batch *HandBatch, out *[BatchWidth]int32)
}

// New constructs the evaluator for the given kind. tableDir is only
// consulted by PerfectHashKind and TwoPlusTwoKind, which load offline
// generated tables from it (see package tables).
func New(kind Kind, tableDir string) (Evaluator, error) {
	switch kind {
	case Naive:
		return NaiveEvaluator{}, nil
	case CactusKevKind:
		return CactusKevEvaluator{}, nil
	case PerfectHashKind:
		return LoadPerfectHash(tableDir)
	case TwoPlusTwoKind:
		return LoadTwoPlusTwo(tableDir)
	case SIMDKind:
		return SIMDEvaluator{}, nil
	default:
		return nil, fmt.Errorf("eval: unknown kind %v", kind)
	}
}

// choose7of5 lists the 21 index combinations of 5 out of 7, computed once
// at init time and shared by every evaluator that enumerates subsets.
var choose7of5 = func() [][5]int {
	var combos [][5]int
	var idx [5]int
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == 5 {
			combos = append(combos, idx)
			return
		}
		for i := start; i < 7; i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return combos
}()

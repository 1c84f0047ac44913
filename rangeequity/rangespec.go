// Package rangeequity drives a full range-equity job: it loops over the
// named hands in a range, runs the worker scheduler for each, aggregates
// per-hand overall statistics, and reports progress (spec.md §4.5).
package rangeequity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/handrank"
)

// HandSpec names one starting hand's two concrete hole cards.
type HandSpec struct {
	Name string
	Hole [2]cards.Card
}

// ParseRangeSpec accepts either spec.md's required explicit form (a name
// to a concrete two-card hand) or the shorthand range strings the
// original engine also took (SPEC_FULL.md §6): "AKs+" (this hand and
// every one ranked at or above it in Percentile among hands of the same
// shape), "22-77" (an inclusive pocket-pair run), or a bare percentage
// cutoff like "top 15%".
//
// A shorthand class expands to one concrete HandSpec per suit
// combination consistent with its shape (6 for a pair, 4 for suited, 12
// for offsuit), each carrying the class name so per-class statistics
// still aggregate correctly.
func ParseRangeSpec(explicit map[string][2]cards.Card, shorthand string) ([]HandSpec, error) {
	var hands []HandSpec
	for name, hole := range explicit {
		hands = append(hands, HandSpec{Name: name, Hole: hole})
	}
	if shorthand == "" {
		sort.Slice(hands, func(i, j int) bool { return hands[i].Name < hands[j].Name })
		return hands, nil
	}

	classes, err := expandShorthand(shorthand)
	if err != nil {
		return nil, err
	}
	for _, class := range classes {
		combos, err := combosForClass(class)
		if err != nil {
			return nil, err
		}
		hands = append(hands, combos...)
	}
	sort.Slice(hands, func(i, j int) bool { return hands[i].Name < hands[j].Name })
	return hands, nil
}

func expandShorthand(spec string) ([]string, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "top "):
		pctStr := strings.TrimSuffix(strings.TrimPrefix(spec, "top "), "%")
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil {
			return nil, fmt.Errorf("rangeequity: invalid percentage cutoff %q: %w", spec, err)
		}
		return classesAbovePercentile(1 - pct/100), nil

	case strings.HasSuffix(spec, "+"):
		base := strings.TrimSuffix(spec, "+")
		pct, ok := handrank.Percentile[base]
		if !ok {
			return nil, fmt.Errorf("rangeequity: unknown hand class %q", base)
		}
		return classesAbovePercentile(pct), nil

	case strings.Contains(spec, "-"):
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("rangeequity: malformed range %q", spec)
		}
		lo, hi := parts[0], parts[1]
		loPct, ok1 := handrank.Percentile[lo]
		hiPct, ok2 := handrank.Percentile[hi]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("rangeequity: unknown hand class in range %q", spec)
		}
		if loPct > hiPct {
			loPct, hiPct = hiPct, loPct
		}
		var out []string
		for _, c := range handrank.AllClasses() {
			p, ok := handrank.Percentile[c]
			if ok && p >= loPct && p <= hiPct {
				out = append(out, c)
			}
		}
		return out, nil

	default:
		if _, ok := handrank.Percentile[spec]; !ok {
			return nil, fmt.Errorf("rangeequity: unknown hand class %q", spec)
		}
		return []string{spec}, nil
	}
}

func classesAbovePercentile(cutoff float64) []string {
	var out []string
	for _, c := range handrank.AllClasses() {
		if p, ok := handrank.Percentile[c]; ok && p >= cutoff {
			out = append(out, c)
		}
	}
	return out
}

var rankOf = map[byte]cards.Rank{
	'2': cards.Two, '3': cards.Three, '4': cards.Four, '5': cards.Five, '6': cards.Six,
	'7': cards.Seven, '8': cards.Eight, '9': cards.Nine, 'T': cards.Ten, 'J': cards.Jack,
	'Q': cards.Queen, 'K': cards.King, 'A': cards.Ace,
}

// combosForClass enumerates the concrete hole-card combinations for one
// canonical class name, each tagged with that class's name.
func combosForClass(class string) ([]HandSpec, error) {
	if len(class) < 2 || len(class) > 3 {
		return nil, fmt.Errorf("rangeequity: malformed hand class %q", class)
	}
	hi, ok1 := rankOf[class[0]]
	lo, ok2 := rankOf[class[1]]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("rangeequity: malformed hand class %q", class)
	}

	var combos []HandSpec
	if len(class) == 2 {
		for s1 := cards.Suit(0); s1 < 4; s1++ {
			for s2 := s1 + 1; s2 < 4; s2++ {
				combos = append(combos, HandSpec{
					Name: class,
					Hole: [2]cards.Card{{Rank: hi, Suit: s1}, {Rank: hi, Suit: s2}},
				})
			}
		}
		return combos, nil
	}

	suited := class[2] == 's'
	for s1 := cards.Suit(0); s1 < 4; s1++ {
		for s2 := cards.Suit(0); s2 < 4; s2++ {
			if suited != (s1 == s2) {
				continue
			}
			combos = append(combos, HandSpec{
				Name: class,
				Hole: [2]cards.Card{{Rank: hi, Suit: s1}, {Rank: lo, Suit: s2}},
			})
		}
	}
	return combos, nil
}

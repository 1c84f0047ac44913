package handrank

import "github.com/domino14/pokerequity/cards"

// Unknown is the canonical label for a degenerate or unresolved starting
// hand (spec.md §3, HandClass).
const Unknown = "??"

var rankChar = [...]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

func charOf(r cards.Rank) byte {
	if r < cards.Two || r > cards.Ace {
		return '?'
	}
	return rankChar[r-cards.Two]
}

// ClassOf returns the canonical two-or-three character starting-hand class
// for a pair of hole cards: "XX" for pocket pairs, "XYs" for suited,
// "XYo" for offsuit, always with the higher rank first. Any malformed
// input (not exactly two structurally-valid distinct cards) yields Unknown.
func ClassOf(hole [2]cards.Card) string {
	a, b := hole[0], hole[1]
	if a.Rank < cards.Two || a.Rank > cards.Ace || b.Rank < cards.Two || b.Rank > cards.Ace {
		return Unknown
	}
	if a == b {
		return Unknown
	}
	if a.Rank < b.Rank {
		a, b = b, a
	}
	if a.Rank == b.Rank {
		return string([]byte{charOf(a.Rank), charOf(b.Rank)})
	}
	suited := byte('o')
	if a.Suit == b.Suit {
		suited = 's'
	}
	return string([]byte{charOf(a.Rank), charOf(b.Rank), suited})
}

// AllClasses returns the 169 canonical starting-hand class names, walking
// the higher rank from Ace down and, for each, the lower rank from that
// rank down: the pocket pair first, then each suited class followed by its
// offsuit class. Every name it returns is a key of Percentile.
func AllClasses() []string {
	classes := make([]string, 0, 169)
	ranks := []cards.Rank{cards.Ace, cards.King, cards.Queen, cards.Jack, cards.Ten,
		cards.Nine, cards.Eight, cards.Seven, cards.Six, cards.Five, cards.Four, cards.Three, cards.Two}
	for i, hi := range ranks {
		for j, lo := range ranks {
			if i == j {
				classes = append(classes, string([]byte{charOf(hi), charOf(lo)}))
			} else if i < j {
				classes = append(classes, string([]byte{charOf(hi), charOf(lo), 's'}))
				classes = append(classes, string([]byte{charOf(hi), charOf(lo), 'o'}))
			}
		}
	}
	return classes
}

package cards

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("cards: deck is empty")

// ErrShortDeck is returned by Sample when fewer cards remain than requested.
var ErrShortDeck = errors.New("cards: not enough cards left to sample")

// Deck is an order-independent set of the 52-card universe. It supports
// O(1) removal by value and unbiased without-replacement sampling. Deck is
// not safe for concurrent use; callers give each worker its own Deck and
// *rand.Rand so sampling never contends.
type Deck struct {
	present [52]bool
	live    []int // dense index of cards currently in the deck
	posOf   [52]int
	rng     *rand.Rand
}

// New returns a full 52-card deck seeded from the given source. Pass a
// per-worker rand.Rand so concurrent simulation workers never share RNG
// state.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset restores the deck to all 52 cards.
func (d *Deck) Reset() {
	d.live = d.live[:0]
	for i := 0; i < 52; i++ {
		d.present[i] = true
		d.live = append(d.live, i)
		d.posOf[i] = i
	}
}

// Remove takes a specific card out of the deck. It is a no-op if the card
// is not present (already removed).
func (d *Deck) Remove(c Card) {
	i := c.Index()
	if !d.present[i] {
		return
	}
	d.present[i] = false
	pos := d.posOf[i]
	last := len(d.live) - 1
	d.live[pos] = d.live[last]
	d.posOf[d.live[pos]] = pos
	d.live = d.live[:last]
}

// Contains reports whether c is still in the deck.
func (d *Deck) Contains(c Card) bool {
	return d.present[c.Index()]
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.live)
}

// Draw removes and returns one uniformly random card from the deck.
func (d *Deck) Draw() (Card, error) {
	if len(d.live) == 0 {
		return Card{}, ErrEmptyDeck
	}
	pos := d.rng.IntN(len(d.live))
	idx := d.live[pos]
	d.Remove(FromIndex(idx))
	return FromIndex(idx), nil
}

// Sample removes and returns n distinct uniformly random cards without
// replacement. It fails atomically: on ErrShortDeck no cards are removed.
func (d *Deck) Sample(n int) ([]Card, error) {
	if n > len(d.live) {
		return nil, ErrShortDeck
	}
	out := make([]Card, n)
	for i := 0; i < n; i++ {
		// Fisher-Yates draw against the tail of the live slice, using the
		// same removal bookkeeping as Draw so the deck stays consistent.
		pos := d.rng.IntN(len(d.live))
		idx := d.live[pos]
		out[i] = FromIndex(idx)
		d.Remove(out[i])
	}
	return out, nil
}

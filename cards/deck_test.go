package cards

import (
	"math/rand/v2"
	"testing"
)

func TestNewDeckHasFiftyTwoCards(t *testing.T) {
	d := New(rand.New(rand.NewPCG(1, 1)))
	if d.Size() != 52 {
		t.Fatalf("got %d cards, want 52", d.Size())
	}
}

func TestRemoveThenContains(t *testing.T) {
	d := New(rand.New(rand.NewPCG(1, 1)))
	c := Card{Rank: Ace, Suit: Spades}
	d.Remove(c)
	if d.Contains(c) {
		t.Errorf("card still present after Remove")
	}
	if d.Size() != 51 {
		t.Errorf("got size %d, want 51", d.Size())
	}
	// removing again is a no-op
	d.Remove(c)
	if d.Size() != 51 {
		t.Errorf("double Remove changed size to %d, want 51", d.Size())
	}
}

func TestDrawExhaustsDeck(t *testing.T) {
	d := New(rand.New(rand.NewPCG(2, 2)))
	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("Draw() #%d: %v", i, err)
		}
		if seen[c] {
			t.Fatalf("Draw() returned duplicate card %v", c)
		}
		seen[c] = true
	}
	if _, err := d.Draw(); err != ErrEmptyDeck {
		t.Errorf("Draw() on empty deck = %v, want ErrEmptyDeck", err)
	}
}

func TestSampleIsAtomicOnShortDeck(t *testing.T) {
	d := New(rand.New(rand.NewPCG(3, 3)))
	if _, err := d.Sample(53); err != ErrShortDeck {
		t.Fatalf("Sample(53) = %v, want ErrShortDeck", err)
	}
	if d.Size() != 52 {
		t.Errorf("failed Sample removed cards: size is %d, want 52", d.Size())
	}
}

func TestSampleReturnsDistinctCards(t *testing.T) {
	d := New(rand.New(rand.NewPCG(4, 4)))
	cards, err := d.Sample(5)
	if err != nil {
		t.Fatalf("Sample(5): %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("got %d cards, want 5", len(cards))
	}
	seen := map[Card]bool{}
	for _, c := range cards {
		if seen[c] {
			t.Errorf("Sample returned duplicate card %v", c)
		}
		seen[c] = true
		if d.Contains(c) {
			t.Errorf("sampled card %v still reported present in deck", c)
		}
	}
	if d.Size() != 47 {
		t.Errorf("got size %d, want 47", d.Size())
	}
}

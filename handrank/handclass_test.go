package handrank

import (
	"testing"

	"github.com/domino14/pokerequity/cards"
)

func mustCard(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return c
}

func TestClassOfPocketPair(t *testing.T) {
	hole := [2]cards.Card{mustCard(t, "Ah"), mustCard(t, "As")}
	if got := ClassOf(hole); got != "AA" {
		t.Errorf("ClassOf(AA) = %q, want AA", got)
	}
}

func TestClassOfSuitedHigherRankFirst(t *testing.T) {
	hole := [2]cards.Card{mustCard(t, "5s"), mustCard(t, "As")}
	if got := ClassOf(hole); got != "A5s" {
		t.Errorf("ClassOf(5s,As) = %q, want A5s", got)
	}
}

func TestClassOfOffsuit(t *testing.T) {
	hole := [2]cards.Card{mustCard(t, "Kd"), mustCard(t, "2c")}
	if got := ClassOf(hole); got != "K2o" {
		t.Errorf("ClassOf(Kd,2c) = %q, want K2o", got)
	}
}

func TestClassOfDuplicateCardIsUnknown(t *testing.T) {
	hole := [2]cards.Card{mustCard(t, "As"), mustCard(t, "As")}
	if got := ClassOf(hole); got != Unknown {
		t.Errorf("ClassOf(duplicate) = %q, want %q", got, Unknown)
	}
}

func TestAllClassesCountAndUnique(t *testing.T) {
	classes := AllClasses()
	if len(classes) != 169 {
		t.Fatalf("got %d classes, want 169", len(classes))
	}
	seen := map[string]bool{}
	for _, c := range classes {
		if seen[c] {
			t.Errorf("duplicate class %q", c)
		}
		seen[c] = true
	}
}

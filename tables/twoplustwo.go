package tables

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/domino14/pokerequity/cards"
	"github.com/domino14/pokerequity/handrank"
)

// BlockWidth is the width of one state's slot range in HR: offset 0 holds
// the terminal evaluation (valid only once 7 cards have been dealt),
// offsets 1..52 hold the child state's block index for each of the 52
// possible next real cards (spec.md §4.2).
const BlockWidth = 53

// RootPointerSlot is where the walk's initial pointer lives; HR[RootPointerSlot]
// holds the block index of the empty (zero-card) state, per spec.md §4.1
// ("p = HR[53]").
const RootPointerSlot = 53

// twoPlusTwoState is a canonical state: cards sorted by (rank, suit) with
// suits relabeled in order of first appearance. Two real card sequences
// that are suit-isomorphic canonicalize to the same state and therefore
// share one ID, which is how the 2+2 table keeps its footprint down
// despite covering every 7-card deal (spec.md §4.2).
type twoPlusTwoState []cards.Card

func canonicalize(cs []cards.Card) twoPlusTwoState {
	sorted := append([]cards.Card(nil), cs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].Suit < sorted[j].Suit
	})
	relabel := map[cards.Suit]cards.Suit{}
	var next cards.Suit
	out := make(twoPlusTwoState, len(sorted))
	for i, c := range sorted {
		s, ok := relabel[c.Suit]
		if !ok {
			s = next
			relabel[c.Suit] = s
			next++
		}
		out[i] = cards.Card{Rank: c.Rank, Suit: s}
	}
	return out
}

func (s twoPlusTwoState) key() string {
	b := make([]byte, len(s)*2)
	for i, c := range s {
		b[i*2] = byte(c.Rank)
		b[i*2+1] = byte(c.Suit)
	}
	return string(b)
}

func (s twoPlusTwoState) contains(c cards.Card) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

func cardIndex1to52(c cards.Card) int {
	return int(c.Rank-cards.Two)*4 + int(c.Suit) + 1
}

// stateRegistry deduplicates canonical states by key, assigning each a
// dense int32 ID in first-seen order, and keeps the keys sorted for
// binary-search insertion as spec.md §4.2 describes.
type stateRegistry struct {
	keys  []string
	reps  []twoPlusTwoState
	index map[string]int32
}

func newStateRegistry() *stateRegistry {
	return &stateRegistry{index: map[string]int32{}}
}

func (r *stateRegistry) idFor(s twoPlusTwoState) int32 {
	k := s.key()
	if id, ok := r.index[k]; ok {
		return id
	}
	pos := sort.SearchStrings(r.keys, k)
	r.keys = append(r.keys, "")
	copy(r.keys[pos+1:], r.keys[pos:])
	r.keys[pos] = k

	id := int32(len(r.reps))
	r.reps = append(r.reps, s)
	r.index[k] = id
	return id
}

// BuildTwoPlusTwo runs the offline generator described in spec.md §4.2
// over the full 52-card deck. The table this produces is large by
// construction (spec.md's ~130MB figure is for the full 52-card game;
// this is the intended shape of the generator, run once offline by
// cmd/gentables, not at request time).
func BuildTwoPlusTwo() []int32 {
	full := make([]cards.Card, 52)
	for i := range full {
		full[i] = cards.FromIndex(i)
	}
	return BuildTwoPlusTwoOver(full)
}

// BuildTwoPlusTwoOver runs the same generator over an arbitrary card
// universe instead of the full 52-card deck. A smaller universe produces
// a proportionally smaller table with the same HR layout and walk
// semantics, so tests can check the walk against NaiveEvaluator without
// paying the full deck's cost: it enumerates canonical states breadth-
// first from the empty hand out to seven cards, and for every (state,
// next real card) pair fills in either the child state's block index
// (fewer than 7 cards so far) or, at depth seven, the final
// classification (spec.md §4.1's Cactus-Kev-equivalent score, already on
// the unified scale). Card indices into HR are always absolute
// (cardIndex1to52), so a table built over a subset is a valid drop-in
// replacement for any evaluator query confined to that subset.
func BuildTwoPlusTwoOver(deck []cards.Card) []int32 {
	reg := newStateRegistry()
	root := canonicalize(nil)
	reg.idFor(root)

	frontier := []int32{0}
	for depth := 0; depth < 7; depth++ {
		var next []int32
		for _, id := range frontier {
			rep := reg.reps[id]
			for _, card := range deck {
				if rep.contains(card) {
					continue
				}
				child := append(append(twoPlusTwoState(nil), rep...), card)
				canon := canonicalize(child)
				childID := reg.idFor(canon)
				next = append(next, childID)
			}
		}
		frontier = dedupInt32(next)
	}

	hr := make([]int32, (len(reg.reps)+1)*BlockWidth)
	hr[RootPointerSlot] = 0 * BlockWidth

	for id, rep := range reg.reps {
		base := id * BlockWidth
		if len(rep) == 7 {
			hr[base] = scoreState(rep)
			continue
		}
		for _, card := range deck {
			if rep.contains(card) {
				continue
			}
			child := append(append(twoPlusTwoState(nil), rep...), card)
			canon := canonicalize(child)
			childID := reg.idFor(canon)
			hr[base+cardIndex1to52(card)] = int32(childID) * BlockWidth
		}
	}
	return hr
}

func scoreState(rep twoPlusTwoState) int32 {
	rankIdx := make([]int, len(rep))
	var suitCount [4]int
	var suitMask [4]uint16
	for i, c := range rep {
		r := int(c.Rank - cards.Two)
		rankIdx[i] = r
		suitCount[c.Suit]++
		suitMask[c.Suit] |= 1 << uint(r)
	}
	counts, presence := handrank.RankCounts(rankIdx)
	best := handrank.ClassifyNonFlush(counts, presence)
	for s := 0; s < 4; s++ {
		if suitCount[s] >= 5 {
			var ranks []int
			for r := 0; r < 13; r++ {
				if suitMask[s]&(1<<uint(r)) != 0 {
					ranks = append(ranks, r)
				}
			}
			if v := handrank.ClassifyFlush(ranks); v > best {
				best = v
			}
		}
	}
	return best
}

func dedupInt32(in []int32) []int32 {
	seen := map[int32]bool{}
	out := in[:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

const twoPlusTwoFile = "hr.bin"

// SaveTwoPlusTwo writes the HR array to dir/hr.bin as little-endian int32
// entries; LoadTwoPlusTwoRaw reads the whole file back for
// eval.TwoPlusTwoEvaluator.
func SaveTwoPlusTwo(dir string, hr []int32) error {
	buf := make([]byte, 4*len(hr))
	for i, v := range hr {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tables: create dir: %w", err)
	}
	return os.WriteFile(dir+"/"+twoPlusTwoFile, buf, 0o644)
}

func LoadTwoPlusTwoRaw(dir string) ([]int32, error) {
	raw, err := os.ReadFile(dir + "/" + twoPlusTwoFile)
	if err != nil {
		return nil, fmt.Errorf("tables: read hr table: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("tables: hr table has misaligned length %d", len(raw))
	}
	out := make([]int32, len(raw)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Package tables builds the offline lookup tables used by the
// combinatorial-index (perfect-hash) and 2+2 state-machine evaluators:
// the binomial hash table, the 8192-entry flush table, the 50388-entry
// rank-multiset table, and the 2+2 transition table. Generation is
// deterministic so regenerating from scratch reproduces byte-identical
// tables (spec.md §8.10).
package tables

import (
	"github.com/domino14/pokerequity/handrank"
)

// NumRanks is the 13 distinct card ranks the tables index over.
const NumRanks = 13

// FlushTableSize is 2^13: every possible 13-bit rank-presence mask.
const FlushTableSize = 1 << NumRanks

// RankTableSize is C(13+7-1,7) = 50388: the number of 7-multisets over 13
// ranks.
const RankTableSize = 50388

// HashTable is hash[i][j] = C(j+i, i+1), the binomial table used to turn a
// 7-multiset of ascending rank indices into its colexicographic index
// (spec.md §4.2).
type HashTable [7][NumRanks]int

// BuildHashTable computes hash[i][j] = C(j+i, i+1) by the standard
// binomial recurrence (Pascal's triangle), for i in [0,7), j in [0,13).
func BuildHashTable() HashTable {
	var h HashTable
	var pascal [21][21]int
	for n := 0; n <= 20; n++ {
		pascal[n][0] = 1
		for k := 1; k <= n; k++ {
			pascal[n][k] = pascal[n-1][k-1] + pascal[n-1][k]
		}
	}
	binom := func(n, k int) int {
		if k < 0 || k > n || n < 0 {
			return 0
		}
		return pascal[n][k]
	}
	for i := 0; i < 7; i++ {
		for j := 0; j < NumRanks; j++ {
			h[i][j] = binom(j+i, i+1)
		}
	}
	return h
}

// ColexIndex computes the colexicographic index of a 7-multiset of
// ascending rank indices (each in [0,12]) using the precomputed hash
// table: index = sum_i hash[i][multiset[i]].
func ColexIndex(multiset [7]int, hash HashTable) int {
	idx := 0
	for i, m := range multiset {
		idx += hash[i][m]
	}
	return idx
}

// BuildFlushTable sweeps all 8192 rank masks and scores each as a flush
// hand (straight flush / royal flush / flush), skipping masks whose
// population is under 5 (no flush possible). Masks with population over 5
// are also scored: for these the straight-flush check still runs over the
// full mask before any top-5 truncation (spec.md §4.2).
func BuildFlushTable() [FlushTableSize]int32 {
	var table [FlushTableSize]int32
	for mask := 0; mask < FlushTableSize; mask++ {
		if popcount16(uint16(mask)) < 5 {
			continue
		}
		ranks := maskToRanks(uint16(mask))
		table[mask] = handrank.ClassifyFlush(ranks)
	}
	return table
}

// BuildRankTable enumerates every 7-multiset of ranks in colex order and
// scores the best non-flush 5-card hand obtainable from its histogram.
func BuildRankTable(hash HashTable) [RankTableSize]int32 {
	var table [RankTableSize]int32
	multiset := [7]int{0, 0, 0, 0, 0, 0, 0}
	for {
		idx := ColexIndex(multiset, hash)
		counts, presence := handrank.RankCounts(multiset[:])
		table[idx] = handrank.ClassifyNonFlush(counts, presence)

		if !nextMultiset(&multiset) {
			break
		}
	}
	return table
}

// nextMultiset advances a non-decreasing 7-tuple over [0,12] to the next
// one in colex enumeration order (spec.md §4.2): increment the rightmost
// element that is still below 12, then set every element to its right
// (all of them 12 until now) to that new value, preserving
// non-decreasing order and avoiding revisits.
func nextMultiset(m *[7]int) bool {
	i := 6
	for i >= 0 && m[i] == NumRanks-1 {
		i--
	}
	if i < 0 {
		return false
	}
	m[i]++
	for j := i + 1; j < 7; j++ {
		m[j] = m[i]
	}
	return true
}

func popcount16(x uint16) int {
	n := 0
	for x != 0 {
		n += int(x & 1)
		x >>= 1
	}
	return n
}

func maskToRanks(mask uint16) []int {
	var ranks []int
	for r := 0; r < NumRanks; r++ {
		if mask&(1<<uint(r)) != 0 {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

package score

import (
	"math"
	"unicode/utf8"
)

const (
	// Exact is the score of an exact match.
	Exact = 100

	// MaxPartial is the highest score a non-exact match can reach.
	MaxPartial = Exact - 1

	// MinMatch is the lowest score a valid subsequence match can reach.
	MinMatch = 1

	// maxWeight is the weight of a match at candidate position 0.
	maxWeight = 10

	// minWeight is the floor for matches at position maxWeight-1 and later.
	minWeight = 1

	// bonusDivisor turns the running total into the adjacency bonus.
	bonusDivisor = 10

	// rawCeiling saturates the accumulator; the adjacency bonus compounds
	// and would otherwise overflow for long queries. Adding a weight and a
	// bonus to it stays within a 32-bit int.
	rawCeiling = math.MaxInt32 / (bonusDivisor + 1)
)

// Func scores a query against a candidate. Score satisfies Func.
type Func func(query, candidate string) int

// Score returns how well query matches candidate, in [0, 100].
//
// An empty query scores 0. An exact match scores 100. Otherwise query is
// matched greedily as a subsequence of candidate; if it is not one the score
// is 0, else the weighted raw score is normalized against the best raw score
// a query of the same length could reach and mapped into [1, 99].
//
// Characters are compared by their encoding, so each byte of invalid UTF-8
// only matches the same byte. The raw score saturates for queries of about
// 160 runes or more, so such a query scores 99 against every candidate it
// is a subsequence of, however gapped, unless the two are equal.
func Score(query, candidate string) int {
	if query == "" {
		return 0
	}
	if query == candidate {
		return Exact
	}

	raw, matched, ok := scan(query, candidate)
	if !ok {
		return 0
	}
	return normalize(raw, ideal(matched))
}

// IsSubsequence reports whether every rune of query appears in candidate in
// order. The empty query is a subsequence of everything.
func IsSubsequence(query, candidate string) bool {
	if query == "" {
		return true
	}
	_, _, ok := scan(query, candidate)
	return ok
}

// Positions returns the rune indices in candidate taken by the greedy match
// of query, in increasing order. It returns nil when query is empty or is not
// a subsequence of candidate. Unlike Score it allocates the result slice.
func Positions(query, candidate string) []int {
	if query == "" {
		return nil
	}

	positions := make([]int, 0, utf8.RuneCountInString(query))
	rest := query
	want := head(rest)
	i := 0
	for j := 0; j < len(candidate); i++ {
		got := head(candidate[j:])
		j += len(got)
		if got != want {
			continue
		}
		positions = append(positions, i)
		rest = rest[len(want):]
		if rest == "" {
			return positions
		}
		want = head(rest)
	}
	return nil
}

// scan walks candidate once, matching the runes of query in order.
// It returns the raw score, the number of matched runes, and whether all of
// query was matched.
func scan(query, candidate string) (raw, matched int, ok bool) {
	rest := query
	want := head(rest)
	prev := 0
	i := 0
	for j := 0; j < len(candidate); i++ {
		got := head(candidate[j:])
		j += len(got)
		if got != want {
			continue
		}
		raw = accumulate(raw, i, matched > 0 && i == prev+1)
		prev = i
		matched++
		rest = rest[len(want):]
		if rest == "" {
			return raw, matched, true
		}
		want = head(rest)
	}
	return raw, matched, false
}

// head returns the encoding of the first rune of s, or its first byte when
// that byte does not start valid UTF-8.
func head(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	return s[:n]
}

// ideal returns the raw score of n runes matched at positions 0..n-1.
// No real match of n runes can exceed it.
func ideal(n int) int {
	raw := 0
	for i := range n {
		raw = accumulate(raw, i, i > 0)
	}
	return raw
}

// accumulate adds the weight of a match at position i to running, then the
// adjacency bonus when the match directly follows the previous one.
func accumulate(running, i int, adjacent bool) int {
	running += weight(i)
	if adjacent {
		running += running / bonusDivisor
	}
	if running > rawCeiling {
		running = rawCeiling
	}
	return running
}

// weight is the position weight of a match at candidate index i.
func weight(i int) int {
	if i >= maxWeight-minWeight {
		return minWeight
	}
	return maxWeight - i
}

// normalize maps raw onto [MinMatch, MaxPartial] relative to best.
// The ratio is squared so gapped matches fall off faster than contiguous ones.
func normalize(raw, best int) int {
	if best <= 0 {
		return 0
	}
	ratio := float64(raw) / float64(best)
	s := int(MaxPartial * ratio * ratio)
	if s < MinMatch {
		return MinMatch
	}
	if s > MaxPartial {
		return MaxPartial
	}
	return s
}

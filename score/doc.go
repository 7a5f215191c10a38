// Package score computes a bounded fuzzy-match score between a short query
// and a candidate string.
//
// The score is built from a single greedy, left-to-right subsequence scan of
// the candidate. Each matched query character earns a position weight that
// favors early candidate positions, and runs of adjacent matches earn a
// compounding bonus. The raw total is normalized onto [0, 100].
//
// # Usage
//
//	s := score.Score("xb", "xbps-install") // 99
//	s = score.Score("git", "git")          // 100
//	s = score.Score("zzz", "abc")          // 0
//
// # Guarantees
//
//   - Every result is in [0, 100].
//   - An exact match of a non-empty query scores 100.
//   - A non-exact match never scores 100.
//   - A query that is not a subsequence of the candidate scores 0.
//   - An empty query scores 0 against every candidate.
//   - A valid subsequence match never scores 0.
//
// Matching is case-sensitive and works on runes; no normalization or case
// folding is applied.
//
// # Greedy Matching
//
// Each query character is taken at its first occurrence after the previous
// match and is never revisited. When several alignments exist the scan does
// not search for the best one, so scores are deterministic and cheap rather
// than optimal.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. [Score] and
// [IsSubsequence] do not allocate.
package score

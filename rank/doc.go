// Package rank orders a collection of candidate strings by their fuzzy-match
// score against a query.
//
// It applies [score.Score] to every candidate, pairs each candidate with its
// score, and returns the pairs sorted by descending score. Nothing is
// filtered: the output has exactly one [Match] per input item, and callers
// decide which scores are good enough.
//
// # Usage
//
//	results := rank.MatchItems("xb", []string{"grep", "xbps-install", "find"})
//	for _, m := range results {
//	    fmt.Printf("%s => %d\n", m.Item, m.Score)
//	}
//
// Use the [Results] helpers to narrow the output:
//
//	top := results.Matched().Top(10)
//
// # Ordering
//
// Results are ordered by score DESC, then by input position ASC. Items with
// equal scores keep their relative input order, so repeated calls with the
// same input always return the same order.
//
// # Large Collections
//
// [Ranker] scores large collections on a bounded worker pool and accepts a
// custom scorer:
//
//	r := rank.New(rank.Options{Workers: 8})
//	results, err := r.RankContext(ctx, query, items)
//
// The parallel path returns exactly the same order as [MatchItems].
//
// # Thread Safety
//
// [MatchItems] is pure. A [Ranker] holds only immutable options and is safe
// for concurrent use.
package rank

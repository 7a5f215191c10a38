package rank

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/matchr/score"
)

const (
	// DefaultParallelThreshold is the collection size at which a Ranker
	// starts scoring on its worker pool.
	DefaultParallelThreshold = 4096

	// minChunkSize keeps worker chunks large enough to amortize scheduling.
	minChunkSize = 256

	// cancelCheckInterval is how many items a worker scores between
	// context checks.
	cancelCheckInterval = 512
)

// MatchItems scores every item against query and returns one Match per item,
// sorted by score descending. Ties keep their input order. An empty items
// slice yields an empty, non-nil Results.
func MatchItems(query string, items []string) Results {
	results := make(Results, len(items))
	scoreRange(score.Score, query, items, results, 0, len(items))
	sortResults(results)
	return results
}

// Options configures a Ranker.
type Options struct {
	// Scorer scores one candidate. If nil, uses score.Score.
	Scorer score.Func

	// Workers bounds the number of goroutines used for large collections.
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// ParallelThreshold is the minimum number of items scored in parallel.
	// Smaller collections are scored on the calling goroutine.
	// Default: DefaultParallelThreshold. Negative disables parallel scoring.
	ParallelThreshold int
}

// Ranker ranks candidate collections with a configurable scorer and
// optional parallel scoring.
type Ranker struct {
	scorer    score.Func
	workers   int
	threshold int
}

// New creates a Ranker with the given options.
func New(opts Options) *Ranker {
	r := &Ranker{
		scorer:    opts.Scorer,
		workers:   opts.Workers,
		threshold: opts.ParallelThreshold,
	}
	if r.scorer == nil {
		r.scorer = score.Score
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.threshold == 0 {
		r.threshold = DefaultParallelThreshold
	}
	return r
}

// Rank is RankContext without cancellation.
func (r *Ranker) Rank(query string, items []string) Results {
	// Background is never cancelled, so RankContext cannot fail here.
	results, _ := r.RankContext(context.Background(), query, items)
	return results
}

// RankContext scores and sorts items like MatchItems, using the Ranker's
// scorer. Collections at or above the parallel threshold are split into
// chunks scored concurrently. The only error is ctx's, returned when ctx is
// done before scoring finishes.
func (r *Ranker) RankContext(ctx context.Context, query string, items []string) (Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make(Results, len(items))
	if !r.parallel(len(items)) {
		scoreRange(r.scorer, query, items, results, 0, len(items))
		sortResults(results)
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	chunk := max((len(items)+r.workers-1)/r.workers, minChunkSize)
	for start := 0; start < len(items); start += chunk {
		end := min(start+chunk, len(items))
		g.Go(func() error {
			for lo := start; lo < end; lo += cancelCheckInterval {
				if err := gctx.Err(); err != nil {
					return err
				}
				scoreRange(r.scorer, query, items, results, lo, min(lo+cancelCheckInterval, end))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortResults(results)
	return results, nil
}

func (r *Ranker) parallel(n int) bool {
	return r.threshold > 0 && r.workers > 1 && n >= r.threshold
}

// scoreRange fills results[lo:hi] from items[lo:hi]. Each slot is written by
// exactly one caller, so disjoint ranges may be scored concurrently.
func scoreRange(fn score.Func, query string, items []string, results Results, lo, hi int) {
	for i := lo; i < hi; i++ {
		results[i] = Match{
			Item:  items[i],
			Index: i,
			Score: fn(query, items[i]),
		}
	}
}

// sortResults sorts by score descending; the stable sort keeps input order
// among equal scores.
func sortResults(results Results) {
	slices.SortStableFunc(results, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

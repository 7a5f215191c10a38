package rank

// Match pairs a candidate with its score.
type Match struct {
	// Item is the candidate string as passed in by the caller.
	Item string

	// Index is the position of Item in the input slice.
	Index int

	// Score is the match score in [0, 100].
	Score int
}

// Results is a ranked slice of Match with helper methods.
type Results []Match

// Items returns just the candidate strings, in ranked order.
func (r Results) Items() []string {
	items := make([]string, len(r))
	for i, m := range r {
		items[i] = m.Item
	}
	return items
}

// Scores returns just the scores, in ranked order.
func (r Results) Scores() []int {
	scores := make([]int, len(r))
	for i, m := range r {
		scores[i] = m.Score
	}
	return scores
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore int) Results {
	filtered := Results{}
	for _, m := range r {
		if m.Score >= minScore {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Matched returns results whose query was a subsequence of the item,
// i.e. every result with a positive score.
func (r Results) Matched() Results {
	return r.FilterByMinScore(1)
}

// Top returns at most n results. A non-positive n returns all of them.
func (r Results) Top(n int) Results {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/matchr/score"
)

// Names of the tools every Registry exposes.
const (
	ScoreToolName      = "score"
	MatchItemsToolName = "match_items"
)

// ScoreArgs are the arguments of the score tool.
type ScoreArgs struct {
	Query     string `json:"query" jsonschema:"the search query"`
	Candidate string `json:"candidate" jsonschema:"the string to score against the query"`
}

// ScoreResult is the output of the score tool.
type ScoreResult struct {
	Score int `json:"score" jsonschema:"match score from 0 to 100"`
}

// MatchItemsArgs are the arguments of the match_items tool.
type MatchItemsArgs struct {
	Query    string   `json:"query" jsonschema:"the search query"`
	Items    []string `json:"items" jsonschema:"candidate strings to rank"`
	MinScore int      `json:"min_score,omitempty" jsonschema:"drop matches scoring below this value"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of matches to return, 0 for all"`
}

// MatchItemsResult is the output of the match_items tool.
type MatchItemsResult struct {
	Matches []MatchEntry `json:"matches"`
}

// MatchEntry is one ranked item.
type MatchEntry struct {
	Item  string `json:"item"`
	Index int    `json:"index"`
	Score int    `json:"score"`
}

var scoreInputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"query":     map[string]any{"type": "string", "description": "the search query"},
		"candidate": map[string]any{"type": "string", "description": "the string to score against the query"},
	},
	"required": []any{"query", "candidate"},
}

var matchItemsInputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"query":     map[string]any{"type": "string", "description": "the search query"},
		"items":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"min_score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"limit":     map[string]any{"type": "integer", "minimum": 0},
	},
	"required": []any{"query", "items"},
}

func (r *Registry) registerBuiltins() {
	builtins := []struct {
		name        string
		title       string
		description string
		schema      map[string]any
		handler     ToolHandler
	}{
		{
			name:        ScoreToolName,
			title:       "Fuzzy score",
			description: "Score how well a query fuzzy-matches a candidate string (0-100)",
			schema:      scoreInputSchema,
			handler:     r.handleScore,
		},
		{
			name:        MatchItemsToolName,
			title:       "Fuzzy match items",
			description: "Rank candidate strings by fuzzy-match score against a query",
			schema:      matchItemsInputSchema,
			handler:     r.handleMatchItems,
		},
	}

	for _, b := range builtins {
		err := r.RegisterLocalFunc(b.name, b.description, b.schema, b.handler,
			WithTitle(b.title), WithReadOnly(), WithTags("fuzzy", "search"))
		if err != nil {
			panic(fmt.Sprintf("registry: builtin %s: %v", b.name, err))
		}
		r.mu.Lock()
		r.builtins[b.name] = struct{}{}
		r.mu.Unlock()
	}
}

// isBuiltin reports whether id still holds the tool New registered for it,
// rather than a caller's replacement.
func (r *Registry) isBuiltin(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builtins[id]
	return ok
}

func (r *Registry) handleScore(ctx context.Context, args map[string]any) (any, error) {
	var in ScoreArgs
	if err := decodeArgs(args, &in, "query", "candidate"); err != nil {
		return nil, err
	}
	return scoreTool(in), nil
}

func (r *Registry) handleMatchItems(ctx context.Context, args map[string]any) (any, error) {
	var in MatchItemsArgs
	if err := decodeArgs(args, &in, "query", "items"); err != nil {
		return nil, err
	}
	return r.matchItemsTool(ctx, in)
}

func scoreTool(in ScoreArgs) ScoreResult {
	return ScoreResult{Score: score.Score(in.Query, in.Candidate)}
}

func (r *Registry) matchItemsTool(ctx context.Context, in MatchItemsArgs) (MatchItemsResult, error) {
	if in.MinScore < 0 || in.MinScore > score.Exact {
		return MatchItemsResult{}, fmt.Errorf("%w: min_score must be between 0 and 100, got %d", ErrInvalidRequest, in.MinScore)
	}
	if in.Limit < 0 {
		return MatchItemsResult{}, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidRequest, in.Limit)
	}

	results, err := r.ranker.RankContext(ctx, in.Query, in.Items)
	if err != nil {
		return MatchItemsResult{}, err
	}
	if in.MinScore > 0 {
		results = results.FilterByMinScore(in.MinScore)
	}
	results = results.Top(in.Limit)

	out := MatchItemsResult{Matches: make([]MatchEntry, len(results))}
	for i, m := range results {
		out.Matches[i] = MatchEntry{Item: m.Item, Index: m.Index, Score: m.Score}
	}
	return out, nil
}

// decodeArgs converts loosely typed MCP arguments into v, requiring the
// named keys to be present.
func decodeArgs(args map[string]any, v any, required ...string) error {
	for _, key := range required {
		if _, ok := args[key]; !ok {
			return fmt.Errorf("%w: missing argument %q", ErrInvalidRequest, key)
		}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jonwraymond/matchr/rank"
	"github.com/jonwraymond/matchr/registry"
	"github.com/jonwraymond/matchr/score"
)

const maxItemLine = 1 << 20

var errNoItems = errors.New("no items given and stdin is a terminal")

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type rankOptions struct {
	limit     int
	minScore  int
	matched   bool
	highlight bool
	json      bool
}

func bindRankFlags(fs *pflag.FlagSet, o *rankOptions) {
	fs.IntVarP(&o.limit, "limit", "n", 0, "maximum number of results, 0 for all (default from config)")
	fs.IntVar(&o.minScore, "min-score", 0, "drop results scoring below this value (default from config)")
	fs.BoolVarP(&o.matched, "matched", "m", false, "only show items the query matches")
	fs.BoolVar(&o.highlight, "highlight", false, "highlight matched characters")
	fs.BoolVar(&o.json, "json", false, "print results as JSON")
}

func newRankCmd(a *app) *cobra.Command {
	var opts rankOptions
	cmd := &cobra.Command{
		Use:   "rank <query> [items...]",
		Short: "Rank items by fuzzy score against query",
		Long: "Rank items by fuzzy score against query, best first. Items are read\n" +
			"one per line from stdin when none are given as arguments.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("limit") {
				opts.limit = a.cfg.Rank.Limit
			}
			if !fs.Changed("min-score") {
				opts.minScore = a.cfg.Rank.MinScore
			}
			if opts.limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", opts.limit)
			}
			if opts.minScore < 0 || opts.minScore > score.Exact {
				return fmt.Errorf("--min-score must be between 0 and 100, got %d", opts.minScore)
			}

			query, items := args[0], args[1:]
			if len(items) == 0 {
				var err error
				if items, err = readItems(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			results, err := a.newRanker().RankContext(cmd.Context(), query, items)
			if err != nil {
				return err
			}
			a.logger.Debug().Str("query", query).Int("items", len(items)).Msg("ranked")

			if opts.matched {
				results = results.Matched()
			}
			if opts.minScore > 0 {
				results = results.FilterByMinScore(opts.minScore)
			}
			results = results.Top(opts.limit)

			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, results)
			}
			var render func(string) string
			if opts.highlight {
				render = func(s string) string { return matchStyle.Render(s) }
			}
			return writeTable(out, query, results, render)
		},
	}
	bindRankFlags(cmd.Flags(), &opts)
	return cmd
}

// readItems reads non-empty lines from in. It refuses to block on an
// interactive terminal.
func readItems(in io.Reader) ([]string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errNoItems
	}

	var items []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxItemLine)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

func writeJSON(w io.Writer, results rank.Results) error {
	out := registry.MatchItemsResult{Matches: make([]registry.MatchEntry, len(results))}
	for i, m := range results {
		out.Matches[i] = registry.MatchEntry{Item: m.Item, Index: m.Index, Score: m.Score}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeTable prints one "item  score" row per result with the score column
// aligned by display width. A non-nil render is applied to matched runs.
func writeTable(w io.Writer, query string, results rank.Results, render func(string) string) error {
	width := 0
	for _, m := range results {
		width = max(width, runewidth.StringWidth(m.Item))
	}

	for _, m := range results {
		item := m.Item
		if render != nil {
			item = highlight(m.Item, score.Positions(query, m.Item), render)
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(m.Item))
		if _, err := fmt.Fprintf(w, "%s%s  %3d\n", item, pad, m.Score); err != nil {
			return err
		}
	}
	return nil
}

// highlight applies render to each maximal run of runes whose rune index is
// in positions. positions must be ascending.
func highlight(item string, positions []int, render func(string) string) string {
	if len(positions) == 0 {
		return item
	}

	var b, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(render(run.String()))
			run.Reset()
		}
	}

	next := 0
	i := 0
	for _, r := range item {
		if next < len(positions) && positions[next] == i {
			run.WriteRune(r)
			next++
		} else {
			flush()
			b.WriteRune(r)
		}
		i++
	}
	flush()
	return b.String()
}

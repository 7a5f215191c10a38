package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newToolsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "tools [query]",
		Short: "List the MCP tools served by matchr, ranked by query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			tools, err := a.newRegistry(nil).Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			width := 0
			for _, tool := range tools {
				width = max(width, runewidth.StringWidth(tool.ToolID()))
			}
			out := cmd.OutOrStdout()
			for _, tool := range tools {
				id := tool.ToolID()
				pad := strings.Repeat(" ", width-runewidth.StringWidth(id))
				if _, err := fmt.Fprintf(out, "%s%s  %s\n", id, pad, tool.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of tools, 0 for all")
	return cmd
}

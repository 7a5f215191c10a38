// Command matchr scores and ranks strings with the fuzzy subsequence matcher
// and serves the matcher as MCP tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "matchr:", err)
		os.Exit(1)
	}
}

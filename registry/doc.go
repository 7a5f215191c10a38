// Package registry exposes the fuzzy matcher as MCP tools.
//
// A Registry always carries two tools backed by the matchr core:
//
//   - score: {query, candidate} -> {score}
//   - match_items: {query, items, min_score?, limit?} -> {matches}
//
// Callers may register further local tools; the registry ranks its own tool
// catalogue with the same fuzzy matcher (see [Registry.Search]).
//
// Example usage:
//
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{
//	        Name:    "matchr",
//	        Version: "0.1.0",
//	    },
//	})
//
//	// Serve with the go-sdk stdio transport
//	server := registry.NewMCPServer(reg)
//	err := server.Run(ctx, &mcp.StdioTransport{})
//
//	// Or call tools directly
//	out, err := reg.Execute(ctx, "score", map[string]any{
//	    "query":     "xb",
//	    "candidate": "xbps-install",
//	})
//
// # Transports
//
// [NewMCPServer] builds a server on github.com/modelcontextprotocol/go-sdk.
// [ServeStdio], [ServeHTTP] and [ServeSSE] speak line-delimited JSON-RPC
// directly through [Registry.HandleRequest] for embedding in existing
// servers.
//
// # Metrics
//
// Pass [NewMetrics] in [Config] to record matchr_tool_calls_total and
// matchr_tool_call_duration_seconds on a Prometheus registerer.
package registry

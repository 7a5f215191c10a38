package registry

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer builds a go-sdk MCP server exposing every tool currently in
// the registry. The builtin tools get typed handlers whose input and output
// schemas are inferred from ScoreArgs and MatchItemsArgs. Other local tools,
// including caller replacements of a builtin, are served through Execute
// with their registered input schema.
//
// MCP tool names may not contain ':', so namespaced IDs are exposed with '.'
// as the separator ("text:upper" becomes "text.upper"). Tools registered
// after the call are not added to the server.
func NewMCPServer(r *Registry) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    r.config.ServerInfo.Name,
		Version: r.config.ServerInfo.Version,
	}, nil)

	tools, _ := r.ListAll(context.Background())
	for _, tool := range tools {
		id := tool.ToolID()
		sdkTool := tool.Tool
		sdkTool.Name = SDKToolName(id)

		builtin := r.isBuiltin(id)
		switch {
		case builtin && id == ScoreToolName:
			sdkTool.InputSchema = nil
			mcp.AddTool(server, &sdkTool, r.sdkScore)
		case builtin && id == MatchItemsToolName:
			sdkTool.InputSchema = nil
			mcp.AddTool(server, &sdkTool, r.sdkMatchItems)
		default:
			mcp.AddTool(server, &sdkTool, r.sdkLocal(id))
		}
	}
	return server
}

func (r *Registry) sdkScore(ctx context.Context, req *mcp.CallToolRequest, in ScoreArgs) (*mcp.CallToolResult, ScoreResult, error) {
	out, err := observed(r, ScoreToolName, func() (ScoreResult, error) {
		return scoreTool(in), nil
	})
	return nil, out, err
}

func (r *Registry) sdkMatchItems(ctx context.Context, req *mcp.CallToolRequest, in MatchItemsArgs) (*mcp.CallToolResult, MatchItemsResult, error) {
	out, err := observed(r, MatchItemsToolName, func() (MatchItemsResult, error) {
		return r.matchItemsTool(ctx, in)
	})
	return nil, out, err
}

func (r *Registry) sdkLocal(id string) mcp.ToolHandlerFor[map[string]any, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		out, err := r.Execute(ctx, id, args)
		return nil, out, err
	}
}

// SDKToolName returns the name under which NewMCPServer exposes the tool
// with the given ID.
func SDKToolName(id string) string {
	return strings.ReplaceAll(id, ":", ".")
}

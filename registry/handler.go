package registry

import (
	"context"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolHandler runs a local tool. args are the decoded "arguments" object of
// a tools/call request; the result must be JSON-encodable.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// LocalToolOption adjusts a tool built by RegisterLocalFunc.
type LocalToolOption func(*model.Tool)

// WithNamespace places the tool in ns, making its ID "ns:name".
func WithNamespace(ns string) LocalToolOption {
	return func(t *model.Tool) { t.Namespace = ns }
}

// WithTags adds tags to the tool. Tags are normalized when the tool is built.
func WithTags(tags ...string) LocalToolOption {
	return func(t *model.Tool) { t.Tags = append(t.Tags, tags...) }
}

// WithVersion sets the tool version.
func WithVersion(v string) LocalToolOption {
	return func(t *model.Tool) { t.Version = v }
}

// WithTitle sets the human readable title MCP clients show for the tool.
func WithTitle(title string) LocalToolOption {
	return func(t *model.Tool) { t.Title = title }
}

// WithReadOnly marks the tool as free of side effects. Clients may call it
// repeatedly with the same arguments and expect the same result.
func WithReadOnly() LocalToolOption {
	return func(t *model.Tool) {
		if t.Annotations == nil {
			t.Annotations = &mcp.ToolAnnotations{}
		}
		t.Annotations.ReadOnlyHint = true
		t.Annotations.IdempotentHint = true
	}
}

func newLocalTool(name, description string, inputSchema map[string]any, opts []LocalToolOption) model.Tool {
	tool := model.Tool{Tool: mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}}
	for _, opt := range opts {
		opt(&tool)
	}
	tool.Tags = model.NormalizeTags(tool.Tags)
	return tool
}

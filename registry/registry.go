package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/rs/zerolog"

	"github.com/jonwraymond/matchr/rank"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo

	// Ranker ranks match_items requests and tool searches.
	// If nil, uses rank.New(rank.Options{}).
	Ranker *rank.Ranker

	// Logger receives tool call logs. If nil, logging is disabled.
	Logger *zerolog.Logger

	// Metrics records tool calls. If nil, no metrics are recorded.
	Metrics *Metrics
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry is an MCP tool registry exposing the fuzzy matcher as tools,
// alongside any local tools registered by the caller.
type Registry struct {
	mu       sync.RWMutex
	config   Config
	ranker   *rank.Ranker
	logger   zerolog.Logger
	metrics  *Metrics
	tools    map[string]model.Tool
	handlers map[string]ToolHandler
	builtins map[string]struct{}
}

// New creates a Registry with the score and match_items tools registered.
func New(cfg Config) *Registry {
	r := &Registry{
		config:   cfg,
		ranker:   cfg.Ranker,
		logger:   zerolog.Nop(),
		metrics:  cfg.Metrics,
		tools:    make(map[string]model.Tool),
		handlers: make(map[string]ToolHandler),
		builtins: make(map[string]struct{}),
	}
	if r.ranker == nil {
		r.ranker = rank.New(rank.Options{})
	}
	if cfg.Logger != nil {
		r.logger = *cfg.Logger
	}
	r.registerBuiltins()
	return r
}

// RegisterLocal registers a tool with a local execution handler.
// A tool with the same ID replaces the existing one, including the score
// and match_items builtins.
func (r *Registry) RegisterLocal(tool model.Tool, handler ToolHandler) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTool, err)
	}
	if handler == nil {
		return fmt.Errorf("%w: handler is required for %s", ErrInvalidTool, tool.ToolID())
	}

	id := tool.ToolID()
	r.mu.Lock()
	r.tools[id] = tool
	r.handlers[id] = handler
	delete(r.builtins, id)
	r.mu.Unlock()

	r.logger.Debug().Str("tool", id).Msg("tool registered")
	return nil
}

// RegisterLocalFunc is a convenience for inline tool definition.
func (r *Registry) RegisterLocalFunc(
	name, description string,
	inputSchema map[string]any,
	handler ToolHandler,
	opts ...LocalToolOption,
) error {
	return r.RegisterLocal(newLocalTool(name, description, inputSchema, opts), handler)
}

// Unregister removes a tool by ID.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[id]; !ok {
		return fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	delete(r.tools, id)
	delete(r.handlers, id)
	delete(r.builtins, id)
	return nil
}

// ListAll returns all registered tools ordered by ID.
func (r *Registry) ListAll(ctx context.Context) ([]model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.sortedIDs()
	tools := make([]model.Tool, len(ids))
	for i, id := range ids {
		tools[i] = r.tools[id]
	}
	return tools, nil
}

// ListNamespaces returns the distinct tool namespaces in sorted order.
// Tools without a namespace contribute "".
func (r *Registry) ListNamespaces(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	namespaces := []string{}
	for _, tool := range r.tools {
		if _, ok := seen[tool.Namespace]; ok {
			continue
		}
		seen[tool.Namespace] = struct{}{}
		namespaces = append(namespaces, tool.Namespace)
	}
	slices.Sort(namespaces)
	return namespaces, nil
}

// GetTool returns a tool by ID, or by name when no ID matches.
func (r *Registry) GetTool(ctx context.Context, id string) (model.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolved, ok := r.resolve(id)
	if !ok {
		return model.Tool{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return r.tools[resolved], nil
}

// Search ranks registered tools by the fuzzy score of their names against
// query and returns the tools that match, best first. An empty query returns
// all tools ordered by ID. A non-positive limit returns every result.
func (r *Registry) Search(ctx context.Context, query string, limit int) ([]model.Tool, error) {
	tools, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		if limit > 0 && limit < len(tools) {
			tools = tools[:limit]
		}
		return tools, nil
	}

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}
	results, err := r.ranker.RankContext(ctx, query, names)
	if err != nil {
		return nil, err
	}

	results = results.Matched().Top(limit)
	ranked := make([]model.Tool, len(results))
	for i, m := range results {
		ranked[i] = tools[m.Index]
	}
	return ranked, nil
}

// Execute runs a tool by ID or name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	id, ok := r.resolve(name)
	handler := r.handlers[id]
	r.mu.RUnlock()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrToolNotFound, name)
		r.metrics.observe(unknownTool, 0, err)
		r.logger.Debug().Str("tool", name).Msg("tool not found")
		return nil, err
	}

	result, err := observed(r, id, func() (any, error) {
		return handler(ctx, args)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExecutionFailed, id, err)
	}
	return result, nil
}

// observed runs fn as a call to tool, recording metrics and logging the
// outcome.
func observed[T any](r *Registry, tool string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	elapsed := time.Since(start)

	r.metrics.observe(tool, elapsed, err)
	if err != nil {
		r.logger.Warn().Err(err).Str("tool", tool).Msg("tool call failed")
		return out, err
	}
	r.logger.Debug().Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call")
	return out, nil
}

// RegistryStats summarizes the registry contents.
type RegistryStats struct {
	TotalTools int
	Namespaces int
}

// Stats returns registry statistics.
func (r *Registry) Stats() RegistryStats {
	namespaces, _ := r.ListNamespaces(context.Background())

	r.mu.RLock()
	defer r.mu.RUnlock()
	return RegistryStats{
		TotalTools: len(r.tools),
		Namespaces: len(namespaces),
	}
}

// resolve maps an ID or bare tool name to a registered ID.
// Callers must hold r.mu.
func (r *Registry) resolve(name string) (string, bool) {
	if _, ok := r.tools[name]; ok {
		return name, true
	}
	for _, id := range r.sortedIDs() {
		if r.tools[id].Name == name {
			return id, true
		}
	}
	return "", false
}

// sortedIDs returns tool IDs in ascending order. Callers must hold r.mu.
func (r *Registry) sortedIDs() []string {
	ids := make([]string, 0, len(r.tools))
	for id := range r.tools {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry stores tool implementations and routes calls to them. It is
// populated once at startup; after that concurrent requests only read
// from it.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds tools to the registry. Registering a name a second time
// replaces the earlier tool.
func (r *Registry) Register(tools ...Tool) error {
	for i, tool := range tools {
		if tool == nil {
			return fmt.Errorf("tool at index %d is nil", i)
		}
		if tool.Definition().Name == "" {
			return fmt.Errorf("tool at index %d has empty name", i)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tool := range tools {
		r.tools[tool.Definition().Name] = tool
	}
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Definitions returns tool definitions in stable order.
func (r *Registry) Definitions() []ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition())
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Execute routes a tool call to the registered tool.
func (r *Registry) Execute(ctx context.Context, call ToolCall) (ToolResult, error) {
	tool, ok := r.Lookup(call.ToolName)
	if !ok {
		return ToolResult{}, ErrToolNotFound
	}
	return tool.Execute(ctx, call.Params)
}

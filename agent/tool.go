package agent

import (
	"context"
	"encoding/json"
)

// Params carries the string parameters extracted for one tool call.
type Params map[string]string

// Get returns the value for key, or fallback when the key is absent or blank.
func (p Params) Get(key, fallback string) string {
	if value, ok := p[key]; ok && value != "" {
		return value
	}
	return fallback
}

// ToolDefinition describes a tool and how it can be called.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema,omitempty"`
}

// ToolResult is the structured outcome of one tool execution. A
// successful result always carries the full receipt (service, provider,
// summary, details); a failed result keeps Details non-nil but may
// leave the receipt fields that never materialized empty.
type ToolResult struct {
	Success  bool              `json:"success"`
	Service  string            `json:"service"`
	Provider string            `json:"provider"`
	Summary  string            `json:"summary"`
	Details  map[string]string `json:"details"`
}

// ToolCall is a request to invoke a tool, plus its eventual result.
// Result stays nil until the dispatcher executes the call; it stays nil
// forever when the named tool is not registered.
type ToolCall struct {
	ToolName string      `json:"toolName"`
	Params   Params      `json:"params"`
	Result   *ToolResult `json:"result,omitempty"`
}

// Tool fulfills a single intent with extracted parameters.
type Tool interface {
	Definition() ToolDefinition
	Execute(ctx context.Context, params Params) (ToolResult, error)
}

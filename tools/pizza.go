package tools

import (
	"context"
	"fmt"

	"github.com/everettlabs/eleanor/agent"
)

// PizzaTool orders a pizza from the demo provider.
type PizzaTool struct {
	opts Options
}

// NewPizzaTool creates a pizza tool with its own options.
func NewPizzaTool(opts Options) PizzaTool {
	return PizzaTool{opts: opts.withDefaults()}
}

func (t PizzaTool) Definition() agent.ToolDefinition {
	return agent.ToolDefinition{
		Name:        "orderPizza",
		Description: "Order a pizza from a local provider.",
		InputSchema: toJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type": map[string]any{"type": "string", "description": "Pizza type, e.g. pepperoni or margherita."},
			},
		}),
	}
}

func (t PizzaTool) Execute(ctx context.Context, params agent.Params) (agent.ToolResult, error) {
	if err := t.opts.Sleep(ctx, t.opts.Latency); err != nil {
		return agent.ToolResult{}, err
	}

	pizzaType := params.Get("type", "Margherita")
	return agent.ToolResult{
		Success:  true,
		Service:  "Pizza Order",
		Provider: "Everett Pizza Co.",
		Summary:  fmt.Sprintf("Your %s pizza has been ordered!", pizzaType),
		Details: map[string]string{
			"item":           pizzaType + " Pizza",
			"total":          "$22.45",
			"eta":            "30-40 minutes",
			"confirmationId": confirmationID("PZ", t.opts.Clock()),
		},
	}, nil
}

// Package anthropic implements the Brain seam on top of the Anthropic
// Messages API: the model is handed the registry's tool definitions and
// every tool_use block it returns becomes one ToolCall, in block order.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/everettlabs/eleanor/agent"
)

const defaultSystemPrompt = "You are Eleanor, a local-services assistant. " +
	"Decide which of the available tools apply to the user's message and call them with extracted parameters. " +
	"Call no tools when none apply."

// Config controls the model-backed brain.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	MaxTokens    int
	SystemPrompt string
	Tools        []agent.ToolDefinition
	HTTPClient   *http.Client
}

// Brain asks Claude which tools apply to a message.
type Brain struct {
	client    anthropic.Client
	model     string
	maxTokens int
	system    string
	tools     []anthropic.ToolUnionParam
}

// New constructs a model-backed brain from config.
func New(cfg Config) (*Brain, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("anthropic: model is required")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	system := strings.TrimSpace(cfg.SystemPrompt)
	if system == "" {
		system = defaultSystemPrompt
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Brain{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		system:    system,
		tools:     toolParams(cfg.Tools),
	}, nil
}

// ParseIntents sends the message to the Messages API and maps the
// returned tool_use blocks onto ordered tool calls.
func (b *Brain) ParseIntents(ctx context.Context, message string) ([]agent.ToolCall, error) {
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: int64(b.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
		System: []anthropic.TextBlockParam{{Text: b.system}},
	}
	if len(b.tools) > 0 {
		req.Tools = b.tools
	}

	msg, err := b.client.Messages.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	calls := make([]agent.ToolCall, 0)
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			calls = append(calls, agent.ToolCall{
				ToolName: variant.Name,
				Params:   DecodeParams(variant.Input),
			})
		}
	}
	return calls, nil
}

// DecodeParams flattens a tool_use input object into string params.
// Non-string scalars are stringified; nested values are re-encoded as
// JSON so nothing the model sent is silently lost.
func DecodeParams(raw json.RawMessage) agent.Params {
	params := agent.Params{}
	if len(raw) == 0 {
		return params
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return params
	}
	for key, value := range decoded {
		switch v := value.(type) {
		case string:
			params[key] = v
		case bool:
			params[key] = fmt.Sprintf("%t", v)
		case float64:
			params[key] = trimFloat(v)
		case nil:
			continue
		default:
			data, err := json.Marshal(v)
			if err != nil {
				continue
			}
			params[key] = string(data)
		}
	}
	return params
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func toolParams(defs []agent.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		param := anthropic.ToolParam{
			Name:        def.Name,
			InputSchema: schemaFromRaw(def.InputSchema),
		}
		if desc := strings.TrimSpace(def.Description); desc != "" {
			param.Description = anthropic.String(desc)
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &param})
	}
	return out
}

func schemaFromRaw(raw json.RawMessage) anthropic.ToolInputSchemaParam {
	schema := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &schema)
	}

	param := anthropic.ToolInputSchemaParam{
		Properties: schema["properties"],
		Required:   requiredFields(schema["required"]),
	}

	extras := map[string]any{}
	for key, value := range schema {
		switch key {
		case "properties", "required", "type":
			continue
		default:
			extras[key] = value
		}
	}
	if len(extras) > 0 {
		param.ExtraFields = extras
	}
	return param
}

func requiredFields(value any) []string {
	switch items := value.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

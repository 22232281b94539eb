// Package dispatch runs the parse-execute-compose pipeline for a single
// chat request: the brain turns text into tool calls, each call is
// executed against the registry in detection order, and the outcomes
// are folded into a reply plus a transcript of thinking steps.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/everettlabs/eleanor/agent"
)

const (
	fallbackReply = "I'm not sure what you'd like me to do. Try asking me to order a pizza or book a haircut!"
	failureReply  = "I tried but something went wrong with your requests."
)

// Toolset is the slice of the registry the dispatcher needs. Tests can
// substitute a fake without building a full registry.
type Toolset interface {
	Lookup(name string) (agent.Tool, bool)
	Execute(ctx context.Context, call agent.ToolCall) (agent.ToolResult, error)
}

// Config wires the dispatcher's collaborators.
type Config struct {
	Brain agent.Brain
	Tools Toolset
	// Steps optionally mirrors every recorded step as it happens.
	Steps  agent.StepSink
	Logger *zap.Logger
}

// Result is the full outcome of one processed request.
type Result struct {
	Reply     string
	Steps     []agent.Step
	ToolCalls []agent.ToolCall
}

// Dispatcher orchestrates one request at a time. It keeps no
// per-request state, so a single instance serves concurrent requests.
type Dispatcher struct {
	brain agent.Brain
	tools Toolset
	sink  agent.StepSink
	log   *zap.Logger
}

// New creates a Dispatcher.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Brain == nil {
		return nil, errors.New("dispatch: brain is required")
	}
	if cfg.Tools == nil {
		return nil, errors.New("dispatch: toolset is required")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		brain: cfg.Brain,
		tools: cfg.Tools,
		sink:  cfg.Steps,
		log:   log,
	}, nil
}

// Process handles a single user message end to end. Per-call conditions
// (unknown tool, failed execution) are absorbed into the step transcript
// and never abort the remaining calls; only a blank message or a brain
// failure returns an error.
func (d *Dispatcher) Process(ctx context.Context, message string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, agent.ErrEmptyMessage
	}

	steps := make([]agent.Step, 0, 8)
	record := func(text string, status agent.StepStatus) {
		step := agent.Step{Message: text, Status: status}
		steps = append(steps, step)
		if d.sink != nil {
			d.sink.Emit(step)
		}
	}

	record("Analyzing your request…", agent.StepDone)

	calls, err := d.brain.ParseIntents(ctx, message)
	if err != nil {
		return Result{}, fmt.Errorf("parse intents: %w", err)
	}

	if len(calls) == 0 {
		record("No actionable intents detected.", agent.StepDone)
		return Result{
			Reply:     fallbackReply,
			Steps:     steps,
			ToolCalls: []agent.ToolCall{},
		}, nil
	}

	record(fmt.Sprintf("Identified %d intent(s).", len(calls)), agent.StepDone)

	for i := range calls {
		call := &calls[i]
		tool, ok := d.tools.Lookup(call.ToolName)
		if !ok {
			d.log.Warn("unknown tool requested", zap.String("tool", call.ToolName))
			record(fmt.Sprintf("Unknown tool: %s", call.ToolName), agent.StepError)
			continue
		}

		def := tool.Definition()
		record(fmt.Sprintf("Calling %s…", def.Name), agent.StepDone)

		result, err := d.tools.Execute(ctx, *call)
		if err != nil {
			// Tools report domain failures via Success=false; an error
			// here means the call itself broke (e.g. canceled context).
			d.log.Error("tool execution error", zap.String("tool", def.Name), zap.Error(err))
			result = agent.ToolResult{
				Service: def.Name,
				Summary: err.Error(),
				Details: map[string]string{},
			}
		}
		call.Result = &result

		if result.Success {
			record(fmt.Sprintf("✅ %s", result.Summary), agent.StepDone)
		} else {
			record(fmt.Sprintf("❌ %s failed.", def.Name), agent.StepError)
		}
	}

	summaries := make([]string, 0, len(calls))
	for _, call := range calls {
		if call.Result != nil && call.Result.Success {
			summaries = append(summaries, call.Result.Summary)
		}
	}

	reply := failureReply
	if len(summaries) > 0 {
		reply = "All done! " + strings.Join(summaries, " ")
	}

	d.log.Info("request processed",
		zap.Int("tool_calls", len(calls)),
		zap.Int("succeeded", len(summaries)),
	)

	return Result{
		Reply:     reply,
		Steps:     steps,
		ToolCalls: calls,
	}, nil
}

package agent

import "context"

// Brain parses free text into an ordered list of tool calls. The
// heuristic implementation in brain/heuristic stands in for a
// model-backed parser; both sit behind this seam so the dispatcher
// never cares which one it talks to.
type Brain interface {
	ParseIntents(ctx context.Context, message string) ([]ToolCall, error)
}

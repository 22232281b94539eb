package main

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/everettlabs/eleanor/agent"
)

// renderer styles chat output. With noColor set it falls back to plain
// text so the client stays usable in dumb terminals and pipes.
type renderer struct {
	noColor bool

	stepStyle    lipgloss.Style
	stepErrStyle lipgloss.Style
	replyStyle   lipgloss.Style
	cardStyle    lipgloss.Style
	titleStyle   lipgloss.Style
	keyStyle     lipgloss.Style
}

func newRenderer(noColor bool) *renderer {
	return &renderer{
		noColor:      noColor,
		stepStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		stepErrStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		replyStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		cardStyle:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		titleStyle:   lipgloss.NewStyle().Bold(true),
		keyStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (r *renderer) banner() string {
	return r.stylize("Eleanor demo assistant. Ask me to order a pizza or book a haircut; type exit to leave.", r.stepStyle)
}

func (r *renderer) step(step agent.Step) string {
	line := "  · " + step.Message
	if step.Status == agent.StepError {
		return r.stylize(line, r.stepErrStyle)
	}
	return r.stylize(line, r.stepStyle)
}

func (r *renderer) reply(text string) string {
	return r.stylize("eleanor> "+text, r.replyStyle)
}

func (r *renderer) errorLine(err error) string {
	return r.stylize("eleanor> something broke: "+err.Error(), r.stepErrStyle)
}

// receipt renders the structured summary card for a successful call.
func (r *renderer) receipt(call agent.ToolCall) string {
	result := call.Result

	var b strings.Builder
	b.WriteString(r.stylize(result.Service, r.titleStyle))
	b.WriteString("\n")
	b.WriteString(result.Provider)

	keys := make([]string, 0, len(result.Details))
	for key := range result.Details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString("\n")
		b.WriteString(r.stylize(key+": ", r.keyStyle))
		b.WriteString(result.Details[key])
	}

	if r.noColor {
		return b.String()
	}
	return r.cardStyle.Render(b.String())
}

func (r *renderer) stylize(text string, style lipgloss.Style) string {
	if r.noColor {
		return text
	}
	return style.Render(text)
}

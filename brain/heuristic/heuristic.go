// Package heuristic detects intents with regular expressions. It is the
// default Brain for the demo: good enough to route the happy paths,
// trivially replaceable by a model-backed parser behind the same seam.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"github.com/everettlabs/eleanor/agent"
)

var (
	pizzaTypeRe = regexp.MustCompile(`(?:a|one|an)\s+(pepperoni|margherita|hawaiian|veggie|cheese)\s*pizza`)
	haircutRe   = regexp.MustCompile(`haircut|hair\s*cut|salon|barber`)
	bookingRe   = regexp.MustCompile(`book\s+(?:a\s+)?(plumber|cleaning|massage|dentist)`)

	weekdayRe  = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	tomorrowRe = regexp.MustCompile(`\btomorrow\b`)
	todayRe    = regexp.MustCompile(`\btoday\b`)
	timeRe     = regexp.MustCompile(`\b(?:at\s+)?(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\b`)
)

// Brain is the pattern-based intent parser.
type Brain struct{}

// New creates a heuristic Brain.
func New() *Brain { return &Brain{} }

// ParseIntents runs every detector against the lowercased message. The
// detectors are independent, so one message can yield several calls;
// the output order is fixed by detector order (pizza, haircut, booking)
// regardless of where the cues appear in the text.
func (b *Brain) ParseIntents(_ context.Context, message string) ([]agent.ToolCall, error) {
	lower := strings.ToLower(message)
	calls := make([]agent.ToolCall, 0, 3)

	if strings.Contains(lower, "pizza") {
		pizzaType := "Margherita"
		if m := pizzaTypeRe.FindStringSubmatch(lower); m != nil {
			pizzaType = m[1]
		}
		calls = append(calls, agent.ToolCall{
			ToolName: "orderPizza",
			Params:   agent.Params{"type": pizzaType},
		})
	}

	if haircutRe.MatchString(lower) {
		date, timeOfDay := extractDateTime(lower)
		calls = append(calls, agent.ToolCall{
			ToolName: "bookAppointment",
			Params:   agent.Params{"service": "Haircut", "date": date, "time": timeOfDay},
		})
	}

	if m := bookingRe.FindStringSubmatch(lower); m != nil {
		date, timeOfDay := extractDateTime(lower)
		calls = append(calls, agent.ToolCall{
			ToolName: "bookAppointment",
			Params:   agent.Params{"service": capitalize(m[1]), "date": date, "time": timeOfDay},
		})
	}

	return calls, nil
}

// extractDateTime applies the scheduling heuristics to lowercased text.
// Rule order matters for the date: "today" overwrites "tomorrow", which
// overwrites a weekday name. The first time-shaped token wins.
func extractDateTime(text string) (date, timeOfDay string) {
	date = "next available slot"

	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		date = capitalize(m[1])
	}
	if tomorrowRe.MatchString(text) {
		date = "Tomorrow"
	}
	if todayRe.MatchString(text) {
		date = "Today"
	}

	if m := timeRe.FindStringSubmatch(text); m != nil {
		timeOfDay = strings.TrimSpace(m[1])
	}
	return date, timeOfDay
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

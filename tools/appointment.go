package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/everettlabs/eleanor/agent"
)

// AppointmentTool books a service appointment with the demo provider.
type AppointmentTool struct {
	opts Options
}

// NewAppointmentTool creates an appointment tool with its own options.
func NewAppointmentTool(opts Options) AppointmentTool {
	return AppointmentTool{opts: opts.withDefaults()}
}

func (t AppointmentTool) Definition() agent.ToolDefinition {
	return agent.ToolDefinition{
		Name:        "bookAppointment",
		Description: "Book an appointment for services like haircuts, plumbers, etc.",
		InputSchema: toJSON(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"service": map[string]any{"type": "string", "description": "Service to book, e.g. Haircut or Plumber."},
				"date":    map[string]any{"type": "string", "description": "Requested date, e.g. Monday or Tomorrow."},
				"time":    map[string]any{"type": "string", "description": "Requested time, e.g. 10am or 3:30 pm."},
			},
		}),
	}
}

func (t AppointmentTool) Execute(ctx context.Context, params agent.Params) (agent.ToolResult, error) {
	if err := t.opts.Sleep(ctx, t.opts.Latency); err != nil {
		return agent.ToolResult{}, err
	}

	service := params.Get("service", "Haircut")
	date := params.Get("date", "next available slot")
	timeOfDay := params.Get("time", "")

	when := date
	if timeOfDay != "" {
		when = date + " at " + timeOfDay
	}

	return agent.ToolResult{
		Success:  true,
		Service:  service + " Booking",
		Provider: "StyleCuts Salon",
		Summary:  fmt.Sprintf("Your %s has been booked for %s.", strings.ToLower(service), when),
		Details: map[string]string{
			"appointment":    service,
			"scheduledFor":   when,
			"confirmationId": confirmationID("BK", t.opts.Clock()),
		},
	}, nil
}

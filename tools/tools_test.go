package tools

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/everettlabs/eleanor/agent"
)

func fixedOptions(at time.Time) Options {
	return Options{
		Latency: time.Millisecond,
		Clock:   func() time.Time { return at },
		Sleep:   func(ctx context.Context, d time.Duration) error { return ctx.Err() },
	}
}

func TestPizzaDefaults(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	tool := NewPizzaTool(fixedOptions(now))

	result, err := tool.Execute(context.Background(), agent.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if result.Service != "Pizza Order" || result.Provider != "Everett Pizza Co." {
		t.Fatalf("unexpected receipt header: %q / %q", result.Service, result.Provider)
	}
	if result.Summary != "Your Margherita pizza has been ordered!" {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if result.Details["item"] != "Margherita Pizza" {
		t.Fatalf("unexpected item: %q", result.Details["item"])
	}

	wantID := "PZ-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	if result.Details["confirmationId"] != wantID {
		t.Fatalf("expected confirmation %q, got %q", wantID, result.Details["confirmationId"])
	}
}

func TestPizzaUsesRequestedType(t *testing.T) {
	tool := NewPizzaTool(fixedOptions(time.Now()))
	result, err := tool.Execute(context.Background(), agent.Params{"type": "pepperoni"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Your pepperoni pizza has been ordered!" {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
}

func TestAppointmentWhenComposition(t *testing.T) {
	tool := NewAppointmentTool(fixedOptions(time.Now()))

	withTime, err := tool.Execute(context.Background(), agent.Params{"service": "Haircut", "date": "Monday", "time": "10am"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withTime.Details["scheduledFor"] != "Monday at 10am" {
		t.Fatalf("unexpected scheduledFor: %q", withTime.Details["scheduledFor"])
	}
	if withTime.Summary != "Your haircut has been booked for Monday at 10am." {
		t.Fatalf("unexpected summary: %q", withTime.Summary)
	}
	if !strings.HasPrefix(withTime.Details["confirmationId"], "BK-") {
		t.Fatalf("unexpected confirmation id: %q", withTime.Details["confirmationId"])
	}

	withoutTime, err := tool.Execute(context.Background(), agent.Params{"service": "Plumber", "date": "Tomorrow"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withoutTime.Details["scheduledFor"] != "Tomorrow" {
		t.Fatalf("unexpected scheduledFor: %q", withoutTime.Details["scheduledFor"])
	}
	if withoutTime.Service != "Plumber Booking" {
		t.Fatalf("unexpected service: %q", withoutTime.Service)
	}
}

func TestAppointmentDefaults(t *testing.T) {
	tool := NewAppointmentTool(fixedOptions(time.Now()))
	result, err := tool.Execute(context.Background(), agent.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Your haircut has been booked for next available slot." {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
}

func TestExecuteNeverMutatesParams(t *testing.T) {
	params := agent.Params{"type": "veggie"}
	original := agent.Params{"type": "veggie"}

	tool := NewPizzaTool(fixedOptions(time.Now()))
	if _, err := tool.Execute(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(params, original) {
		t.Fatalf("params mutated: %v", params)
	}
}

func TestExecuteIdempotentExceptConfirmationID(t *testing.T) {
	when := time.UnixMilli(1700000000000)
	later := when.Add(90 * time.Second)

	first, err := NewPizzaTool(fixedOptions(when)).Execute(context.Background(), agent.Params{"type": "hawaiian"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewPizzaTool(fixedOptions(later)).Execute(context.Background(), agent.Params{"type": "hawaiian"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Details["confirmationId"] == second.Details["confirmationId"] {
		t.Fatalf("expected distinct confirmation ids")
	}
	delete(first.Details, "confirmationId")
	delete(second.Details, "confirmationId")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ beyond confirmation id: %+v vs %+v", first, second)
	}
}

func TestExecuteHonorsCancellation(t *testing.T) {
	tool := NewPizzaTool(Options{
		Latency: 50 * time.Millisecond,
		Clock:   time.Now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tool.Execute(ctx, agent.Params{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRegisterBuiltins(t *testing.T) {
	reg := agent.NewRegistry()
	if err := RegisterBuiltins(reg, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defs := reg.Definitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(defs))
	}
	if defs[0].Name != "bookAppointment" || defs[1].Name != "orderPizza" {
		t.Fatalf("unexpected tools: %q, %q", defs[0].Name, defs[1].Name)
	}
}

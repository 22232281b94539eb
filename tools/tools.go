// Package tools provides the built-in demo service tools. Both tools
// simulate a remote provider call: they pause for a configurable
// latency, then return a fully populated receipt. Neither performs any
// real I/O or keeps state beyond the confirmation id it hands back.
package tools

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/everettlabs/eleanor/agent"
)

// Clock yields the timestamps behind confirmation ids.
type Clock func() time.Time

// Sleeper simulates the latency of a remote provider call.
type Sleeper func(ctx context.Context, d time.Duration) error

// Options configures the built-in tools.
type Options struct {
	Latency time.Duration
	Clock   Clock
	Sleep   Sleeper
}

func (o Options) withDefaults() Options {
	if o.Latency <= 0 {
		o.Latency = 400 * time.Millisecond
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

// NewBuiltins returns the demo service tools.
func NewBuiltins(opts Options) []agent.Tool {
	opts = opts.withDefaults()
	return []agent.Tool{
		PizzaTool{opts: opts},
		AppointmentTool{opts: opts},
	}
}

// RegisterBuiltins registers the demo service tools.
func RegisterBuiltins(reg *agent.Registry, opts Options) error {
	return reg.Register(NewBuiltins(opts)...)
}

func toJSON(value any) json.RawMessage {
	data, _ := json.Marshal(value)
	return data
}

// confirmationID encodes the timestamp in upper-case base 36, matching
// the PZ-/BK- receipt format. Callers treat it as an opaque token.
func confirmationID(prefix string, now time.Time) string {
	return prefix + "-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package httpapi is the thin HTTP adapter over the dispatch pipeline.
// It validates the request shape, runs the dispatcher, and serializes
// the response in the agent wire format; every per-call condition is
// already absorbed into the payload before it gets here.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/everettlabs/eleanor/agent"
	"github.com/everettlabs/eleanor/agent/dispatch"
)

// Processor runs the pipeline for one message.
type Processor interface {
	Process(ctx context.Context, message string) (dispatch.Result, error)
}

// Config wires dependencies for the HTTP handler.
type Config struct {
	Processor Processor
	Logger    *zap.Logger
}

// NewHandler builds the HTTP handler for the agent API.
func NewHandler(cfg Config) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{processor: cfg.Processor, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/agent", h.handleAgent)
	mux.HandleFunc("/healthz", h.handleHealth)
	return mux
}

type handler struct {
	processor Processor
	log       *zap.Logger
}

type agentResponse struct {
	Reply         string           `json:"reply"`
	ThinkingSteps []agent.Step     `json:"thinkingSteps"`
	ToolCalls     []agent.ToolCall `json:"toolCalls"`
}

func (h *handler) handleAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.processor == nil {
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	// Only unparseable input is a server-side failure. Any valid JSON
	// value that does not carry a usable message — a non-object body, a
	// missing key, a non-string value — is a client error. A JSON null
	// has no request shape at all and falls into the catch-all.
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	body, _ := payload.(map[string]any)
	message, ok := body["message"].(string)
	if !ok || strings.TrimSpace(message) == "" {
		writeError(w, http.StatusBadRequest, "A non-empty 'message' string is required.")
		return
	}

	result, err := h.processor.Process(r.Context(), message)
	if err != nil {
		h.log.Error("process failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, agentResponse{
		Reply:         result.Reply,
		ThinkingSteps: result.Steps,
		ToolCalls:     result.ToolCalls,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

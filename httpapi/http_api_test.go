package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everettlabs/eleanor/agent"
	"github.com/everettlabs/eleanor/agent/dispatch"
)

type stubProcessor struct {
	result dispatch.Result
	err    error
	last   string
}

func (s *stubProcessor) Process(ctx context.Context, message string) (dispatch.Result, error) {
	s.last = message
	if s.err != nil {
		return dispatch.Result{}, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, processor Processor) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewHandler(Config{Processor: processor}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body []byte) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, payload
}

func TestAgentEndpointSuccess(t *testing.T) {
	processor := &stubProcessor{result: dispatch.Result{
		Reply: "All done! Pizza ordered!",
		Steps: []agent.Step{{Message: "Analyzing your request…", Status: agent.StepDone}},
		ToolCalls: []agent.ToolCall{{
			ToolName: "orderPizza",
			Params:   agent.Params{"type": "pepperoni"},
			Result: &agent.ToolResult{
				Success: true,
				Service: "Pizza Order",
				Summary: "Pizza ordered!",
				Details: map[string]string{"confirmationId": "PZ-TEST"},
			},
		}},
	}}
	srv := newTestServer(t, processor)

	resp, body := postJSON(t, srv.URL+"/api/agent", []byte(`{"message":"order a pepperoni pizza"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if processor.last != "order a pepperoni pizza" {
		t.Fatalf("message not forwarded, got %q", processor.last)
	}

	var parsed struct {
		Reply         string           `json:"reply"`
		ThinkingSteps []agent.Step     `json:"thinkingSteps"`
		ToolCalls     []agent.ToolCall `json:"toolCalls"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if parsed.Reply != "All done! Pizza ordered!" {
		t.Fatalf("unexpected reply: %q", parsed.Reply)
	}
	if len(parsed.ThinkingSteps) != 1 || parsed.ThinkingSteps[0].Status != agent.StepDone {
		t.Fatalf("unexpected steps: %+v", parsed.ThinkingSteps)
	}
	if len(parsed.ToolCalls) != 1 || parsed.ToolCalls[0].Result == nil {
		t.Fatalf("unexpected tool calls: %+v", parsed.ToolCalls)
	}
	if parsed.ToolCalls[0].Result.Details["confirmationId"] != "PZ-TEST" {
		t.Fatalf("details lost in serialization: %+v", parsed.ToolCalls[0].Result)
	}
}

func TestAgentEndpointRejectsMissingMessage(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})

	for _, body := range []string{
		`{}`,
		`{"message":""}`,
		`{"message":"   "}`,
		`{"message":42}`,
		`{"message":null}`,
		`"hi"`,
		`[]`,
		`42`,
		`true`,
	} {
		resp, payload := postJSON(t, srv.URL+"/api/agent", []byte(body))
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.StatusCode)
		}
		var parsed errorResponse
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Fatalf("%s: parse response: %v", body, err)
		}
		if parsed.Error != "A non-empty 'message' string is required." {
			t.Fatalf("%s: unexpected error: %q", body, parsed.Error)
		}
	}
}

func TestAgentEndpointMalformedJSON(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})

	for _, body := range []string{
		`{"message":`,
		``,
		`null`,
	} {
		resp, payload := postJSON(t, srv.URL+"/api/agent", []byte(body))
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("%q: expected 500, got %d", body, resp.StatusCode)
		}
		var parsed errorResponse
		if err := json.Unmarshal(payload, &parsed); err != nil {
			t.Fatalf("%q: parse response: %v", body, err)
		}
		if parsed.Error != internalErrorMessage {
			t.Fatalf("%q: unexpected error: %q", body, parsed.Error)
		}
	}
}

func TestAgentEndpointProcessorFailure(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{err: errors.New("boom")})

	resp, payload := postJSON(t, srv.URL+"/api/agent", []byte(`{"message":"order a pizza"}`))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if parsed.Error != internalErrorMessage {
		t.Fatalf("internal details must not leak, got %q", parsed.Error)
	}
}

func TestAgentEndpointMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})

	resp, err := http.Get(srv.URL + "/api/agent")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	srv := httptest.NewServer(RequestLogger(nil, NewHandler(Config{Processor: &stubProcessor{}})))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
}

package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/vocabdrill/internal/store"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_Success(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	events := &recordingEvents{}
	mock := NewMockProvider(MockJSON(map[string]any{"word": "cat", "lookalikes": []string{"cut"}}))
	p := WithLogging(mock, ProviderMock, events, zap.New(core))

	ctx := WithPurpose(context.Background(), PurposeLookalike)
	_, err := p.Generate(ctx, Request{System: "sys", Messages: UserMessage("cat"), Schema: wordsSchema()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(events.events))
	}
	e := events.events[0]
	if !e.Success || e.Purpose != PurposeLookalike || e.Provider != ProviderMock {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 10 || e.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d, want 10/5", e.InputTokens, e.OutputTokens)
	}
	for _, want := range []string{"[system]", "[user]\ncat", "[schema: test-words]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("RequestBody missing %q:\n%s", want, e.RequestBody)
		}
	}
	if !strings.Contains(e.ResponseBody, `"cut"`) {
		t.Errorf("ResponseBody = %q", e.ResponseBody)
	}

	if logs.FilterMessage("llm request").Len() != 1 {
		t.Errorf("expected one debug log line, got %v", logs.All())
	}
}

func TestLoggingProvider_FailureStillRecorded(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	events := &recordingEvents{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithLogging(mock, "openai", events, zap.New(core))

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x")})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}

	if len(events.events) != 1 || events.events[0].Success {
		t.Fatalf("events = %+v", events.events)
	}
	if !strings.Contains(events.events[0].ErrorMessage, "slow down") {
		t.Errorf("ErrorMessage = %q", events.events[0].ErrorMessage)
	}
	if events.events[0].Purpose != PurposeUnknown {
		t.Errorf("Purpose = %q, want %q", events.events[0].Purpose, PurposeUnknown)
	}

	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("expected a warning for the failed request")
	}
	if logs.FilterMessage("record llm request event").Len() != 1 {
		t.Error("expected a warning for the failed event write")
	}
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: []byte(`"ok"`)})
	p := WithLogging(mock, ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestLoggingProvider_WithStore(t *testing.T) {
	s, err := store.Open("file:llm_logging?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	mock := NewMockProvider(MockJSON(map[string]any{"word": "dog", "lookalikes": []string{"dig"}}))
	p := WithRetry(WithLogging(mock, ProviderMock, s.EventRepo(), nil), retryConfig(), nil)

	ctx := WithPurpose(context.Background(), PurposeLookalike)
	if _, err := p.Generate(ctx, Request{Messages: UserMessage("dog"), Schema: wordsSchema()}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Purpose != PurposeLookalike || got[0].Model != "mock" {
		t.Fatalf("events = %+v", got)
	}
}

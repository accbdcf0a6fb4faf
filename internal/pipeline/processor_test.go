package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/llm"
	"github.com/studyscope/pdf-summarizer/internal/ratelimit"
)

// completerMock returns a canned reply per prompt family.
type completerMock struct {
	calls int
	fail  bool
}

func (m *completerMock) Complete(_ context.Context, _ llm.Profile, prompt string) (string, error) {
	m.calls++
	if m.fail {
		return "", common.ErrUpstreamCall
	}
	switch {
	case strings.Contains(prompt, "teaching assistant"):
		return `Here! {"Summary": "A friendly course about Go."}`, nil
	case strings.Contains(prompt, "learning_objectives"):
		return `{"sections": ["Overview", "Grading"], "learning_objectives": ["write Go"], "competencies": [], "resources": []}`, nil
	case strings.Contains(prompt, "keywords"):
		return `[{"word": "golang", "score": 92}, {"word": "testing", "score": 70}]`, nil
	default:
		return `{"2024-09-01": {"type": "milestone", "description": "Course start"}, "2024-12-10": {"type": "exam", "description": "Final"}}`, nil
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const docText = "COURSE OVERVIEW\nA course about Go.\n# Grading\nExams and projects."

func newTestProcessor(mock *completerMock, limits common.RateLimitConfig) *Processor {
	logger := testLogger()
	gate := ratelimit.NewGate(ratelimit.NewMemoryStore(), logger)
	return NewProcessor(logger, nil, mock, gate, limits)
}

func TestProcessText_FullAnalysis(t *testing.T) {
	mock := &completerMock{}
	p := newTestProcessor(mock, common.RateLimitConfig{})

	a, err := p.ProcessText(context.Background(), "s1", "google/gemini-pro", docText)
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	if mock.calls != 4 {
		t.Errorf("made %d model calls, want 4", mock.calls)
	}
	if len(a.Sections) != 2 {
		t.Errorf("Sections = %d, want 2", len(a.Sections))
	}
	if a.Summary.Fallback || a.Summary.Summary != "A friendly course about Go." {
		t.Errorf("Summary = %+v", a.Summary)
	}
	if a.Structure.Struct == nil || len(a.Structure.Struct.Sections) != 2 {
		t.Errorf("Structure = %+v", a.Structure)
	}
	if len(a.Keywords.Keywords) != 2 {
		t.Errorf("Keywords = %+v", a.Keywords)
	}
	if len(a.Events) != 2 || a.Events[0].Date != "2024-09-01" {
		t.Errorf("Events = %+v", a.Events)
	}
}

func TestProcessText_RateLimitRefusesBeforeModelCalls(t *testing.T) {
	mock := &completerMock{}
	limits := common.RateLimitConfig{MaxRequests: 1, Window: time.Hour}
	p := newTestProcessor(mock, limits)

	if _, err := p.ProcessText(context.Background(), "s1", "", docText); err != nil {
		t.Fatalf("first request error = %v", err)
	}
	callsAfterFirst := mock.calls

	_, err := p.ProcessText(context.Background(), "s1", "", docText)
	if !errors.Is(err, common.ErrRateLimited) {
		t.Fatalf("second request error = %v, want ErrRateLimited", err)
	}
	if mock.calls != callsAfterFirst {
		t.Error("denied request must not reach the model")
	}
}

func TestProcessText_UpstreamFailureSurfaces(t *testing.T) {
	mock := &completerMock{fail: true}
	p := newTestProcessor(mock, common.RateLimitConfig{})

	_, err := p.ProcessText(context.Background(), "s1", "", docText)
	if !errors.Is(err, common.ErrUpstreamCall) {
		t.Fatalf("error = %v, want ErrUpstreamCall", err)
	}
}

func TestProcessText_GarbageRepliesYieldTaggedFallbacks(t *testing.T) {
	p := newTestProcessor(&completerMock{}, common.RateLimitConfig{})
	// swap in a completer that only produces prose
	p.Completer = completerFunc(func(context.Context, llm.Profile, string) (string, error) {
		return "I'm sorry, I can't structure that.", nil
	})

	a, err := p.ProcessText(context.Background(), "s1", "", docText)
	if err != nil {
		t.Fatalf("ProcessText() error = %v", err)
	}
	for name, res := range map[string]llm.Result{
		"summary":   a.Summary,
		"structure": a.Structure,
		"keywords":  a.Keywords,
		"schedule":  a.Schedule,
	} {
		if !res.Fallback {
			t.Errorf("%s result should be tagged as fallback", name)
		}
	}
	if len(a.Events) == 0 {
		t.Error("schedule fallback should still normalize to at least one event")
	}
}

type completerFunc func(ctx context.Context, profile llm.Profile, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, profile llm.Profile, prompt string) (string, error) {
	return f(ctx, profile, prompt)
}

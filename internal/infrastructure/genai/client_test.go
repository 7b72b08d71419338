package genai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/reflectify/reflectify-api/internal/core/domain"
)

type call struct {
	model       string
	prompt      string
	instruction string
	hasDeadline bool
}

type stubModels struct {
	// responses are consumed in order; the last one repeats.
	responses []stubResponse
	calls     []call
}

type stubResponse struct {
	text string
	err  error
}

func (s *stubModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	_, hasDeadline := ctx.Deadline()
	s.calls = append(s.calls, call{
		model:       model,
		prompt:      contents[0].Parts[0].Text,
		instruction: config.SystemInstruction.Parts[0].Text,
		hasDeadline: hasDeadline,
	})

	i := len(s.calls) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	r := s.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: r.text}}},
		}},
	}, nil
}

func newTestClient(models contentGenerator, retries uint64) *Client {
	return newClient(models, Config{
		EmotionModel: "emotion-model",
		ExpenseModel: "expense-model",
		Timeout:      time.Second,
		MaxRetries:   retries,
		Backoff:      time.Millisecond,
	}, zerolog.Nop())
}

func TestGenerate_ProfileBinding(t *testing.T) {
	models := &stubModels{responses: []stubResponse{{text: "Mood: Calm\nScore: 7"}}}
	c := newTestClient(models, 0)

	text, err := c.Generate(context.Background(), domain.ProfileEmotion, "walked in the park")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Mood: Calm\nScore: 7" {
		t.Fatalf("text returned verbatim, got %q", text)
	}

	got := models.calls[0]
	if got.model != "emotion-model" || got.prompt != "walked in the park" {
		t.Fatalf("unexpected call %+v", got)
	}
	if !strings.Contains(got.instruction, "Mood Changer: {mood_changer}") {
		t.Fatalf("emotion instruction not attached")
	}
	if !got.hasDeadline {
		t.Fatalf("provider call should carry a deadline")
	}

	if _, err := c.Generate(context.Background(), domain.ProfileExpense, "rent 20000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := models.calls[1]; got.model != "expense-model" || !strings.Contains(got.instruction, "REALITY CHECK") {
		t.Fatalf("expense profile misbound: %+v", got)
	}
}

func TestGenerate_UnknownProfile(t *testing.T) {
	models := &stubModels{responses: []stubResponse{{text: "x"}}}
	c := newTestClient(models, 0)

	if _, err := c.Generate(context.Background(), "poetry", "x"); !errors.Is(err, domain.ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
	if len(models.calls) != 0 {
		t.Fatalf("provider must not be called")
	}
}

func TestGenerate_RetriesTransientFailure(t *testing.T) {
	models := &stubModels{responses: []stubResponse{
		{err: errors.New("503 unavailable")},
		{text: ""},
		{text: "Mood: Fine"},
	}}
	c := newTestClient(models, 2)

	text, err := c.Generate(context.Background(), domain.ProfileEmotion, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Mood: Fine" || len(models.calls) != 3 {
		t.Fatalf("expected success on third attempt, got %q after %d", text, len(models.calls))
	}
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	boom := errors.New("503 unavailable")
	models := &stubModels{responses: []stubResponse{{err: boom}}}
	c := newTestClient(models, 1)

	_, err := c.Generate(context.Background(), domain.ProfileExpense, "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(models.calls) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(models.calls))
	}
}

func TestGenerate_EmptyResponse(t *testing.T) {
	models := &stubModels{responses: []stubResponse{{text: "  \n"}}}
	c := newTestClient(models, 0)

	if _, err := c.Generate(context.Background(), domain.ProfileEmotion, "x"); !errors.Is(err, domain.ErrEmptyGeneration) {
		t.Fatalf("expected ErrEmptyGeneration, got %v", err)
	}
}

func TestGenerate_CancelledContextStops(t *testing.T) {
	models := &stubModels{responses: []stubResponse{{err: errors.New("network down")}}}
	c := newTestClient(models, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, domain.ProfileEmotion, "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(models.calls) > 1 {
		t.Fatalf("cancelled call must not be retried, got %d attempts", len(models.calls))
	}
}

func TestResponseText(t *testing.T) {
	if got := responseText(nil); got != "" {
		t.Fatalf("nil response: %q", got)
	}
	if got := responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}); got != "" {
		t.Fatalf("candidate without content: %q", got)
	}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "Mood: "}, nil, {Text: "Happy"}}},
	}}}
	if got := responseText(resp); got != "Mood: Happy" {
		t.Fatalf("parts should be joined, got %q", got)
	}
}

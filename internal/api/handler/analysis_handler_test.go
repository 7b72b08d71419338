package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reflectify/reflectify-api/internal/api/middleware"
	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/internal/core/ports"
)

type stubAnalysisService struct {
	emotionFn func(ctx context.Context, userID, prompt string) (*ports.EmotionResult, error)
	expenseFn func(ctx context.Context, prompt string) (string, error)
	historyFn func(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error)
}

func (s *stubAnalysisService) AnalyzeEmotion(ctx context.Context, userID, prompt string) (*ports.EmotionResult, error) {
	return s.emotionFn(ctx, userID, prompt)
}

func (s *stubAnalysisService) AnalyzeExpense(ctx context.Context, prompt string) (string, error) {
	return s.expenseFn(ctx, prompt)
}

func (s *stubAnalysisService) EmotionHistory(ctx context.Context, userID string, limit int) ([]*domain.EmotionRecord, error) {
	return s.historyFn(ctx, userID, limit)
}

func guarded(c echo.Context) echo.Context {
	c.Set(middleware.UserKey, &domain.User{ID: "u1"})
	return c
}

func strp(s string) *string { return &s }

func TestAnalysisHandler_Emotion(t *testing.T) {
	score := domain.Score(7)
	stub := &stubAnalysisService{
		emotionFn: func(_ context.Context, userID, prompt string) (*ports.EmotionResult, error) {
			if userID != "u1" || prompt != "long day" {
				t.Fatalf("unexpected args %q %q", userID, prompt)
			}
			return &ports.EmotionResult{
				Report: domain.MoodReport{
					Mood:        strp("Tired"),
					Score:       &score,
					Analysis:    strp("Needs rest"),
					MoodChanger: strp("Take a walk"),
				},
				Record: &domain.EmotionRecord{ID: "e1"},
			}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/ai/emotion", `{"prompt":"long day"}`)
	if err := NewAnalysisHandler(stub).Emotion(guarded(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["mood"] != "Tired" || resp["score"] != float64(7) || resp["analysis"] != "Needs rest" || resp["moodchanger"] != "Take a walk" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if resp["message"] != "Emotion analysis saved successfully!" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAnalysisHandler_Emotion_MissingFieldsAreNull(t *testing.T) {
	score := domain.Score(4)
	stub := &stubAnalysisService{
		emotionFn: func(context.Context, string, string) (*ports.EmotionResult, error) {
			return &ports.EmotionResult{Report: domain.MoodReport{Score: &score}, Record: &domain.EmotionRecord{}}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/ai/emotion", `{"prompt":"x"}`)
	if err := NewAnalysisHandler(stub).Emotion(guarded(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["mood"] != nil || resp["moodchanger"] != nil || resp["score"] != float64(4) {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAnalysisHandler_Emotion_PromptRequired(t *testing.T) {
	stub := &stubAnalysisService{
		emotionFn: func(context.Context, string, string) (*ports.EmotionResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}

	for _, body := range []string{`{}`, `{"prompt":""}`} {
		c, _ := newContext(http.MethodPost, "/api/ai/emotion", body)
		if err := NewAnalysisHandler(stub).Emotion(guarded(c)); !errors.Is(err, domain.ErrPromptRequired) {
			t.Fatalf("body %s: expected ErrPromptRequired, got %v", body, err)
		}
	}
}

func TestAnalysisHandler_Emotion_ServiceError(t *testing.T) {
	stub := &stubAnalysisService{
		emotionFn: func(context.Context, string, string) (*ports.EmotionResult, error) {
			return nil, domain.ErrUnscoredReport
		},
	}
	c, _ := newContext(http.MethodPost, "/api/ai/emotion", `{"prompt":"x"}`)
	if err := NewAnalysisHandler(stub).Emotion(guarded(c)); !errors.Is(err, domain.ErrUnscoredReport) {
		t.Fatalf("expected ErrUnscoredReport, got %v", err)
	}
}

func TestAnalysisHandler_Expense(t *testing.T) {
	stub := &stubAnalysisService{
		expenseFn: func(_ context.Context, prompt string) (string, error) {
			return "1. SPENDING SNAPSHOT\n • Total: 5000", nil
		},
	}

	c, rec := newContext(http.MethodPost, "/api/ai/expense", `{"prompt":"coffee 200 daily"}`)
	if err := NewAnalysisHandler(stub).Expense(guarded(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextPlain) {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	if rec.Body.String() != "1. SPENDING SNAPSHOT\n • Total: 5000" {
		t.Fatalf("raw text expected, got %q", rec.Body.String())
	}

	c, _ = newContext(http.MethodPost, "/api/ai/expense", `{"prompt":""}`)
	if err := NewAnalysisHandler(stub).Expense(guarded(c)); !errors.Is(err, domain.ErrPromptRequired) {
		t.Fatalf("expected ErrPromptRequired, got %v", err)
	}
}

func TestAnalysisHandler_History(t *testing.T) {
	var gotLimit int
	stub := &stubAnalysisService{
		historyFn: func(_ context.Context, userID string, limit int) ([]*domain.EmotionRecord, error) {
			gotLimit = limit
			if userID != "u1" {
				t.Fatalf("unexpected user %q", userID)
			}
			return nil, nil
		},
	}
	h := NewAnalysisHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/ai/emotion?limit=5", "")
	if err := h.History(guarded(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotLimit != 5 {
		t.Fatalf("limit not forwarded, got %d", gotLimit)
	}
	resp := decode(t, rec)
	items, ok := resp["items"].([]any)
	if !ok || len(items) != 0 || resp["count"] != float64(0) {
		t.Fatalf("empty history should render an empty list: %v", resp)
	}

	c, _ = newContext(http.MethodGet, "/api/ai/emotion?limit=abc", "")
	err := h.History(guarded(c))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %v", err)
	}
}

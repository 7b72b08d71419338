package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"github.com/reflectify/reflectify-api/internal/core/domain"
	"github.com/reflectify/reflectify-api/pkg/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBackoff = 500 * time.Millisecond
)

// Config holds the provider credentials and call policy.
type Config struct {
	APIKey       string
	EmotionModel string
	ExpenseModel string
	// Timeout bounds a single provider call. Retries get a fresh deadline.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries uint64
	// Backoff is the base of the exponential delay between attempts.
	Backoff time.Duration
}

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type profileBinding struct {
	model       string
	instruction string
}

// Client implements ports.TextGenerator over the Gemini API. Each analysis
// profile is bound to its own model and system instruction.
type Client struct {
	models     contentGenerator
	profiles   map[domain.AnalysisProfile]profileBinding
	timeout    time.Duration
	maxRetries uint64
	backoff    time.Duration
	log        zerolog.Logger
}

// New creates a Gemini API client.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("genai: api key is required")
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return newClient(sdk.Models, cfg, log), nil
}

func newClient(models contentGenerator, cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	return &Client{
		models: models,
		profiles: map[domain.AnalysisProfile]profileBinding{
			domain.ProfileEmotion: {model: cfg.EmotionModel, instruction: emotionInstruction},
			domain.ProfileExpense: {model: cfg.ExpenseModel, instruction: expenseInstruction},
		},
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		backoff:    backoff,
		log:        log.With().Str("component", "genai").Logger(),
	}
}

// Generate sends prompt under the instruction bound to profile. Transient
// failures and empty responses are retried with exponential backoff; a
// cancelled caller context stops immediately.
func (c *Client) Generate(ctx context.Context, profile domain.AnalysisProfile, prompt string) (string, error) {
	binding, ok := c.profiles[profile]
	if !ok {
		return "", domain.ErrUnknownProfile
	}

	label := string(profile)
	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	contents := genai.Text(prompt)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(binding.instruction, genai.RoleUser),
	}

	var (
		text    string
		attempt int
	)
	policy := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.AnalysisRetriesTotal.WithLabelValues(label).Inc()
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.models.GenerateContent(callCtx, binding.model, contents, config)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn().Err(err).Str("profile", label).Int("attempt", attempt).Msg("generation failed")
			return retry.RetryableError(err)
		}

		text = responseText(resp)
		if strings.TrimSpace(text) == "" {
			c.log.Warn().Str("profile", label).Int("attempt", attempt).Msg("empty generation")
			return retry.RetryableError(domain.ErrEmptyGeneration)
		}
		return nil
	})
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues(label, "error").Inc()
		if errors.Is(err, domain.ErrEmptyGeneration) {
			return "", err
		}
		return "", fmt.Errorf("generate %s: %w", label, err)
	}

	metrics.AnalysisRequestsTotal.WithLabelValues(label, "success").Inc()
	c.log.Debug().Str("profile", label).Int("attempts", attempt).Int("response_len", len(text)).Msg("generation complete")
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

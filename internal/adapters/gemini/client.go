package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"fiche_client/internal/adapters/observability"
	"fiche_client/internal/domain"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the public endpoint
	RPS     int
}

// Client is a domain.TextGenerator backed by the Gemini API. Each call is a
// single best-effort request; callers own the fallback.
type Client struct {
	models *genai.Models
	model  string
	rl     *rate.Limiter
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ErrMissingCredential
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{
		models: gc.Models,
		model:  cfg.Model,
		rl:     rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	observability.ObserveExternal("gemini", "generateContent", statusOf(err), time.Since(start))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

// statusOf maps an SDK error to the HTTP status for metrics; 0 means the
// request never got a response.
func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

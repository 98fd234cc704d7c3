// internal/adapters/genai/client.go
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"hotel_recommender/internal/adapters/observability"
)

const (
	// Gemini's OpenAI-compatible surface; any chat-completions endpoint works.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-2.0-flash"

	service  = "genai"
	endpoint = "chat.completions"
)

var (
	ErrNoAPIKey   = errors.New("genai: API key is required")
	ErrEmptyReply = errors.New("genai: empty reply")
)

type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     int

	// consecutive failures before the breaker opens, and how long it stays open
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Client completes prompts against an OpenAI-compatible chat endpoint.
// Calls are rate limited client-side and short-circuited by a breaker after
// repeated failures; there are no retries.
type Client struct {
	api   *openai.Client
	model string
	rl    *rate.Limiter
	cb    *gobreaker.CircuitBreaker[string]
}

func New(o Options) (*Client, error) {
	if o.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = 20 * time.Second
	}
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = 5
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = 30 * time.Second
	}

	cfg := openai.DefaultConfig(o.APIKey)
	cfg.BaseURL = strings.TrimRight(o.BaseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: o.Timeout}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    service,
		Timeout: o.BreakerCooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= o.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			observability.SetBreakerState(name, int(to))
		},
	})

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: o.Model,
		rl:    rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		cb:    cb,
	}, nil
}

// Complete sends prompt as a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	if err := c.rl.Wait(ctx); err != nil {
		observability.ObserveExternal(service, endpoint, "rejected", time.Since(start))
		return "", fmt.Errorf("genai: rate limiter: %w", err)
	}

	text, err := c.cb.Execute(func() (string, error) {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return "", ErrEmptyReply
		}
		return resp.Choices[0].Message.Content, nil
	})

	observability.ObserveExternal(service, endpoint, outcome(err), time.Since(start))
	if err != nil {
		return "", fmt.Errorf("genai: %w", err)
	}
	return text, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyReply):
		return "empty"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "error"
	}
}

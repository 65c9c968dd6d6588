// Package groq implements the low-latency LLM provider on Groq's
// OpenAI-compatible chat completions API. Per-answer scoring, question
// generation and hints run here; the free tier has a hard quota, so every
// call passes through a shared admission-control limiter.
package groq

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"nexprep/interview/internal/llm"
	"nexprep/interview/internal/ratelimit"
)

const (
	rateLimitWindow = time.Minute
	tripCooldown    = time.Minute
	requestTimeout  = 30 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []chatMessage   `json:"messages"`
	Temperature         float32         `json:"temperature"`
	MaxCompletionTokens int32           `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type Client struct {
	http    *resty.Client
	config  *Config
	limiter *ratelimit.Limiter
}

func NewClient(config *Config) *Client {
	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(requestTimeout).
		SetHeader("Authorization", "Bearer "+config.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		config: config,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RPM:    config.RPM,
			TPM:    config.TPM,
			Window: rateLimitWindow,
		}),
	}
}

func (c *Client) Name() string {
	return "groq"
}

// Limiter exposes the shared admission-control limiter, one per process.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.limiter
}

func (c *Client) GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	return llm.CallWithRetry(ctx, func() (string, error) {
		return c.complete(ctx, prompt, opts, false)
	})
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string, opts llm.Options, out any) error {
	raw, err := llm.CallWithRetry(ctx, func() (string, error) {
		return c.complete(ctx, prompt, opts, true)
	})
	if err != nil {
		return err
	}
	return llm.DecodeJSON("groq", raw, out)
}

func (c *Client) complete(ctx context.Context, prompt string, opts llm.Options, jsonMode bool) (string, error) {
	fullContent := prompt
	if opts.SystemPrompt != "" {
		fullContent = opts.SystemPrompt + "\n" + prompt
	}
	estimated := llm.EstimateTokens(fullContent)

	// Pure admission check: on refusal we surface the rate-limit error and
	// let the caller decide between waiting, falling back or failing.
	if !c.limiter.CanRequest(estimated) {
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeRateLimit,
			Message:  "local quota window exhausted",
		}
	}

	messages := make([]chatMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: opts.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body := chatRequest{
		Model:               c.config.Model,
		Messages:            messages,
		Temperature:         opts.Temperature,
		MaxCompletionTokens: opts.MaxOutputTokens,
	}
	if jsonMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeServiceDown,
			Message:  "request failed",
			Err:      err,
		}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// fall through
	case http.StatusTooManyRequests:
		// remote throttle signal: open the breaker so concurrent sessions
		// stop hammering the API during the cooldown
		c.limiter.Trip(tripCooldown)
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeRateLimit,
			Message:  "remote rate limit (429)",
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeAPIKey,
			Message:  "authentication failed; check GROQ_API_KEY",
		}
	default:
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeServiceDown,
			Message:  "unexpected status " + resp.Status(),
		}
	}

	payload := resp.String()
	content := gjson.Get(payload, "choices.0.message.content").String()
	if content == "" {
		return "", &llm.ProviderError{
			Provider: "groq",
			Code:     llm.ErrCodeInvalidOutput,
			Message:  "empty completion",
		}
	}

	// Prefer the reported token usage over the heuristic estimate.
	tokens := estimated
	if usage := gjson.Get(payload, "usage.total_tokens"); usage.Exists() {
		tokens = int(usage.Int())
	}
	c.limiter.Record(tokens)

	return content, nil
}

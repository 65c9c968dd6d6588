// Package gemini implements the batch-grade LLM provider on the Gemini API.
// It carries the larger context window, so the report generator and other
// big-prompt callers are pointed here.
package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"nexprep/interview/internal/llm"
)

// Client represents a Gemini LLM provider
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

func (c *Client) Name() string {
	return "gemini"
}

func (c *Client) GenerateText(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	return llm.CallWithRetry(ctx, func() (string, error) {
		return c.generate(ctx, prompt, opts, "")
	})
}

func (c *Client) GenerateJSON(ctx context.Context, prompt string, opts llm.Options, out any) error {
	// Gemini constrains output natively via response MIME type; the fence
	// strip in DecodeJSON covers models that wrap it anyway.
	raw, err := llm.CallWithRetry(ctx, func() (string, error) {
		return c.generate(ctx, prompt, opts, "application/json")
	})
	if err != nil {
		return err
	}
	return llm.DecodeJSON("gemini", raw, out)
}

func (c *Client) generate(ctx context.Context, prompt string, opts llm.Options, mimeType string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = genai.Ptr(opts.MaxOutputTokens)
	}
	if opts.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemPrompt}},
		}
	}
	if mimeType != "" {
		genConfig.ResponseMIMEType = mimeType
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", classifyError(err)
	}
	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidOutput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidOutput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidOutput,
			Message:  "Empty response generated",
		}
	}
	return text, nil
}

// classifyError separates failures the retry loop can help with from the
// ones it cannot. A "limit: 0" quota error means the key has no quota at
// all (Vertex key used against AI Studio) and retrying is pointless.
func classifyError(err error) error {
	msg := err.Error()

	if strings.Contains(msg, "limit: 0") && strings.Contains(msg, "quota") {
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "API key has zero quota; use an AI Studio key, not Vertex",
			Err:      err,
		}
	}
	if strings.Contains(msg, "API key") || strings.Contains(msg, "401") || strings.Contains(msg, "403") {
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Authentication failed",
			Err:      err,
		}
	}
	if strings.Contains(msg, "429") || strings.Contains(msg, "Too Many Requests") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeRateLimit,
			Message:  "Rate limit exceeded",
			Err:      err,
		}
	}
	return &llm.ProviderError{
		Provider: "gemini",
		Code:     llm.ErrCodeServiceDown,
		Message:  "Generation failed",
		Err:      err,
	}
}

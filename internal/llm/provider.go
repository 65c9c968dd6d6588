package llm

import "context"

// Options controls a single generation call.
type Options struct {
	Temperature     float32
	MaxOutputTokens int32
	SystemPrompt    string
}

// defines the interface for LLM providers
type Provider interface {
	// GenerateText returns the raw model output for a prompt.
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
	// GenerateJSON asks for structured output and decodes it into out.
	// Implementations must never hand malformed JSON to the caller: a parse
	// failure surfaces as a ProviderError with ErrCodeInvalidOutput.
	GenerateJSON(ctx context.Context, prompt string, opts Options, out any) error
	Name() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Common error codes shared across providers
const (
	ErrCodeAPIKey        = "invalid_api_key"
	ErrCodeRateLimit     = "rate_limit_exceeded"
	ErrCodeServiceDown   = "service_unavailable"
	ErrCodeInvalidOutput = "invalid_output"
	ErrCodeTimeout       = "timeout"
)

// IsRateLimit reports whether err is a rate-limit-class provider error.
// Only these are worth retrying with backoff.
func IsRateLimit(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Code == ErrCodeRateLimit
}

// IsPermanent reports whether err is a configuration failure that retries
// cannot fix (bad key, zero quota). These must fail fast.
func IsPermanent(err error) bool {
	pe, ok := err.(*ProviderError)
	return ok && pe.Code == ErrCodeAPIKey
}

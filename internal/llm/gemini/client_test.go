package gemini

import (
	"errors"
	"testing"

	"nexprep/interview/internal/llm"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}

	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("expected default model, got %s", cfg.Model)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"zero quota", errors.New("quota exceeded for metric, limit: 0"), llm.ErrCodeAPIKey},
		{"bad key", errors.New("API key not valid"), llm.ErrCodeAPIKey},
		{"forbidden", errors.New("googleapi: Error 403: permission denied"), llm.ErrCodeAPIKey},
		{"throttled", errors.New("googleapi: Error 429: Too Many Requests"), llm.ErrCodeRateLimit},
		{"resource exhausted", errors.New("rpc error: code = RESOURCE_EXHAUSTED"), llm.ErrCodeRateLimit},
		{"other", errors.New("connection reset"), llm.ErrCodeServiceDown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := classifyError(tc.err)

			var provErr *llm.ProviderError
			if !errors.As(classified, &provErr) {
				t.Fatalf("expected *llm.ProviderError, got %T", classified)
			}
			if provErr.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, provErr.Code)
			}
			if !errors.Is(classified, tc.err) {
				t.Fatal("classified error must wrap the original")
			}
		})
	}
}

func TestZeroQuotaIsPermanent(t *testing.T) {
	classified := classifyError(errors.New("quota metric limit: 0, please check quota"))
	if !llm.IsPermanent(classified) {
		t.Fatal("zero-quota keys must fail fast, not retry")
	}
	if llm.IsRateLimit(classified) {
		t.Fatal("zero-quota must not be treated as a transient rate limit")
	}
}

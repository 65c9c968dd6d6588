package llm

import (
	"errors"
	"testing"
)

func TestProviderErrorClassification(t *testing.T) {
	rateLimited := &ProviderError{Provider: "test", Code: ErrCodeRateLimit, Message: "throttled"}
	if !IsRateLimit(rateLimited) {
		t.Fatal("rate limit error should be classified as retryable")
	}
	if IsPermanent(rateLimited) {
		t.Fatal("rate limit error must not be permanent")
	}

	badKey := &ProviderError{Provider: "test", Code: ErrCodeAPIKey, Message: "invalid key"}
	if IsRateLimit(badKey) {
		t.Fatal("API key error must not look retryable")
	}
	if !IsPermanent(badKey) {
		t.Fatal("API key error should be permanent")
	}

	if IsRateLimit(errors.New("plain")) {
		t.Fatal("plain errors are not rate limit errors")
	}
}

func TestRegistry(t *testing.T) {
	RegisterProvider("fake", func() (Provider, error) {
		return nil, errors.New("fake provider cannot be built")
	})

	if _, err := NewProvider("fake"); err == nil {
		t.Fatal("expected factory error to propagate")
	}
	if _, err := NewProvider("never-registered"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

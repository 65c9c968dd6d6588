package llm

import (
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	input := "```json\n{\"hint\":\"use STAR\"}\n```\n"
	want := `{"hint":"use STAR"}`
	if got := StripFences(input); got != want {
		t.Fatalf("StripFences: expected %q, got %q", want, got)
	}

	raw := `  {"a":1}  `
	if got := StripFences(raw); got != `{"a":1}` {
		t.Fatalf("StripFences (no fences): expected trimmed string, got %q", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Hint string `json:"hint"`
	}

	if err := DecodeJSON("test", "```json\n{\"hint\":\"focus on impact\"}\n```", &out); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if out.Hint != "focus on impact" {
		t.Fatalf("expected decoded hint, got %q", out.Hint)
	}
}

func TestDecodeJSON_MalformedOutput(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("test", "I am not JSON, sorry", &out)
	if err == nil {
		t.Fatal("expected error for malformed output")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if provErr.Code != ErrCodeInvalidOutput {
		t.Fatalf("expected code %s, got %s", ErrCodeInvalidOutput, provErr.Code)
	}
}

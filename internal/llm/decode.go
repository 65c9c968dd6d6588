package llm

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// StripFences removes markdown code-fence wrapping that models sometimes add
// even when asked for raw JSON.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line ("json", "text", ...)
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// DecodeJSON sanitizes raw model output, verifies it is well-formed JSON and
// unmarshals it into out. The provider name is only used for error reporting.
func DecodeJSON(provider, raw string, out any) error {
	cleaned := StripFences(raw)
	if !gjson.Valid(cleaned) {
		return &ProviderError{
			Provider: provider,
			Code:     ErrCodeInvalidOutput,
			Message:  "model returned malformed JSON",
		}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ProviderError{
			Provider: provider,
			Code:     ErrCodeInvalidOutput,
			Message:  "model output does not match expected shape",
			Err:      err,
		}
	}
	return nil
}

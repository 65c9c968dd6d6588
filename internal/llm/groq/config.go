package groq

import (
	"errors"
	"os"
	"strconv"
)

// Free-tier defaults: 30 requests and 6000 tokens per minute.
const (
	defaultRPM = 30
	defaultTPM = 6000
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	RPM     int
	TPM     int
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is required")
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	return &Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		RPM:     envInt("GROQ_RPM", defaultRPM),
		TPM:     envInt("GROQ_TPM", defaultTPM),
	}, nil
}

func envInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

package llm

import (
	"context"
	"time"
)

const (
	maxRetries      = 3
	initialDelay    = 2 * time.Second
	backoffFactor   = 2
	outputAllowance = 500
	charsPerToken   = 4
)

// EstimateTokens is a rough pre-call cost heuristic for providers that
// cannot report exact usage up front: one token per four characters plus a
// fixed allowance for the generated output.
func EstimateTokens(text string) int {
	return len(text)/charsPerToken + outputAllowance
}

// CallWithRetry runs fn, retrying with exponential backoff only when the
// failure is rate-limit-class. Permanent configuration failures and every
// other error propagate immediately.
func CallWithRetry[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	delay := initialDelay

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsRateLimit(err) || attempt > maxRetries {
			return zero, err
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		delay *= backoffFactor
	}
}

// Package ratelimit implements sliding-window admission control with a
// circuit breaker for providers with fixed request and token quotas.
//
// The limiter is a pure predicate: it never queues or retries. Callers check
// CanRequest before an LLM call, Record after a successful one, and Trip when
// the remote side signals throttling.
package ratelimit

import (
	"sync"
	"time"
)

type Config struct {
	RPM    int           // max requests per window
	TPM    int           // max tokens per window
	Window time.Duration // rolling window, typically one minute
}

type tokenUsage struct {
	at    time.Time
	count int
}

// Limiter is shared process-wide, one per provider, so it must tolerate
// concurrent use from every in-flight request.
type Limiter struct {
	mu     sync.Mutex
	config Config

	requests []time.Time
	tokens   []tokenUsage

	circuitOpen  bool
	circuitReset time.Time

	now func() time.Time // injectable for tests
}

func NewLimiter(config Config) *Limiter {
	return &Limiter{
		config: config,
		now:    time.Now,
	}
}

// CanRequest reports whether a call costing estimatedTokens may proceed.
// False when the breaker is open, the request count is at the cap, or the
// window's token usage plus the estimate would exceed the token cap.
func (l *Limiter) CanRequest(estimatedTokens int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune()

	if l.circuitOpen {
		if l.now().After(l.circuitReset) {
			l.circuitOpen = false
		} else {
			return false
		}
	}

	if len(l.requests) >= l.config.RPM {
		return false
	}

	current := 0
	for _, usage := range l.tokens {
		current += usage.count
	}
	return current+estimatedTokens <= l.config.TPM
}

// Record appends usage after a successful call. Callers should pass the
// provider-reported token total when available, else the pre-call estimate.
func (l *Limiter) Record(tokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.requests = append(l.requests, now)
	l.tokens = append(l.tokens, tokenUsage{at: now, count: tokens})
}

// Trip opens the circuit breaker for cooldown; CanRequest short-circuits to
// false until it elapses, regardless of window state.
func (l *Limiter) Trip(cooldown time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.circuitOpen = true
	l.circuitReset = l.now().Add(cooldown)
}

// caller must hold mu
func (l *Limiter) prune() {
	windowStart := l.now().Add(-l.config.Window)

	kept := l.requests[:0]
	for _, at := range l.requests {
		if at.After(windowStart) {
			kept = append(kept, at)
		}
	}
	l.requests = kept

	keptTokens := l.tokens[:0]
	for _, usage := range l.tokens {
		if usage.at.After(windowStart) {
			keptTokens = append(keptTokens, usage)
		}
	}
	l.tokens = keptTokens
}

// Package retry reattempts transient failures with exponential backoff.
// The client uses it to open the agent's event stream: a refused or dropped
// connection is retried, while backend-reported errors and anything received
// after the stream is live never are.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Config is a retry policy.
type Config struct {
	// MaxAttempts caps the total number of attempts, the initial one
	// included.
	MaxAttempts int

	// InitialDelay is the wait before the first reattempt.
	InitialDelay time.Duration

	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64

	// Jitter spreads the delay by (1 + random(-Jitter, +Jitter)) so
	// clients recovering from the same outage do not reconnect in step.
	Jitter float64
}

// DefaultConfig is the policy for opening the event stream: a couple of
// quick reattempts that stay well inside the whole-run timeout. A run that
// cannot connect within three tries is better surfaced than stalled.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled is a single-attempt policy, for callers that want connection
// failures surfaced immediately.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the wait after the given failed attempt (0-indexed):
// min(MaxDelay, InitialDelay * Multiplier^attempt), jittered.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.Jitter > 0 {
		delay *= 1.0 + (rand.Float64()*2-1)*c.Jitter
	}

	return time.Duration(delay)
}

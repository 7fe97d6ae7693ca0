package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// mockTransientError simulates a transient network error.
type mockTransientError struct {
	msg string
}

func (e *mockTransientError) Error() string   { return e.msg }
func (e *mockTransientError) Timeout() bool   { return true }
func (e *mockTransientError) Temporary() bool { return true }

// Ensure mockTransientError implements net.Error
var _ net.Error = (*mockTransientError)(nil)

func TestDoSuccess(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", transientErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	permanentErr := errors.New("permanent error")

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Error(t, err)
	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, callCount) // No retries
}

func TestDoExhaustsRetries(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount) // All attempts exhausted
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second, // Long delay
		MaxDelay:     time.Second,
		Multiplier:   1.0,
		Jitter:       0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount) // Only first attempt before cancellation
}

func TestDoWithDisabledRetry(t *testing.T) {
	cfg := Disabled()
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount) // Only one attempt with disabled retry
}

func TestDefaultConfigIsConnectionPolicy(t *testing.T) {
	cfg := DefaultConfig()

	// Three quick attempts whose worst-case backoff stays far inside the
	// client's 120s whole-run budget.
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)

	cfg.Jitter = 0
	var total time.Duration
	for attempt := 0; attempt < cfg.MaxAttempts-1; attempt++ {
		total += cfg.Delay(attempt)
	}
	assert.Less(t, total, 2*time.Second)
}

func TestDelayGrowsAndCaps(t *testing.T) {
	cfg := Config{
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0,
	}

	assert.Equal(t, 500*time.Millisecond, cfg.Delay(0))
	assert.Equal(t, time.Second, cfg.Delay(1))
	assert.Equal(t, 2*time.Second, cfg.Delay(2))
	assert.Equal(t, 5*time.Second, cfg.Delay(5)) // capped
	assert.Equal(t, 500*time.Millisecond, cfg.Delay(-1))
}

func TestDoWithEventsReportsLifecycle(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
		Jitter:       0,
	}

	events := make(chan Event, 16)
	callCount := 0

	_, err := DoWithEvents(context.Background(), cfg, events, func() (string, error) {
		callCount++
		if callCount == 1 {
			return "", &mockTransientError{msg: "timeout"}
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	close(events)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{
		EventAttemptStart,
		EventAttemptFailed,
		EventRetrying,
		EventAttemptStart,
		EventSuccess,
	}, types)
}

func TestDoWithEventsNeverBlocks(t *testing.T) {
	cfg := Disabled()
	events := make(chan Event) // unbuffered, no reader

	result, err := DoWithEvents(context.Background(), cfg, events, func() (string, error) {
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
}

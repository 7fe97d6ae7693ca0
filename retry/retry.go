package retry

import (
	"context"
	"time"
)

// Do executes the given function with retry logic.
// It respects context cancellation during backoff waits.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	return DoWithEvents(ctx, cfg, nil, fn)
}

// DoWithEvents is like Do but reports attempt lifecycle events to ch. Events
// are dropped, never blocked on, when the channel is full or nil.
func DoWithEvents[T any](ctx context.Context, cfg Config, ch chan<- Event, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		emit(ch, Event{Type: EventAttemptStart, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts})

		result, err := fn()
		if err == nil {
			emit(ch, Event{Type: EventSuccess, Attempt: attempt + 1, MaxAttempts: cfg.MaxAttempts})
			return result, nil
		}

		lastErr = err
		retryable := IsTransient(err)
		emit(ch, Event{
			Type:        EventAttemptFailed,
			Attempt:     attempt + 1,
			MaxAttempts: cfg.MaxAttempts,
			Error:       err,
			Retryable:   retryable,
		})

		if !retryable {
			return zero, err
		}

		// Don't sleep after the last attempt.
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			emit(ch, Event{
				Type:        EventRetrying,
				Attempt:     attempt + 1,
				MaxAttempts: cfg.MaxAttempts,
				Error:       err,
				Delay:       delay,
				Retryable:   true,
			})

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	emit(ch, Event{Type: EventExhausted, MaxAttempts: cfg.MaxAttempts, Error: lastErr})
	return zero, lastErr
}

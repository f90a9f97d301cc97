package cache

import (
	"context"
	"errors"
	"time"
)

type retryable struct{ err error }

func (e *retryable) Error() string { return e.err.Error() }
func (e *retryable) Unwrap() error { return e.err }

// Retryable marks err as transient. Backends wrap connection and timeout
// failures with it; [Backoff.Do] retries only marked errors.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryable{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r *retryable
	return errors.As(err, &r)
}

// Backoff retries an operation with exponentially growing delays.
type Backoff struct {
	Attempts int           // tries including the first; values below 1 mean 1
	Base     time.Duration // delay before the second try
	Max      time.Duration // cap on one delay; zero means no cap
}

// DefaultBackoff suits a local Redis or MongoDB: three tries within about
// 150ms.
var DefaultBackoff = Backoff{Attempts: 3, Base: 50 * time.Millisecond, Max: time.Second}

// Do calls fn until it succeeds, returns an error that is not retryable, or
// runs out of attempts. It returns the last error, or ctx.Err() if ctx ends
// while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Base
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}

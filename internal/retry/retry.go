// Package retry runs an operation under a bounded attempt policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// ErrExhausted is returned when every attempt failed or was rejected.
var ErrExhausted = errors.New("retry attempts exhausted")

// Schedule returns the delay before the attempt following attempt n (1-based).
type Schedule func(attempt int) time.Duration

// Linear waits base*attempt.
func Linear(base time.Duration) Schedule {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

func Constant(d time.Duration) Schedule {
	return func(int) time.Duration { return d }
}

// None never waits.
func None() Schedule {
	return Constant(0)
}

// Sleeper pauses between attempts. It returns early with ctx.Err() when ctx ends.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext waits on a timer or the context, whichever ends first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep returns immediately. For tests.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	MaxAttempts int
	Backoff     Schedule
	Sleep       Sleeper
}

// Rejected is recorded when a successful result is refused by the reject predicate.
type Rejected struct {
	Attempt int
	Reason  string
}

func (r *Rejected) Error() string {
	return fmt.Sprintf("attempt %d rejected: %s", r.Attempt, r.Reason)
}

// Do calls fn until it returns a result that reject accepts or the attempts
// run out. A rejected result uses an attempt without waiting; an error waits
// Backoff(attempt) when another attempt remains. reject returns a non-empty
// reason to refuse a result and may be nil.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error), reject func(T) string) (T, error) {
	var zero T
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = None()
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var errs error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, multierr.Combine(ErrExhausted, errs, err)
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			if reject == nil {
				return result, nil
			}
			reason := reject(result)
			if reason == "" {
				return result, nil
			}
			errs = multierr.Append(errs, &Rejected{Attempt: attempt, Reason: reason})
			continue
		}

		errs = multierr.Append(errs, fmt.Errorf("attempt %d: %w", attempt, err))
		if attempt < attempts {
			if err := sleep(ctx, backoff(attempt)); err != nil {
				return zero, multierr.Combine(ErrExhausted, errs, err)
			}
		}
	}

	return zero, multierr.Combine(ErrExhausted, errs)
}

package shared

import (
	"context"
	"errors"
)

// ErrNoAttempts is returned by [FirstSuccess] when given an empty attempt list.
var ErrNoAttempts = errors.New("no attempts configured")

// Attempt is a single candidate step in a fallback chain.
type Attempt[T any] func(ctx context.Context) (T, error)

// FirstSuccess runs attempts sequentially and returns the first result produced without an error.
//
// Attempts are never run concurrently. If every attempt fails the error of the last one is returned.
// A cancelled context stops the chain before the next attempt starts.
func FirstSuccess[T any](ctx context.Context, attempts []Attempt[T]) (T, error) {
	var zero T
	lastErr := ErrNoAttempts

	for _, attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := attempt(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return zero, lastErr
}

package common

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RunWithDeadline executes fn under a deadline and maps expiry to ErrTimedOut.
// Rasterization and OCR both go through here so a slow external dependency
// degrades to an unresolved field instead of aborting the document.
func RunWithDeadline[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("after %s: %w", d, ErrTimedOut)
		}
		return zero, ctx.Err()
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
			return zero, fmt.Errorf("after %s: %w", d, ErrTimedOut)
		}
		return r.v, r.err
	}
}

package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithDeadlineReturnsValue(t *testing.T) {
	got, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestRunWithDeadlinePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunWithDeadlineTimesOut(t *testing.T) {
	_, err := RunWithDeadline(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(5 * time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	assert.ErrorIs(t, err, ErrTimedOut)
}

func TestRunWithDeadlineMapsInnerDeadlineError(t *testing.T) {
	_, err := RunWithDeadline(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 0, context.DeadlineExceeded
	})
	assert.ErrorIs(t, err, ErrTimedOut)
}

func TestRunWithDeadlineCancelledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunWithDeadline(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimedOut)
}

func TestAppErrorUnwrapsTaxonomy(t *testing.T) {
	err := NewAppError("RASTER_DECODE", "decode failed", ErrInput)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "RASTER_DECODE")
}

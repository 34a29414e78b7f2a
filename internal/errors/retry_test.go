package errors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:   maxRetries,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     20 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestRetry_SucceedsAfterTransientError(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry(5), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient error")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_WrapsUncodedFailure(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry(2), func() error {
		attempts++
		return errors.New("persistent error")
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, ErrCodeInternal, GetCode(err))
	assert.Contains(t, err.Error(), "persistent error")

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "2", e.Details["retries"])
}

func TestRetry_KeepsCodedFailure(t *testing.T) {
	coded := New(ErrCodeLogRead, "log file not found", nil)

	err := Retry(context.Background(), fastRetry(1), func() error { return coded })

	assert.Same(t, coded, err)
}

func TestRetry_RespectsContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	cfg := fastRetry(100)
	cfg.InitialDelay = 10 * time.Millisecond

	err := Retry(ctx, cfg, func() error { return errors.New("error") })

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Retry(ctx, fastRetry(3), func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRetry_CapsAtMaxDelay(t *testing.T) {
	var timestamps []time.Time
	cfg := RetryConfig{
		MaxRetries:   6,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     15 * time.Millisecond,
		Multiplier:   4.0,
	}

	_ = Retry(context.Background(), cfg, func() error {
		timestamps = append(timestamps, time.Now())
		return errors.New("error")
	})

	require.Len(t, timestamps, 7)
	for i := 2; i < len(timestamps); i++ {
		assert.LessOrEqual(t, timestamps[i].Sub(timestamps[i-1]).Milliseconds(), int64(60))
	}
}

func TestRetryWithResult_ReturnsValue(t *testing.T) {
	attempts := 0
	result, err := RetryWithResult(context.Background(), fastRetry(3), func() (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errors.New("error")
		}
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestRetryWithResult_ReturnsZeroOnFailure(t *testing.T) {
	result, err := RetryWithResult(context.Background(), fastRetry(1), func() (string, error) {
		return "partial", errors.New("error")
	})

	assert.Error(t, err)
	assert.Equal(t, "", result)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	assert.False(t, cfg.Jitter)
}

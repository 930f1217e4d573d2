package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPermanent = errors.New("permanent")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterRetryable(t *testing.T) {
	t.Parallel()
	attempts := 0
	got, err := RetryWithConfig(context.Background(), fastRetry(3), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", WrapRetryable(errPermanent)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	t.Parallel()
	attempts := 0
	_, err := RetryWithConfig(context.Background(), fastRetry(5), func() (int, error) {
		attempts++
		return 0, errPermanent
	})

	require.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, attempts)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	_, err := RetryWithConfig(context.Background(), fastRetry(3), func() (int, error) {
		attempts++
		return 0, ErrRateLimited
	})

	require.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestRetry_NoRetryRunsOnce(t *testing.T) {
	t.Parallel()
	attempts := 0
	_, err := RetryWithConfig(context.Background(), NoRetry(), func() (int, error) {
		attempts++
		return 0, ErrTimeout
	})

	require.ErrorIs(t, err, ErrTimeout)
	assert.NotContains(t, err.Error(), "attempts")
	assert.Equal(t, 1, attempts)
}

func TestRetry_ContextCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	_, err := RetryWithConfig(ctx, cfg, func() (int, error) {
		cancel()
		return 0, ErrRetryable
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay(t *testing.T) {
	t.Parallel()
	base, capDelay := 100*time.Millisecond, 500*time.Millisecond

	d := calculateDelay(0, base, capDelay)
	assert.GreaterOrEqual(t, d, 50*time.Millisecond)
	assert.Less(t, d, 100*time.Millisecond)

	d = calculateDelay(10, base, capDelay)
	assert.GreaterOrEqual(t, d, 250*time.Millisecond)
	assert.Less(t, d, capDelay)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errPermanent))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(WrapRetryable(errPermanent)))
	assert.NoError(t, WrapRetryable(nil))
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3*time.Second, ParseRetryAfter("3"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("soon"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-1"))
}

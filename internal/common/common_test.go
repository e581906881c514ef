package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	fast := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("boom")
			}
			return nil
		}, fast)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("boom")
		}, fast)
		require.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		permanent := &RetryableError{Err: errors.New("forbidden"), Retryable: false}
		err := WithRetry(context.Background(), func() error {
			calls++
			return permanent
		}, fast)
		assert.Same(t, permanent, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error { return errors.New("boom") },
			RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryOptions_Next(t *testing.T) {
	opts := RetryOptions{MaxDelay: time.Second, Multiplier: 3}.withDefaults()
	assert.Equal(t, 300*time.Millisecond, opts.next(100*time.Millisecond, errors.New("boom")))
	assert.Equal(t, time.Second, opts.next(500*time.Millisecond, errors.New("boom")))
	assert.Equal(t, time.Second, opts.next(time.Millisecond, ErrRateLimit))
	assert.Equal(t, "operation", opts.Operation)
	assert.NotNil(t, opts.Logger)
}

func TestWithRetry_WrapsLastError(t *testing.T) {
	last := errors.New("sheet unavailable")
	err := WithRetry(context.Background(), func() error { return last },
		RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, Operation: "read records"})
	require.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, last)
	assert.Contains(t, err.Error(), "read records after 2 attempts")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("404"), Retryable: false}))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	inner := errors.New("no such tab")
	err := NewUserError("could not read spreadsheet", inner)

	assert.Equal(t, "could not read spreadsheet: no such tab", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "bare", (&UserError{UserMessage: "bare"}).Error())

	msg, ok := UserMessage(fmt.Errorf("sync: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "could not read spreadsheet", msg)

	_, ok = UserMessage(inner)
	assert.False(t, ok)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "records", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"records":3`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLoggerAndComponent(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "debug", "console"))
	Component("storage").Debug("Applied migration", "version", 1)
	assert.Contains(t, buf.String(), "component=storage")
	assert.Contains(t, buf.String(), "version=1")

	assert.ErrorIs(t, SetupLogger(&buf, "loud", "console"), ErrInvalidConfig)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

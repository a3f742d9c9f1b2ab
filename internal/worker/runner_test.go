package worker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayti/agribot/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunnerSingleTask(t *testing.T) {
	r := NewRunner(testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	err := r.Start(context.Background(), "farming", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	require.NoError(t, err)
	<-started

	name, running := r.Running()
	assert.True(t, running)
	assert.Equal(t, "farming", name)

	err = r.Start(context.Background(), "other", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)

	done := r.Done()
	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not finish")
	}
}

func TestRunnerStopCancelsTask(t *testing.T) {
	r := NewRunner(testLogger())

	require.NoError(t, r.Start(context.Background(), "farming", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))

	assert.Eventually(t, func() bool {
		_, running := r.Running()
		return !running
	}, time.Second, 10*time.Millisecond)
}

func TestRunnerStopWhenIdle(t *testing.T) {
	r := NewRunner(testLogger())
	assert.NoError(t, r.Stop(context.Background()))
}

func TestRunnerRestartAfterCompletion(t *testing.T) {
	r := NewRunner(testLogger())

	require.NoError(t, r.Start(context.Background(), "one", func(ctx context.Context) error {
		return errors.New("boom")
	}))

	assert.Eventually(t, func() bool {
		_, running := r.Running()
		return !running
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, r.Start(context.Background(), "two", func(ctx context.Context) error {
		return nil
	}))
}

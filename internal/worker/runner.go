// Package worker serializes bot execution: at most one long-running task
// drives the game at a time.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dayti/agribot/internal/domain"
)

// Task is a long-running function driven by a cancellable context.
type Task func(ctx context.Context) error

// Runner owns at most one running task. Starting a second task while one is
// active fails with domain.ErrAlreadyRunning; exactly one goroutine sends
// input at any moment by construction.
type Runner struct {
	log *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	name   string
}

// NewRunner builds an idle runner.
func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log}
}

// Start launches task in a goroutine. The task receives a context derived
// from ctx that Stop cancels.
func (r *Runner) Start(ctx context.Context, name string, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.name = name

	r.log.Info("task started", "task", name)
	go func() {
		defer close(done)
		defer cancel()

		err := task(runCtx)
		switch {
		case err == nil:
			r.log.Info("task finished", "task", name)
		case errors.Is(err, context.Canceled):
			r.log.Info("task stopped", "task", name)
		default:
			r.log.Error("task failed", "task", name, "error", err)
		}

		r.mu.Lock()
		r.cancel = nil
		r.done = nil
		r.name = ""
		r.mu.Unlock()
	}()
	return nil
}

// Running reports whether a task is active, and its name.
func (r *Runner) Running() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.cancel != nil
}

// Stop cancels the active task, if any, and waits for it to finish or for
// ctx to expire. Stopping an idle runner is a no-op.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the active task finishes, or nil when
// idle.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

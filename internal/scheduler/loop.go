// Package scheduler repeats farming sessions forever, pausing long enough
// between runs for the selected crop to regrow.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dayti/agribot/internal/bucket"
	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/domain"
	"github.com/dayti/agribot/internal/plants"
)

const (
	// MaintenancePoll is how often the loop rechecks the clock while the
	// daily restart window is open.
	MaintenancePoll = time.Minute
	// PauseTick is the cancellation granularity of the inter-session pause.
	PauseTick = time.Second
)

// Runner is the session surface the loop drives. *session.Driver satisfies it.
type Runner interface {
	Run(ctx context.Context) error
}

// Loop runs sessions until the context is cancelled.
type Loop struct {
	cfg    *config.Config
	runner Runner
	log    *slog.Logger
	now    func() time.Time

	maintenancePoll time.Duration
	pauseTick       time.Duration
}

// NewLoop wires a scheduler loop. A nil now defaults to time.Now.
func NewLoop(cfg *config.Config, runner Runner, now func() time.Time, log *slog.Logger) *Loop {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		cfg:             cfg,
		runner:          runner,
		log:             log,
		now:             now,
		maintenancePoll: MaintenancePoll,
		pauseTick:       PauseTick,
	}
}

// Run repeats sessions until ctx is cancelled. A failed session ends its
// cycle and the loop waits out the normal pause before trying again; only
// cancellation stops the loop.
func (l *Loop) Run(ctx context.Context) error {
	pause := l.Pause()
	l.log.Info("continuous mode started", "pause", pause.String())

	for count := 1; ; count++ {
		if err := l.waitOutMaintenance(ctx); err != nil {
			return err
		}

		l.log.Info("starting session", "number", count)
		if err := l.runner.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			switch {
			case errors.Is(err, domain.ErrMaintenanceWindow):
				l.log.Info("session skipped, maintenance window opened")
			case errors.Is(err, domain.ErrNoStations):
				l.log.Warn("no stations configured, waiting for configuration")
			default:
				l.log.Error("session failed", "error", err)
			}
		}

		if err := l.sleep(ctx, pause); err != nil {
			return err
		}
	}
}

// Pause returns the inter-session pause: the selected plant's growth time
// when the plant is known, the configured session pause otherwise.
func (l *Loop) Pause() time.Duration {
	spec, err := plants.Lookup(l.cfg.PlantSettings.PlantType)
	if err != nil {
		return l.cfg.PauseDuration()
	}
	return plants.GrowthDuration(spec, l.cfg.PlantSettings.GrowthBoost)
}

// waitOutMaintenance blocks while the daily restart window is open,
// rechecking the clock once per poll interval.
func (l *Loop) waitOutMaintenance(ctx context.Context) error {
	for bucket.InMaintenanceWindow(l.now()) {
		l.log.Info("maintenance window open, waiting")
		if err := l.sleep(ctx, l.maintenancePoll); err != nil {
			return err
		}
	}
	return nil
}

// sleep waits for d, waking at the tick interval so cancellation is prompt.
func (l *Loop) sleep(ctx context.Context, d time.Duration) error {
	deadline := l.now().Add(d)
	ticker := time.NewTicker(l.pauseTick)
	defer ticker.Stop()

	for l.now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

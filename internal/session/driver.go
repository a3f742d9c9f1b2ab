// Package session orchestrates one full farming pass: connect, reconcile the
// bucket regime with the time of day, work every station, then disconnect.
// Bucket state is persisted after each action that changes it, so an aborted
// session resumes cleanly.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayti/agribot/internal/bucket"
	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/domain"
	"github.com/dayti/agribot/internal/game"
	"github.com/dayti/agribot/internal/input"
	"github.com/dayti/agribot/internal/logtail"
	"github.com/dayti/agribot/internal/metrics"
)

// Watcher is the log-pattern surface the driver needs. *logtail.Detector
// satisfies it.
type Watcher interface {
	Poll() error
	Detected(key string) bool
	Reset(keys ...string) error
}

// Driver runs farming sessions.
type Driver struct {
	cfg     *config.Config
	client  game.Client
	machine *bucket.Machine
	watch   Watcher
	log     *slog.Logger

	// Pacing, overridable in tests.
	depositDelay     time.Duration
	stationOpenDelay time.Duration
	drainDelay       time.Duration
}

// NewDriver wires a session driver.
func NewDriver(cfg *config.Config, client game.Client, machine *bucket.Machine, watch Watcher, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		cfg:              cfg,
		client:           client,
		machine:          machine,
		watch:            watch,
		log:              log,
		depositDelay:     DepositDelay,
		stationOpenDelay: StationOpenDelay,
		drainDelay:       DrainDelay,
	}
}

// Run executes one complete session. It returns domain.ErrMaintenanceWindow
// when the daily restart window is open and domain.ErrNoStations when there
// is nothing to do; both are expected conditions for the scheduler, not
// failures.
func (d *Driver) Run(ctx context.Context) error {
	start := time.Now()

	if d.machine.InMaintenance() {
		metrics.SessionsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return domain.ErrMaintenanceWindow
	}
	if len(d.cfg.Stations) == 0 {
		metrics.SessionsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return domain.ErrNoStations
	}

	d.log.Info("session starting", "stations", len(d.cfg.Stations))

	if err := d.run(ctx); err != nil {
		metrics.SessionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return err
	}

	metrics.SessionsTotal.WithLabelValues(metrics.ResultCompleted).Inc()
	metrics.SessionDuration.Observe(time.Since(start).Seconds())
	d.log.Info("session finished", "duration", time.Since(start).Round(time.Second).String())
	return nil
}

func (d *Driver) run(ctx context.Context) error {
	if err := d.client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if err := d.reconcileBuckets(ctx); err != nil {
		return fmt.Errorf("failed to reconcile bucket state: %w", err)
	}

	// One decision per session; the water lasts twelve hours.
	refill := d.machine.ShouldRefillWater(d.cfg.PauseDuration())
	if refill {
		d.log.Info("water refill due this session")
	}

	completed := 0
	for i, st := range d.cfg.Stations {
		if err := ctx.Err(); err != nil {
			return err
		}
		last := i == len(d.cfg.Stations)-1
		if err := d.processStation(ctx, st, refill, last); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// A single bad station does not end the session.
			d.log.Error("station failed, continuing", "station", st.Name, "error", err)
			continue
		}
		completed++
		metrics.StationsProcessed.Inc()
	}
	d.log.Info("stations processed", "completed", completed, "total", len(d.cfg.Stations))

	if refill {
		if err := d.drainBuckets(ctx); err != nil {
			return err
		}
		if err := d.machine.StampRefill(); err != nil {
			return err
		}
		metrics.WaterRefills.Inc()
	} else if d.machine.State().LastWaterRefill == nil {
		// First session after a manual fill: start the twelve-hour clock
		// without spending any buckets.
		if err := d.machine.StampRefill(); err != nil {
			return err
		}
	}

	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// reconcileBuckets brings the persisted bucket regime in line with the
// current time window, performing the equipment moves a transition requires.
func (d *Driver) reconcileBuckets(ctx context.Context) error {
	if d.machine.FirstRun() {
		// The operator pre-loads slot one by hand before the first launch.
		return d.machine.InitFirstRun()
	}

	mode, need := d.machine.NeedsTransition()
	if !need {
		return nil
	}

	switch mode {
	case bucket.ModeDrop:
		return d.morningTransition(ctx)
	case bucket.ModeRetrieve:
		return d.afternoonTransition(ctx)
	default:
		return d.machine.MarkNormal()
	}
}

// morningTransition discards all but one bucket so the drop-window fill
// protocol can run on a single bucket.
func (d *Driver) morningTransition(ctx context.Context) error {
	d.log.Info("entering drop window, discarding surplus buckets")

	if err := d.client.Home(ctx, d.cfg.HomesSpecial.Coffre1); err != nil {
		return err
	}
	if err := d.client.SelectSlot(ctx, d.machine.State().Slot); err != nil {
		return err
	}
	if err := d.client.DropItems(ctx, bucket.DropDiscardCount); err != nil {
		return err
	}
	return d.machine.ApplyDrop()
}

// afternoonTransition pulls a fresh stack of sixteen empty buckets out of
// the storage chest.
func (d *Driver) afternoonTransition(ctx context.Context) error {
	d.log.Info("leaving drop window, retrieving bucket stack")

	if err := d.client.Home(ctx, d.cfg.HomesSpecial.Coffre2); err != nil {
		return err
	}
	if err := d.client.ClickCurrent(ctx, input.RightButton); err != nil {
		return err
	}
	if err := d.client.Pause(ctx, d.stationOpenDelay); err != nil {
		return err
	}
	if err := d.client.ShiftClickAt(ctx, config.PosBucketChest); err != nil {
		return err
	}
	if err := d.client.PressKey(ctx, game.KeyEscape); err != nil {
		return err
	}
	if err := d.client.SelectSlot(ctx, d.machine.State().Slot); err != nil {
		return err
	}
	return d.machine.ApplyRetrieve()
}

// processStation travels to one station, harvests and replants, and waters
// it when a refill is due.
func (d *Driver) processStation(ctx context.Context, st domain.Station, refill, last bool) error {
	d.log.Info("processing station", "station", st.Name)

	if err := d.client.Home(ctx, st.Name); err != nil {
		return err
	}

	// Empty hand before opening; a held bucket would be consumed by the
	// station straight away.
	if err := d.client.PressKey(ctx, KeyEmptyHand); err != nil {
		return err
	}
	if err := d.client.ClickCurrent(ctx, input.RightButton); err != nil {
		return err
	}
	if err := d.client.Pause(ctx, d.stationOpenDelay); err != nil {
		return err
	}

	if err := d.harvestAndPlant(ctx, st); err != nil {
		return err
	}

	if refill {
		if _, err := d.fillStation(ctx, last); err != nil {
			return err
		}
	}
	return nil
}

// harvestAndPlant clicks the harvest spot with both buttons so every plant
// type is collected, then replants while crouched.
func (d *Driver) harvestAndPlant(ctx context.Context, st domain.Station) error {
	if err := d.client.Harvest(ctx, st, input.RightButton); err != nil {
		return err
	}
	if err := d.client.Harvest(ctx, st, input.LeftButton); err != nil {
		return err
	}
	if err := d.client.PressKey(ctx, game.KeyEscape); err != nil {
		return err
	}
	if err := d.client.PressKey(ctx, KeyEmptyHand); err != nil {
		return err
	}
	return d.client.PlantSeed(ctx)
}

// fillStation waters the current station until the full notice appears in
// the log or a deposit cap is reached. It returns whether the station
// reported full.
func (d *Driver) fillStation(ctx context.Context, last bool) (bool, error) {
	state := d.machine.State()
	d.log.Info("filling station", "slot", state.Slot, "full_buckets", state.FullInSlot)

	if err := d.client.SelectSlot(ctx, state.Slot); err != nil {
		return false, err
	}
	if err := d.watch.Reset(logtail.KeyStationFull); err != nil {
		d.log.Warn("failed to reset station-full detection", "error", err)
	}

	var full bool
	var err error
	if state.Count == bucket.CapacitySingle {
		full, err = d.fillSingle(ctx)
	} else {
		full, err = d.fillFromStack(ctx, last)
	}
	if err != nil {
		return false, err
	}

	// The empty-bucket right click may have opened the station menu; the
	// chat-then-escape tap closes whatever is open.
	if err := d.client.CloseMenus(ctx); err != nil {
		return false, err
	}
	return full, nil
}

// fillSingle is the drop-window protocol: refill the lone bucket, deposit,
// check, repeat.
func (d *Driver) fillSingle(ctx context.Context) (bool, error) {
	for fills := 0; fills < SingleFillCap; fills++ {
		if err := d.client.RefillBuckets(ctx); err != nil {
			return false, err
		}
		if err := d.client.Pause(ctx, d.depositDelay); err != nil {
			return false, err
		}
		if err := d.deposit(ctx); err != nil {
			return false, err
		}
		if d.stationFull() {
			d.log.Info("station full", "fills", fills+1)
			return true, nil
		}
	}
	d.log.Warn("single-bucket fill cap reached")
	return false, nil
}

// fillFromStack is the 16-bucket protocol: spend the full buckets carried
// over from the previous station, toggling to the other slot and
// bulk-refilling whenever the active slot runs out.
func (d *Driver) fillFromStack(ctx context.Context, last bool) (bool, error) {
	if d.machine.State().FullInSlot == 0 {
		if err := d.bulkRefill(ctx); err != nil {
			return false, err
		}
	}

	full := false
	for deposits := 0; !full; {
		if err := d.deposit(ctx); err != nil {
			return false, err
		}
		deposits++
		if err := d.machine.DecrementFull(); err != nil {
			return false, err
		}

		full = d.stationFull()
		if full {
			d.log.Info("station full", "deposits", deposits, "full_buckets_left", d.machine.State().FullInSlot)
		}

		if d.machine.State().FullInSlot == 0 && !full {
			slot, err := d.machine.ToggleSlot()
			if err != nil {
				return false, err
			}
			if err := d.client.SelectSlot(ctx, slot); err != nil {
				return false, err
			}
			if err := d.bulkRefill(ctx); err != nil {
				return false, err
			}
		}

		if deposits >= DepositCap {
			d.log.Warn("deposit cap reached, moving on")
			break
		}
	}

	// The last station absorbs whatever is left so no full bucket carries
	// into the next session.
	if last {
		for d.machine.State().FullInSlot > 0 {
			if err := d.deposit(ctx); err != nil {
				return false, err
			}
			if err := d.machine.DecrementFull(); err != nil {
				return false, err
			}
		}
	}
	return full, nil
}

// bulkRefill fills every bucket in the active slot with the server macro.
func (d *Driver) bulkRefill(ctx context.Context) error {
	if err := d.client.RefillBuckets(ctx); err != nil {
		return err
	}
	if err := d.client.Pause(ctx, d.depositDelay); err != nil {
		return err
	}
	metrics.BucketBulkRefills.Inc()
	return d.machine.SetFull(bucket.CapacityFull)
}

// deposit empties one bucket into the station and polls the log afterwards.
func (d *Driver) deposit(ctx context.Context) error {
	if err := d.client.ClickCurrent(ctx, input.RightButton); err != nil {
		return err
	}
	if err := d.client.Pause(ctx, d.depositDelay); err != nil {
		return err
	}
	metrics.BucketDeposits.Inc()
	if err := d.watch.Poll(); err != nil {
		d.log.Warn("log poll failed", "error", err)
		metrics.LogReadErrors.Inc()
	}
	return nil
}

func (d *Driver) stationFull() bool {
	return d.watch.Detected(logtail.KeyStationFull)
}

// drainBuckets empties any remaining full buckets at session end so the
// next session starts from a clean count.
func (d *Driver) drainBuckets(ctx context.Context) error {
	state := d.machine.State()
	if state.Count == bucket.CapacitySingle || state.FullInSlot == 0 {
		return nil
	}

	d.log.Info("draining remaining full buckets", "count", state.FullInSlot)
	if err := d.client.SelectSlot(ctx, state.Slot); err != nil {
		return err
	}
	for d.machine.State().FullInSlot > 0 {
		if err := d.client.ClickCurrent(ctx, input.RightButton); err != nil {
			return err
		}
		if err := d.client.Pause(ctx, d.drainDelay); err != nil {
			return err
		}
		if err := d.machine.DecrementFull(); err != nil {
			return err
		}
	}
	return nil
}

package session

import (
	"context"
	"fmt"

	"github.com/dayti/agribot/internal/bucket"
	"github.com/dayti/agribot/internal/domain"
)

// One-off operations for exercising parts of a session in isolation from
// the command line, with the same connect/disconnect framing as a full run.

// RunSingle processes just the named station: connect, reconcile buckets,
// harvest, plant and water that one station, disconnect.
func (d *Driver) RunSingle(ctx context.Context, name string) error {
	if d.machine.InMaintenance() {
		return domain.ErrMaintenanceWindow
	}

	var station domain.Station
	found := false
	for _, st := range d.cfg.Stations {
		if st.Name == name {
			station = st
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("station %q is not configured", name)
	}

	if err := d.client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	if err := d.reconcileBuckets(ctx); err != nil {
		return err
	}

	refill := d.machine.ShouldRefillWater(d.cfg.PauseDuration())
	if err := d.processStation(ctx, station, refill, true); err != nil {
		return err
	}
	return d.client.Disconnect(ctx)
}

// RunTeleportCircuit visits every configured station without touching them,
// verifying the home names resolve in-game.
func (d *Driver) RunTeleportCircuit(ctx context.Context) error {
	if len(d.cfg.Stations) == 0 {
		return domain.ErrNoStations
	}
	if err := d.client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	for _, st := range d.cfg.Stations {
		if err := d.client.Home(ctx, st.Name); err != nil {
			return err
		}
	}
	return d.client.Disconnect(ctx)
}

// RunTransition forces a bucket transition regardless of the last recorded
// mode, for verifying the chest positions and drop counts.
func (d *Driver) RunTransition(ctx context.Context, mode bucket.Mode) error {
	if err := d.client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	var err error
	switch mode {
	case bucket.ModeDrop:
		err = d.morningTransition(ctx)
	case bucket.ModeRetrieve:
		err = d.afternoonTransition(ctx)
	default:
		err = fmt.Errorf("no manual transition for mode %q", mode)
	}
	if err != nil {
		return err
	}
	return d.client.Disconnect(ctx)
}

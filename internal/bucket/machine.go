package bucket

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// WaterDuration is how long a full station keeps its plants watered.
	WaterDuration = 12 * time.Hour
	// RefillMargin is subtracted from WaterDuration so a refill lands one
	// session early rather than one session late.
	RefillMargin = 10 * time.Minute
)

// Machine owns the persisted bucket state and decides, from the wall clock,
// which regime transitions and refills are due. It performs no input itself;
// the session driver asks it what to do and reports back what was done.
type Machine struct {
	store *Store
	state State
	now   func() time.Time
	log   *slog.Logger
}

// NewMachine loads state from the store. A nil now defaults to time.Now.
func NewMachine(store *Store, now func() time.Time, log *slog.Logger) *Machine {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &Machine{
		store: store,
		state: store.Load(),
		now:   now,
		log:   log,
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Window returns the regime in effect right now.
func (m *Machine) Window() Mode {
	return WindowAt(m.now())
}

// InMaintenance reports whether the server restart window is open.
func (m *Machine) InMaintenance() bool {
	return InMaintenanceWindow(m.now())
}

// FirstRun reports whether no transition has ever been recorded.
func (m *Machine) FirstRun() bool {
	return m.state.LastMode == ModeNone
}

// NeedsTransition reports the regime to transition into, if the current
// window differs from the last one applied. Transitions are idempotent per
// window: once applied, the same window never triggers again.
func (m *Machine) NeedsTransition() (Mode, bool) {
	w := m.Window()
	if w == m.state.LastMode {
		return w, false
	}
	return w, true
}

// InitFirstRun records the baseline for a state file that has never seen a
// transition: slot one, no full buckets, and the capacity the current window
// calls for. The chest trips of a real transition are skipped because the
// player is assumed to start with matching equipment.
func (m *Machine) InitFirstRun() error {
	w := m.Window()
	m.state.Slot = SlotOne
	m.state.FullInSlot = 0
	if w == ModeDrop {
		m.state.Count = CapacitySingle
	} else {
		m.state.Count = CapacityFull
	}
	m.state.LastMode = w
	m.log.Info("initialized bucket state", "mode", string(w), "count", m.state.Count)
	return m.save()
}

// ApplyDrop records the morning transition after the surplus buckets have
// been discarded: one bucket remains, in the same slot.
func (m *Machine) ApplyDrop() error {
	m.state.Count = CapacitySingle
	m.state.FullInSlot = 0
	m.state.LastMode = ModeDrop
	m.log.Info("applied drop transition", "slot", m.state.Slot)
	return m.save()
}

// ApplyRetrieve records the afternoon transition after a fresh stack of
// sixteen empty buckets has been taken from the chest.
func (m *Machine) ApplyRetrieve() error {
	m.state.Count = CapacityFull
	m.state.FullInSlot = 0
	m.state.LastMode = ModeRetrieve
	m.log.Info("applied retrieve transition", "slot", m.state.Slot)
	return m.save()
}

// MarkNormal records entry into the normal window without equipment changes.
func (m *Machine) MarkNormal() error {
	m.state.LastMode = ModeNormal
	return m.save()
}

// SetFull records how many buckets in the active slot are full.
func (m *Machine) SetFull(n int) error {
	if n < 0 || n > m.state.Count {
		return fmt.Errorf("full bucket count %d out of range [0,%d]", n, m.state.Count)
	}
	m.state.FullInSlot = n
	return m.save()
}

// DecrementFull records one full bucket emptied into a station.
func (m *Machine) DecrementFull() error {
	if m.state.FullInSlot <= 0 {
		return fmt.Errorf("no full buckets to deposit")
	}
	m.state.FullInSlot--
	return m.save()
}

// ToggleSlot flips between the two bucket slots and returns the new slot.
func (m *Machine) ToggleSlot() (int, error) {
	if m.state.Slot == SlotOne {
		m.state.Slot = SlotTwo
	} else {
		m.state.Slot = SlotOne
	}
	m.log.Debug("toggled bucket slot", "slot", m.state.Slot)
	return m.state.Slot, m.save()
}

// ShouldRefillWater reports whether the stations will run dry before the end
// of the pause that follows the next session. With no recorded refill the
// answer is false; StampRefill at the end of that session starts the clock.
func (m *Machine) ShouldRefillWater(pause time.Duration) bool {
	if m.state.LastWaterRefill == nil {
		return false
	}
	last := time.Unix(int64(*m.state.LastWaterRefill), 0)
	elapsed := m.now().Sub(last)
	return elapsed+pause >= WaterDuration-RefillMargin
}

// StampRefill records the current time as the last water refill.
func (m *Machine) StampRefill() error {
	ts := float64(m.now().Unix())
	m.state.LastWaterRefill = &ts
	m.log.Info("stamped water refill time")
	return m.save()
}

func (m *Machine) save() error {
	if err := m.store.Save(m.state); err != nil {
		return fmt.Errorf("failed to persist bucket state: %w", err)
	}
	return nil
}

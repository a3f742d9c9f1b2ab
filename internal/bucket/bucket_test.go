package bucket

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 14, hour, min, sec, 0, time.Local)
}

func TestWindowAt(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want Mode
	}{
		{name: "midnight is normal", t: at(0, 0, 0), want: ModeNormal},
		{name: "just before drop start", t: at(6, 29, 59), want: ModeNormal},
		{name: "drop start inclusive", t: at(6, 30, 0), want: ModeDrop},
		{name: "mid morning", t: at(9, 0, 0), want: ModeDrop},
		{name: "drop end inclusive", t: at(11, 30, 0), want: ModeDrop},
		{name: "just after drop end", t: at(11, 30, 1), want: ModeRetrieve},
		{name: "evening", t: at(22, 0, 0), want: ModeRetrieve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WindowAt(tt.t))
		})
	}
}

func TestInMaintenanceWindow(t *testing.T) {
	assert.False(t, InMaintenanceWindow(at(5, 49, 59)))
	assert.True(t, InMaintenanceWindow(at(5, 50, 0)))
	assert.True(t, InMaintenanceWindow(at(6, 15, 0)))
	assert.True(t, InMaintenanceWindow(at(6, 30, 0)))
	assert.False(t, InMaintenanceWindow(at(6, 30, 1)))
}

func TestStoreLoadMissingFile(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "state.json"))
	s := st.Load()
	assert.Equal(t, DefaultState(), s)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st := NewStore(path)

	ts := 1700000000.0
	in := State{
		LastMode:        ModeRetrieve,
		Slot:            SlotTwo,
		FullInSlot:      7,
		Count:           CapacityFull,
		LastWaterRefill: &ts,
	}
	require.NoError(t, st.Save(in))

	out := st.Load()
	assert.Equal(t, in.LastMode, out.LastMode)
	assert.Equal(t, in.Slot, out.Slot)
	assert.Equal(t, in.FullInSlot, out.FullInSlot)
	assert.Equal(t, in.Count, out.Count)
	require.NotNil(t, out.LastWaterRefill)
	assert.Equal(t, ts, *out.LastWaterRefill)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path).Load()
	assert.Equal(t, DefaultState(), s)
}

func TestStoreLoadNormalizesInvalidState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	raw := `{"last_bucket_mode":"weird","bucket_slot":9,"full_buckets_in_slot":-3,"bucket_count":40,"last_water_refill_time":null}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s := NewStore(path).Load()
	assert.Equal(t, ModeNone, s.LastMode)
	assert.Equal(t, SlotOne, s.Slot)
	assert.Equal(t, 0, s.FullInSlot)
	assert.Equal(t, CapacityFull, s.Count)
	assert.Nil(t, s.LastWaterRefill)
}

func newTestMachine(t *testing.T, now time.Time) *Machine {
	t.Helper()
	st := NewStore(filepath.Join(t.TempDir(), "state.json"))
	return NewMachine(st, func() time.Time { return now }, testLogger())
}

func TestMachineFirstRun(t *testing.T) {
	t.Run("drop window caps at one bucket", func(t *testing.T) {
		m := newTestMachine(t, at(7, 0, 0))
		require.True(t, m.FirstRun())

		require.NoError(t, m.InitFirstRun())
		s := m.State()
		assert.Equal(t, ModeDrop, s.LastMode)
		assert.Equal(t, SlotOne, s.Slot)
		assert.Equal(t, CapacitySingle, s.Count)
		assert.Equal(t, 0, s.FullInSlot)
		assert.False(t, m.FirstRun())
	})

	t.Run("retrieve window keeps full stack", func(t *testing.T) {
		m := newTestMachine(t, at(15, 0, 0))
		require.NoError(t, m.InitFirstRun())
		s := m.State()
		assert.Equal(t, ModeRetrieve, s.LastMode)
		assert.Equal(t, CapacityFull, s.Count)
	})
}

func TestMachineNeedsTransition(t *testing.T) {
	m := newTestMachine(t, at(7, 0, 0))
	require.NoError(t, m.InitFirstRun())

	// Same window, already applied.
	mode, need := m.NeedsTransition()
	assert.Equal(t, ModeDrop, mode)
	assert.False(t, need)

	// Clock moves past the drop end.
	m.now = func() time.Time { return at(14, 0, 0) }
	mode, need = m.NeedsTransition()
	assert.Equal(t, ModeRetrieve, mode)
	assert.True(t, need)

	require.NoError(t, m.ApplyRetrieve())
	_, need = m.NeedsTransition()
	assert.False(t, need)

	s := m.State()
	assert.Equal(t, CapacityFull, s.Count)
	assert.Equal(t, 0, s.FullInSlot)
}

func TestMachineApplyDrop(t *testing.T) {
	m := newTestMachine(t, at(6, 45, 0))
	require.NoError(t, m.SetFull(5))

	require.NoError(t, m.ApplyDrop())
	s := m.State()
	assert.Equal(t, ModeDrop, s.LastMode)
	assert.Equal(t, CapacitySingle, s.Count)
	assert.Equal(t, 0, s.FullInSlot)
}

func TestMachineFullBookkeeping(t *testing.T) {
	m := newTestMachine(t, at(15, 0, 0))

	require.NoError(t, m.SetFull(CapacityFull))
	require.NoError(t, m.DecrementFull())
	assert.Equal(t, CapacityFull-1, m.State().FullInSlot)

	assert.Error(t, m.SetFull(CapacityFull+1))
	assert.Error(t, m.SetFull(-1))

	require.NoError(t, m.SetFull(0))
	assert.Error(t, m.DecrementFull())
}

func TestMachineToggleSlot(t *testing.T) {
	m := newTestMachine(t, at(15, 0, 0))
	assert.Equal(t, SlotOne, m.State().Slot)

	slot, err := m.ToggleSlot()
	require.NoError(t, err)
	assert.Equal(t, SlotTwo, slot)

	slot, err = m.ToggleSlot()
	require.NoError(t, err)
	assert.Equal(t, SlotOne, slot)
}

func TestMachineShouldRefillWater(t *testing.T) {
	pause := 15 * time.Minute

	t.Run("no recorded refill", func(t *testing.T) {
		m := newTestMachine(t, at(15, 0, 0))
		assert.False(t, m.ShouldRefillWater(pause))
	})

	t.Run("fresh refill", func(t *testing.T) {
		m := newTestMachine(t, at(15, 0, 0))
		require.NoError(t, m.StampRefill())
		assert.False(t, m.ShouldRefillWater(pause))
	})

	t.Run("due when water runs out during next pause", func(t *testing.T) {
		now := at(15, 0, 0)
		m := newTestMachine(t, now)
		require.NoError(t, m.StampRefill())

		// 11h35m elapsed + 15m pause = 11h50m, exactly the margin boundary.
		m.now = func() time.Time { return now.Add(11*time.Hour + 35*time.Minute) }
		assert.True(t, m.ShouldRefillWater(pause))

		m.now = func() time.Time { return now.Add(11*time.Hour + 34*time.Minute) }
		assert.False(t, m.ShouldRefillWater(pause))
	})
}

func TestMachineStatePersistsAcrossMachines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)
	now := at(15, 0, 0)

	m1 := NewMachine(store, func() time.Time { return now }, testLogger())
	require.NoError(t, m1.InitFirstRun())
	require.NoError(t, m1.SetFull(9))
	_, err := m1.ToggleSlot()
	require.NoError(t, err)

	m2 := NewMachine(store, func() time.Time { return now }, testLogger())
	s := m2.State()
	assert.Equal(t, ModeRetrieve, s.LastMode)
	assert.Equal(t, 9, s.FullInSlot)
	assert.Equal(t, SlotTwo, s.Slot)
}

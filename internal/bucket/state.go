// Package bucket tracks the consumable water buckets across the three daily
// time windows and persists that state between runs. The state file is the
// bot's only durable artifact; it is rewritten synchronously after every
// equipment-affecting action so an aborted session never loses progress.
package bucket

import (
	"encoding/json"
	"fmt"
	"os"
)

// Mode is the bucket-management regime recorded after the last transition.
type Mode string

const (
	// ModeNone means no transition has ever been applied (fresh state file).
	ModeNone Mode = ""
	// ModeNormal is the early-morning regime before the drop window opens.
	ModeNormal Mode = "normal"
	// ModeDrop is the 1-bucket regime of the drop window.
	ModeDrop Mode = "drop"
	// ModeRetrieve is the 16-bucket regime after the retrieve boundary.
	ModeRetrieve Mode = "retrieve"
)

const (
	SlotOne = 1
	SlotTwo = 2

	// CapacitySingle is the bucket count kept during the drop window.
	CapacitySingle = 1
	// CapacityFull is the bucket count outside the drop window.
	CapacityFull = 16
	// DropDiscardCount is how many buckets the morning transition throws away.
	DropDiscardCount = CapacityFull - CapacitySingle
)

// State is the persisted bucket record. Field names match the on-disk JSON
// written by earlier versions of the bot, so existing state files load as-is.
type State struct {
	LastMode   Mode     `json:"last_bucket_mode"`
	Slot       int      `json:"bucket_slot"`
	FullInSlot int      `json:"full_buckets_in_slot"`
	Count      int      `json:"bucket_count"`
	// LastWaterRefill is a unix timestamp in seconds; nil means the stations
	// were last filled manually and the clock has not started.
	LastWaterRefill *float64 `json:"last_water_refill_time"`
}

// DefaultState is the state assumed when no file exists: 16 buckets in slot
// one, none full, no transition applied yet.
func DefaultState() State {
	return State{
		LastMode:   ModeNone,
		Slot:       SlotOne,
		FullInSlot: 0,
		Count:      CapacityFull,
	}
}

// normalize clamps a loaded state back inside its invariants. Hand-edited or
// partially written files degrade to something safe instead of failing.
func (s *State) normalize() {
	if s.Slot != SlotOne && s.Slot != SlotTwo {
		s.Slot = SlotOne
	}
	if s.Count != CapacitySingle && s.Count != CapacityFull {
		s.Count = CapacityFull
	}
	if s.FullInSlot < 0 {
		s.FullInSlot = 0
	}
	if s.FullInSlot > s.Count {
		s.FullInSlot = s.Count
	}
	switch s.LastMode {
	case ModeNone, ModeNormal, ModeDrop, ModeRetrieve:
	default:
		s.LastMode = ModeNone
	}
}

// Store loads and saves the state file.
type Store struct {
	path string
}

// NewStore creates a store for the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the state file. A missing or corrupt file yields DefaultState.
func (st *Store) Load() State {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return DefaultState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultState()
	}
	s.normalize()
	return s
}

// Save rewrites the state file synchronously.
func (st *Store) Save(s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode bucket state: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bucket state: %w", err)
	}
	return nil
}

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNoStations        = "no stations configured"
	ErrMsgMaintenanceWindow = "inside maintenance window"
	ErrMsgAlreadyRunning    = "a task is already running"
	ErrMsgUnknownPlant      = "unknown plant"
	ErrMsgHarvestPosMissing = "harvest position not configured"
)

// Domain errors
var (
	// ErrNoStations is returned when a session starts with an empty station list
	ErrNoStations = errors.New(ErrMsgNoStations)

	// ErrMaintenanceWindow is returned when a session would start during the
	// daily server restart window; callers retry later
	ErrMaintenanceWindow = errors.New(ErrMsgMaintenanceWindow)

	// ErrAlreadyRunning is returned when a second bot task is started while
	// one is still live
	ErrAlreadyRunning = errors.New(ErrMsgAlreadyRunning)

	// ErrUnknownPlant is returned for plant names absent from the growth table
	ErrUnknownPlant = errors.New(ErrMsgUnknownPlant)

	// ErrHarvestPosMissing is returned when neither the station nor the
	// defaults carry a harvest click position
	ErrHarvestPosMissing = errors.New(ErrMsgHarvestPosMissing)
)

package bucket

import "time"

// Daily boundaries, in seconds since local midnight. The drop window is
// inclusive on both ends; anything strictly after its end is retrieve.
const (
	maintenanceStartSec = (5*60 + 50) * 60 // 05:50:00
	dropStartSec        = (6*60 + 30) * 60 // 06:30:00
	dropEndSec          = (11*60 + 30) * 60 // 11:30:00
)

// WindowAt returns the bucket regime in effect at t, using t's location.
func WindowAt(t time.Time) Mode {
	s := secondsOfDay(t)
	switch {
	case s >= dropStartSec && s <= dropEndSec:
		return ModeDrop
	case s > dropEndSec:
		return ModeRetrieve
	default:
		return ModeNormal
	}
}

// InMaintenanceWindow reports whether t falls in the daily server restart
// window, during which no session may start.
func InMaintenanceWindow(t time.Time) bool {
	s := secondsOfDay(t)
	return s >= maintenanceStartSec && s <= dropStartSec
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

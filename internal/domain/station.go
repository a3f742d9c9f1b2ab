package domain

// Position is a screen coordinate used for simulated clicks.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsZero reports whether the position was never configured.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Station is a named teleport destination representing one farming plot.
// Stations are immutable during a session; the configuration editor is the
// only writer.
type Station struct {
	Name       string    `json:"name"`
	HarvestPos *Position `json:"harvest_pos,omitempty"`
}

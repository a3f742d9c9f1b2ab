package plants

import (
	"fmt"
	"math"
	"time"
)

// ClickButton identifies which mouse button harvests a plant.
type ClickButton string

const (
	ClickLeft  ClickButton = "left"
	ClickRight ClickButton = "right"
)

// GrowthMinutes computes the total growth time in minutes with the boost
// percentage applied, rounded up to the next whole minute.
//
// For multi-fruit plants the boost only divides the stem time; fruit cycles
// are unaffected. For single-yield plants the boost divides the whole
// stem+fruit duration. Negative boosts are clamped to 0.
func GrowthMinutes(spec Spec, boost float64) int {
	if boost < 0 {
		boost = 0
	}
	divisor := 1 + boost/100

	var total float64
	if spec.FruitCount > 1 {
		total = float64(spec.StemMinutes)/divisor + float64(spec.FruitCount*spec.FruitMinutes)
	} else {
		total = float64(spec.StemMinutes+spec.FruitMinutes) / divisor
	}

	return int(math.Ceil(total))
}

// GrowthDuration is GrowthMinutes as a time.Duration.
func GrowthDuration(spec Spec, boost float64) time.Duration {
	return time.Duration(GrowthMinutes(spec, boost)) * time.Minute
}

// HarvestClick determines the mouse button used to harvest a plant.
// Plants with a fruit cycle are picked with a right click, single-yield
// plants are broken with a left click. Unknown plants default to right,
// which is harmless on any plant.
func HarvestClick(name string) ClickButton {
	spec, ok := table[name]
	if !ok {
		return ClickRight
	}
	if spec.FruitMinutes > 0 {
		return ClickRight
	}
	return ClickLeft
}

// FormatMinutes renders a minute count as "1h 20m", "2h" or "40m".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

package input

import (
	"math/rand"
	"time"
)

// MinDelay is the floor applied to every humanized delay.
const MinDelay = 50 * time.Millisecond

// Humanize returns base adjusted by a uniform random amount within
// ±variation*base, floored at MinDelay. Variation is a fraction (0.25 means
// ±25%). This keeps input pacing irregular the way a player's is.
func Humanize(base time.Duration, variation float64) time.Duration {
	if variation < 0 {
		variation = 0
	}
	spread := float64(base) * variation
	d := time.Duration(float64(base) + (rand.Float64()*2-1)*spread)
	if d < MinDelay {
		return MinDelay
	}
	return d
}

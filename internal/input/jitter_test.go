package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeStaysWithinBounds(t *testing.T) {
	base := 500 * time.Millisecond
	variation := 0.25

	for i := 0; i < 200; i++ {
		d := Humanize(base, variation)
		assert.GreaterOrEqual(t, d, 375*time.Millisecond)
		assert.LessOrEqual(t, d, 625*time.Millisecond)
	}
}

func TestHumanizeFlooredAtMinDelay(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.GreaterOrEqual(t, Humanize(10*time.Millisecond, 0.5), MinDelay)
	}
}

func TestHumanizeNegativeVariation(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, Humanize(300*time.Millisecond, -1))
}

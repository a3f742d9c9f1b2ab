package plants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayti/agribot/internal/domain"
)

func TestGrowthMinutes(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		boost    float64
		expected int
	}{
		{
			name:     "single yield no boost",
			spec:     Spec{StemMinutes: 80, FruitMinutes: 0, FruitCount: 1},
			boost:    0,
			expected: 80,
		},
		{
			name:     "single yield with fruit no boost",
			spec:     Spec{StemMinutes: 40, FruitMinutes: 45, FruitCount: 1},
			boost:    0,
			expected: 85,
		},
		{
			name:     "single yield 100 percent boost halves everything",
			spec:     Spec{StemMinutes: 40, FruitMinutes: 45, FruitCount: 1},
			boost:    100,
			expected: 43, // ceil(85/2)
		},
		{
			name:     "multi fruit no boost is stem plus count times fruit",
			spec:     Spec{StemMinutes: 480, FruitMinutes: 80, FruitCount: 3},
			boost:    0,
			expected: 720,
		},
		{
			name:     "multi fruit boost only divides stem",
			spec:     Spec{StemMinutes: 480, FruitMinutes: 80, FruitCount: 3},
			boost:    100,
			expected: 480, // 240 + 240
		},
		{
			name:     "fractional result rounds up",
			spec:     Spec{StemMinutes: 10, FruitMinutes: 0, FruitCount: 1},
			boost:    30,
			expected: 8, // ceil(7.69)
		},
		{
			name:     "negative boost clamped to zero",
			spec:     Spec{StemMinutes: 60, FruitMinutes: 0, FruitCount: 1},
			boost:    -50,
			expected: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GrowthMinutes(tt.spec, tt.boost))
		})
	}
}

func TestGrowthMinutesMonotonicInBoost(t *testing.T) {
	spec := Spec{StemMinutes: 480, FruitMinutes: 80, FruitCount: 3}

	prev := GrowthMinutes(spec, 0)
	for boost := 5.0; boost <= 500; boost += 5 {
		cur := GrowthMinutes(spec, boost)
		assert.LessOrEqual(t, cur, prev, "growth time must be non-increasing in boost (boost=%v)", boost)
		prev = cur
	}

	// Multi-fruit plants never drop below the unboosted fruit cycles.
	assert.GreaterOrEqual(t, prev, spec.FruitCount*spec.FruitMinutes)
}

func TestGrowthMinutesApproachesZeroForSingleYield(t *testing.T) {
	spec := Spec{StemMinutes: 600, FruitMinutes: 0, FruitCount: 1}
	assert.Equal(t, 1, GrowthMinutes(spec, 100000))
}

func TestLookup(t *testing.T) {
	spec, err := Lookup("Tomates")
	require.NoError(t, err)
	assert.Equal(t, Spec{StemMinutes: 60, FruitMinutes: 20, FruitCount: 2}, spec)

	_, err = Lookup("Triffid")
	assert.ErrorIs(t, err, domain.ErrUnknownPlant)
}

func TestHarvestClick(t *testing.T) {
	tests := []struct {
		plant    string
		expected ClickButton
	}{
		{"Tomates", ClickRight},   // fruit cycle
		{"Concombre", ClickLeft},  // single yield
		{"Lune Akari", ClickRight}, // single fruit but fruit time > 0
		{"Triffid", ClickRight},   // unknown defaults to right
	}

	for _, tt := range tests {
		t.Run(tt.plant, func(t *testing.T) {
			assert.Equal(t, tt.expected, HarvestClick(tt.plant))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "40m", FormatMinutes(40))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 20m", FormatMinutes(80))
	assert.Equal(t, "0m", FormatMinutes(0))
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "Concombre")
	assert.Len(t, names, len(table))
}

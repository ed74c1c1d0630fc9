package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{
		0:         "00:00",
		8.5:       "08:30",
		7.25:      "07:15",
		10.0 / 60: "00:10",
		25.99999:  "26:00",
		-1.5:      "-01:30",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatHours(in), "FormatHours(%v)", in)
	}
}

func TestFormatSignedHours(t *testing.T) {
	assert.Equal(t, "+00:30", FormatSignedHours(0.5))
	assert.Equal(t, "-01:15", FormatSignedHours(-1.25))
	assert.Equal(t, "+00:00", FormatSignedHours(0))
	assert.Equal(t, "+00:00", FormatSignedHours(-0.001))
}

func TestFormatKm(t *testing.T) {
	assert.Equal(t, "20.00", FormatKm(20))
	assert.Equal(t, "3.14", FormatKm(3.14159))
	assert.Equal(t, "+5.00", FormatSignedKm(5))
	assert.Equal(t, "-2.50", FormatSignedKm(-2.5))
	assert.Equal(t, "+0.00", FormatSignedKm(-0.001))
}

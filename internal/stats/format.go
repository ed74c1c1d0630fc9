package stats

import (
	"fmt"
	"math"
)

// FormatHours renders fractional hours as HH:MM, rounding to the nearest minute.
// Negative input is rendered with its sign, as FormatSignedHours does.
func FormatHours(h float64) string {
	if h < 0 {
		return FormatSignedHours(h)
	}
	mins := int(math.Round(h * 60))
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatSignedHours renders a time delta as +HH:MM or -HH:MM. A delta that rounds
// to zero minutes is shown as +00:00.
func FormatSignedHours(h float64) string {
	mins := int(math.Round(h * 60))
	sign := "+"
	if mins < 0 {
		sign = "-"
		mins = -mins
	}
	return fmt.Sprintf("%s%02d:%02d", sign, mins/60, mins%60)
}

// FormatKm renders a distance with two decimals.
func FormatKm(km float64) string {
	return fmt.Sprintf("%.2f", roundCents(km))
}

// FormatSignedKm renders a distance delta with an explicit sign and two decimals.
func FormatSignedKm(km float64) string {
	return fmt.Sprintf("%+.2f", roundCents(km))
}

func roundCents(v float64) float64 {
	v = math.Round(v*100) / 100
	if v == 0 {
		// collapse -0 so it never prints as "-0.00"
		v = 0
	}
	return v
}

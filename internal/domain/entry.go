package domain

import (
	"math"
	"strings"
	"time"
)

// Date layouts used across storage, transport and presentation.
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02.01.2006"
	ClockLayout       = "15:04"
)

// LogbookEntry is one recorded work session. A day holds at most one entry per owner.
type LogbookEntry struct {
	ID         string
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	DistanceKm float64
	CreatedBy  string
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Duration returns the elapsed wall-clock time between start and end.
func (e *LogbookEntry) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// Validate checks the invariants every stored entry must satisfy.
func (e *LogbookEntry) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if !e.EndTime.After(e.StartTime) {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if !IsFinite(e.DistanceKm) {
		return &ValidationError{Field: "distance_km", Reason: "must be a finite number"}
	}
	if e.DistanceKm < 0 {
		return &ValidationError{Field: "distance_km", Reason: "must not be negative"}
	}
	return nil
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CivilDate strips the clock part of t, keeping the calendar day as seen in t's location.
// The result is midnight UTC so that civil dates compare and format consistently.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDisplayDate parses a dd.MM.yyyy day string.
func ParseDisplayDate(s string) (time.Time, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "use dd.MM.yyyy format"}
	}
	return t, nil
}

// ClockOn combines a civil day with an HH:MM clock time in loc.
func ClockOn(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "time", Reason: "use HH:MM format"}
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc), nil
}

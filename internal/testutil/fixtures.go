package testutil

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/google/uuid"
)

// DefaultOwner is the owner used by NewTestEntry unless overridden.
const DefaultOwner = "tester"

// Entry options
type EntryOption func(*domain.LogbookEntry)

// WithShift sets the start and end clock times ("HH:MM") on the entry's day.
func WithShift(start, end string) EntryOption {
	return func(e *domain.LogbookEntry) {
		e.StartTime = mustClock(e.Date, start)
		e.EndTime = mustClock(e.Date, end)
	}
}

func WithDistance(km float64) EntryOption {
	return func(e *domain.LogbookEntry) {
		e.DistanceKm = km
	}
}

func WithOwner(owner string) EntryOption {
	return func(e *domain.LogbookEntry) {
		e.CreatedBy = owner
	}
}

func WithEntryNote(note string) EntryOption {
	return func(e *domain.LogbookEntry) {
		e.Note = note
	}
}

func WithEntryID(id string) EntryOption {
	return func(e *domain.LogbookEntry) {
		e.ID = id
	}
}

// NewTestEntry builds a valid 08:00-16:00 entry with 10 km on day.
func NewTestEntry(day time.Time, opts ...EntryOption) *domain.LogbookEntry {
	date := domain.CivilDate(day)
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.LogbookEntry{
		ID:         uuid.New().String(),
		Date:       date,
		StartTime:  mustClock(date, "08:00"),
		EndTime:    mustClock(date, "16:00"),
		DistanceKm: 10,
		CreatedBy:  DefaultOwner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Day returns midnight UTC of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustClock(day time.Time, hhmm string) time.Time {
	t, err := domain.ClockOn(day, hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

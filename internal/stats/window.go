package stats

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// DefaultWindowMonths is the trailing period the weekday statistics cover.
const DefaultWindowMonths = 2

// Window is an inclusive range of civil dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// TrailingMonths returns [today - months calendar months, today]. Month arithmetic
// follows time.AddDate, so 31 Dec minus two months is 31 Oct and 30 Apr minus two
// months normalizes to 2 Mar.
func TrailingMonths(now time.Time, months int) Window {
	if months <= 0 {
		months = DefaultWindowMonths
	}
	end := domain.CivilDate(now)
	return Window{Start: end.AddDate(0, -months, 0), End: end}
}

// Contains reports whether day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	d := domain.CivilDate(day)
	return !d.Before(w.Start) && !d.After(w.End)
}

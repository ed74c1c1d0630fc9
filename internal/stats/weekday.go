package stats

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// Selector extracts the averaged value from one entry.
type Selector func(e *domain.LogbookEntry) (float64, error)

// WorkHours selects the worked duration in fractional hours.
func WorkHours(e *domain.LogbookEntry) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	return e.Duration().Hours(), nil
}

// DistanceKm selects the distance travelled.
func DistanceKm(e *domain.LogbookEntry) (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	return e.DistanceKm, nil
}

// SelectorFor maps a metric name to its selector.
func SelectorFor(m domain.Metric) (Selector, error) {
	switch m {
	case domain.MetricWorkHours:
		return WorkHours, nil
	case domain.MetricDistanceKm:
		return DistanceKm, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", m)
	}
}

// WeekdayAverage is one bucket of the aggregation result.
type WeekdayAverage struct {
	Weekday time.Weekday
	Day     string
	Value   float64
	Count   int
}

// isoIndex maps a weekday to its Monday-first position.
func isoIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// AverageByWeekday averages sel over the entries whose date falls inside w,
// bucketed by weekday. The result always holds seven buckets, Monday first;
// a bucket without entries reports 0. A malformed entry inside the window
// aborts the aggregation with its validation error.
func AverageByWeekday(entries []*domain.LogbookEntry, sel Selector, w Window, labels Labels) ([]WeekdayAverage, error) {
	var sums [7]float64
	var counts [7]int

	for _, e := range entries {
		if e == nil || !w.Contains(e.Date) {
			continue
		}
		v, err := sel(e)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		i := isoIndex(e.Date.Weekday())
		sums[i] += v
		counts[i]++
	}

	out := make([]WeekdayAverage, 7)
	for i := range out {
		wd := time.Weekday((i + 1) % 7)
		out[i] = WeekdayAverage{Weekday: wd, Day: labels[i], Count: counts[i]}
		if counts[i] > 0 {
			out[i].Value = sums[i] / float64(counts[i])
		}
	}
	return out, nil
}

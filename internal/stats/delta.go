// Package stats holds the pure computations behind the logbook: per-day deltas,
// weekday aggregation over a trailing window, and presentation formatting.
package stats

import "github.com/alexanderramin/worklog/internal/domain"

// DayMetrics are the values derived from one entry against the expected baseline.
type DayMetrics struct {
	TotalWorkTime  float64 // hours, unrounded
	TimeDifference float64 // hours, positive = overtime
	KmDifference   float64
}

// ComputeDayMetrics derives DayMetrics for e. It fails with a *domain.ValidationError
// when e is malformed or a baseline is negative or not finite.
func ComputeDayMetrics(e *domain.LogbookEntry, expectedWorkHours, expectedDistanceKm float64) (DayMetrics, error) {
	if !domain.IsFinite(expectedWorkHours) || expectedWorkHours < 0 {
		return DayMetrics{}, &domain.ValidationError{Field: "expected_work_hours", Reason: "must not be negative"}
	}
	if !domain.IsFinite(expectedDistanceKm) || expectedDistanceKm < 0 {
		return DayMetrics{}, &domain.ValidationError{Field: "expected_distance_km", Reason: "must not be negative"}
	}
	if err := e.Validate(); err != nil {
		return DayMetrics{}, err
	}

	total := e.Duration().Hours()
	return DayMetrics{
		TotalWorkTime:  total,
		TimeDifference: total - expectedWorkHours,
		KmDifference:   e.DistanceKm - expectedDistanceKm,
	}, nil
}

// Baseline is the pair of expected values deltas are measured against.
type Baseline struct {
	WorkHours  float64
	DistanceKm float64
}

// Compute is ComputeDayMetrics with the baseline bundled.
func (b Baseline) Compute(e *domain.LogbookEntry) (DayMetrics, error) {
	return ComputeDayMetrics(e, b.WorkHours, b.DistanceKm)
}

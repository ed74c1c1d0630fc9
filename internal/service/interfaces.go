package service

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
)

// EntryService manages logbook entries.
type EntryService interface {
	// Create validates e, assigns an id, and stores it. A second entry for the
	// same owner and day fails with repository.ErrDuplicateDay.
	Create(ctx context.Context, e *domain.LogbookEntry) error
	Update(ctx context.Context, e *domain.LogbookEntry) error
	GetByID(ctx context.Context, id string) (*domain.LogbookEntry, error)
	GetByDate(ctx context.Context, owner string, day time.Time) (*domain.LogbookEntry, error)
	List(ctx context.Context, req app.ListEntriesRequest) ([]app.EntryView, error)
	// Delete removes the entry. Deleting an id that does not exist succeeds.
	Delete(ctx context.Context, id string) error
}

// StatsService answers the weekday statistics queries. Every call recomputes
// from the repository.
type StatsService interface {
	GetWorkHourStats(ctx context.Context, req app.StatsRequest) ([]app.WorkHourStat, error)
	GetDistanceStats(ctx context.Context, req app.StatsRequest) ([]app.DistanceStat, error)
	WeekdayAverages(ctx context.Context, req app.StatsRequest, metric domain.Metric) ([]stats.WeekdayAverage, error)
}

// ReportService renders single-day reports.
type ReportService interface {
	// GeneratePDF renders owner's entry for day. A day without an entry still
	// yields a report.
	GeneratePDF(ctx context.Context, owner string, day time.Time) ([]byte, error)
}

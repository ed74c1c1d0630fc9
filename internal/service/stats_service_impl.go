package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/stats"
)

// StatsOptions configures the statistics window and presentation.
type StatsOptions struct {
	WindowMonths int
	Labels       stats.Labels
	// Location decides which calendar day "today" is. Defaults to UTC.
	Location *time.Location
}

type statsService struct {
	entries  repository.EntryRepo
	opts     StatsOptions
	observer UseCaseObserver
}

func NewStatsService(entries repository.EntryRepo, opts StatsOptions, observers ...UseCaseObserver) StatsService {
	if opts.WindowMonths <= 0 {
		opts.WindowMonths = stats.DefaultWindowMonths
	}
	if opts.Labels == (stats.Labels{}) {
		opts.Labels = stats.LabelsFor("")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &statsService{entries: entries, opts: opts, observer: useCaseObserverOrNoop(observers)}
}

func (s *statsService) GetWorkHourStats(ctx context.Context, req app.StatsRequest) ([]app.WorkHourStat, error) {
	avgs, err := s.WeekdayAverages(ctx, req, domain.MetricWorkHours)
	if err != nil {
		return nil, err
	}
	out := make([]app.WorkHourStat, len(avgs))
	for i, a := range avgs {
		out[i] = app.WorkHourStat{Day: a.Day, AverageWorkHours: a.Value}
	}
	return out, nil
}

func (s *statsService) GetDistanceStats(ctx context.Context, req app.StatsRequest) ([]app.DistanceStat, error) {
	avgs, err := s.WeekdayAverages(ctx, req, domain.MetricDistanceKm)
	if err != nil {
		return nil, err
	}
	out := make([]app.DistanceStat, len(avgs))
	for i, a := range avgs {
		out[i] = app.DistanceStat{Day: a.Day, AverageDistance: a.Value}
	}
	return out, nil
}

func (s *statsService) WeekdayAverages(ctx context.Context, req app.StatsRequest, metric domain.Metric) (avgs []stats.WeekdayAverage, err error) {
	fields := map[string]any{"metric": string(metric), "owner": req.Owner}
	defer observe(ctx, s.observer, "weekday-stats", time.Now().UTC(), &err, fields)

	sel, err := stats.SelectorFor(metric)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	w := stats.TrailingMonths(now.In(s.opts.Location), s.opts.WindowMonths)
	fields["window_start"] = w.Start.Format(domain.DateLayout)

	entries, err := s.entries.ListRange(ctx, req.Owner, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	fields["entries"] = len(entries)

	return stats.AverageByWeekday(entries, sel, w, s.opts.Labels)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/report"
	"github.com/alexanderramin/worklog/internal/repository"
)

type reportService struct {
	entries  repository.EntryRepo
	renderer report.Renderer
	observer UseCaseObserver
}

func NewReportService(entries repository.EntryRepo, renderer report.Renderer, observers ...UseCaseObserver) ReportService {
	return &reportService{entries: entries, renderer: renderer, observer: useCaseObserverOrNoop(observers)}
}

func (s *reportService) GeneratePDF(ctx context.Context, owner string, day time.Time) (pdf []byte, err error) {
	day = domain.CivilDate(day)
	fields := map[string]any{"owner": owner, "date": day.Format(domain.DateLayout)}
	defer observe(ctx, s.observer, "generate-pdf", time.Now().UTC(), &err, fields)

	entry, err := s.entries.GetByDate(ctx, owner, day)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		entry = nil
	case err != nil:
		return nil, fmt.Errorf("loading entry for %s: %w", day.Format(domain.DisplayDateLayout), err)
	}
	fields["recorded"] = entry != nil

	pdf, err = s.renderer.Render(day, entry)
	if err != nil {
		return nil, err
	}
	fields["bytes"] = len(pdf)
	return pdf, nil
}

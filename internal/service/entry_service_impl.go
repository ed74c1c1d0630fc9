package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entryService struct {
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	baseline stats.Baseline
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewEntryService(
	entries repository.EntryRepo,
	uow db.UnitOfWork,
	baseline stats.Baseline,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) EntryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &entryService{
		entries:  entries,
		uow:      uow,
		baseline: baseline,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) Create(ctx context.Context, e *domain.LogbookEntry) (err error) {
	fields := map[string]any{"owner": e.CreatedBy}
	defer observe(ctx, s.observer, "create-entry", time.Now().UTC(), &err, fields)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Date = domain.CivilDate(e.Date)
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err = s.baseline.Compute(e); err != nil {
		return err
	}
	fields["date"] = e.Date.Format(domain.DateLayout)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		existing, err := txEntries.GetByDate(ctx, e.CreatedBy, e.Date)
		if err == nil {
			return fmt.Errorf("entry %s already covers %s: %w",
				existing.ID, e.Date.Format(domain.DisplayDateLayout), repository.ErrDuplicateDay)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return txEntries.Create(ctx, e)
	})
}

func (s *entryService) Update(ctx context.Context, e *domain.LogbookEntry) (err error) {
	defer observe(ctx, s.observer, "update-entry", time.Now().UTC(), &err, map[string]any{"id": e.ID})

	e.Date = domain.CivilDate(e.Date)
	if _, err = s.baseline.Compute(e); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		current, err := txEntries.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		// Ownership and creation time are fixed at capture.
		e.CreatedBy = current.CreatedBy
		e.CreatedAt = current.CreatedAt
		e.UpdatedAt = time.Now().UTC()
		return txEntries.Update(ctx, e)
	})
}

func (s *entryService) GetByID(ctx context.Context, id string) (*domain.LogbookEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *entryService) GetByDate(ctx context.Context, owner string, day time.Time) (*domain.LogbookEntry, error) {
	return s.entries.GetByDate(ctx, owner, day)
}

func (s *entryService) List(ctx context.Context, req app.ListEntriesRequest) ([]app.EntryView, error) {
	entries, err := s.entries.ListRange(ctx, req.Owner, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	views := make([]app.EntryView, 0, len(entries))
	for _, e := range entries {
		m, err := s.baseline.Compute(e)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		views = append(views, app.EntryView{Entry: e, Metrics: m})
	}
	return views, nil
}

func (s *entryService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-entry", time.Now().UTC(), &err, map[string]any{"id": id})

	err = s.entries.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("delete of unknown entry ignored", zap.String("id", id))
		return nil
	}
	return err
}

package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// EntryRepo stores logbook entries. Range and date lookups take an owner;
// an empty owner matches every owner.
type EntryRepo interface {
	Create(ctx context.Context, e *domain.LogbookEntry) error
	GetByID(ctx context.Context, id string) (*domain.LogbookEntry, error)
	GetByDate(ctx context.Context, owner string, day time.Time) (*domain.LogbookEntry, error)
	ListRange(ctx context.Context, owner string, from, to time.Time) ([]*domain.LogbookEntry, error)
	Update(ctx context.Context, e *domain.LogbookEntry) error
	// Delete removes the entry. It returns ErrNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}

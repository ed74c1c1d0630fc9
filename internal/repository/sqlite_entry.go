package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
)

const entryColumns = `id, entry_date, start_time, end_time, distance_km, created_by, note, created_at, updated_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo over a *sql.DB or *sql.Tx.
func NewSQLiteEntryRepo(db db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: db}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.LogbookEntry) error {
	query := `INSERT INTO logbook_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		formatDate(e.Date),
		formatTimestamp(e.StartTime),
		formatTimestamp(e.EndTime),
		e.DistanceKm,
		e.CreatedBy,
		e.Note,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inserting logbook entry for %s: %w", formatDate(e.Date), ErrDuplicateDay)
		}
		return fmt.Errorf("inserting logbook entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.LogbookEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM logbook_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) GetByDate(ctx context.Context, owner string, day time.Time) (*domain.LogbookEntry, error) {
	filter, filterArgs := ownerFilter(owner)
	query := `SELECT ` + entryColumns + ` FROM logbook_entries
		WHERE entry_date = ?` + filter + `
		ORDER BY created_by LIMIT 1`
	args := append([]any{formatDate(day)}, filterArgs...)
	row := r.db.QueryRowContext(ctx, query, args...)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) ListRange(ctx context.Context, owner string, from, to time.Time) ([]*domain.LogbookEntry, error) {
	filter, filterArgs := ownerFilter(owner)
	query := `SELECT ` + entryColumns + ` FROM logbook_entries
		WHERE entry_date >= ? AND entry_date <= ?` + filter + `
		ORDER BY entry_date, created_by`
	args := append([]any{formatDate(from), formatDate(to)}, filterArgs...)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing logbook entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.LogbookEntry) error {
	query := `UPDATE logbook_entries
		SET entry_date = ?, start_time = ?, end_time = ?, distance_km = ?, note = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		formatDate(e.Date),
		formatTimestamp(e.StartTime),
		formatTimestamp(e.EndTime),
		e.DistanceKm,
		e.Note,
		e.UpdatedAt.UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("updating logbook entry %s: %w", e.ID, ErrDuplicateDay)
		}
		return fmt.Errorf("updating logbook entry: %w", err)
	}
	return requireAffected(res, "logbook entry "+e.ID)
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM logbook_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting logbook entry: %w", err)
	}
	return requireAffected(res, "logbook entry "+id)
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// entryRow holds the raw column values before parsing.
type entryRow struct {
	entry                     domain.LogbookEntry
	date, start, end, created string
	updated                   string
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.LogbookEntry, error) {
	var raw entryRow
	err := row.Scan(
		&raw.entry.ID, &raw.date, &raw.start, &raw.end, &raw.entry.DistanceKm,
		&raw.entry.CreatedBy, &raw.entry.Note, &raw.created, &raw.updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("logbook entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning logbook entry: %w", err)
	}
	return raw.populate()
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.LogbookEntry, error) {
	var entries []*domain.LogbookEntry
	for rows.Next() {
		var raw entryRow
		err := rows.Scan(
			&raw.entry.ID, &raw.date, &raw.start, &raw.end, &raw.entry.DistanceKm,
			&raw.entry.CreatedBy, &raw.entry.Note, &raw.created, &raw.updated,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning logbook entry row: %w", err)
		}
		e, err := raw.populate()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating logbook entries: %w", err)
	}
	return entries, nil
}

// populate parses the raw strings into the entry's time fields.
func (raw *entryRow) populate() (*domain.LogbookEntry, error) {
	e := raw.entry
	var err error
	if e.Date, err = time.Parse(domain.DateLayout, raw.date); err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	if e.StartTime, err = time.Parse(time.RFC3339, raw.start); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, raw.end); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, raw.created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if raw.updated == "" {
		e.UpdatedAt = e.CreatedAt
	} else if e.UpdatedAt, err = time.Parse(time.RFC3339, raw.updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}

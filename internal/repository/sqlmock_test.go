package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*SQLiteEntryRepo, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteEntryRepo(conn), mock
}

func TestEntryRepo_Delete_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM logbook_entries WHERE id = \?`).
		WithArgs("missing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_Delete_DriverErrorIsWrapped(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("disk I/O error")
	mock.ExpectExec(`DELETE FROM logbook_entries`).
		WithArgs("abc").
		WillReturnError(boom)

	err := repo.Delete(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "deleting logbook entry")
}

func TestEntryRepo_Create_UniqueViolationMapsToDuplicateDay(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO logbook_entries`).
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: logbook_entries.created_by, logbook_entries.entry_date (2067)"))

	err := repo.Create(context.Background(), testutil.NewTestEntry(testutil.Day(2024, time.March, 4)))
	assert.ErrorIs(t, err, ErrDuplicateDay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ListRange_OwnerFilterArgs(t *testing.T) {
	repo, mock := newMockRepo(t)
	cols := []string{"id", "entry_date", "start_time", "end_time", "distance_km", "created_by", "note", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM logbook_entries\s+WHERE entry_date >= \? AND entry_date <= \? AND created_by = \?`).
		WithArgs("2024-03-01", "2024-03-31", "alice").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"e1", "2024-03-04", "2024-03-04T08:00:00Z", "2024-03-04T16:30:00Z", 7.25,
			"alice", "", "2024-03-04T17:00:00Z", "",
		))

	list, err := repo.ListRange(context.Background(), "alice",
		testutil.Day(2024, time.March, 1), testutil.Day(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "e1", list[0].ID)
	assert.Equal(t, 7.25, list[0].DistanceKm)
	assert.InDelta(t, 8.5, list[0].Duration().Hours(), 1e-9)
	assert.True(t, list[0].UpdatedAt.Equal(list[0].CreatedAt), "empty updated_at falls back to created_at")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepo_ListRange_CorruptRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	cols := []string{"id", "entry_date", "start_time", "end_time", "distance_km", "created_by", "note", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM logbook_entries`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"bad", "04.03.2024", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z", 1.0,
			"alice", "", "2024-03-04T17:00:00Z", "",
		))

	_, err := repo.ListRange(context.Background(), "",
		testutil.Day(2024, time.March, 1), testutil.Day(2024, time.March, 31))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing entry_date")
}

package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

const insertEntry = `INSERT INTO logbook_entries
	(id, entry_date, start_time, end_time, distance_km, created_by, created_at, updated_at)
	VALUES (?, ?, '2024-03-01T08:00:00Z', '2024-03-01T16:00:00Z', ?, ?, '2024-03-01T17:00:00Z', '2024-03-01T17:00:00Z')`

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run is a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesEntriesTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='logbook_entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "logbook_entries", name)
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_entries_owner_date", "idx_entries_date"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_AddedColumns(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(logbook_entries)`)
	require.NoError(t, err)
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		cols[name] = true
	}
	assert.True(t, cols["note"], "note column should exist")
	assert.True(t, cols["updated_at"], "updated_at column should exist")
}

func TestMigrate_OneEntryPerOwnerAndDay(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertEntry, "e1", "2024-03-01", 10.0, "alice")
	require.NoError(t, err)

	_, err = db.Exec(insertEntry, "e2", "2024-03-01", 5.0, "alice")
	assert.Error(t, err, "second entry for the same owner and day should violate the unique index")

	_, err = db.Exec(insertEntry, "e3", "2024-03-01", 5.0, "bob")
	assert.NoError(t, err, "another owner may log the same day")
}

func TestMigrate_NegativeDistanceRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(insertEntry, "e1", "2024-03-01", -1.0, "alice")
	assert.Error(t, err, "negative distance should be rejected by CHECK constraint")
}

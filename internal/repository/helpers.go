package repository

import (
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// formatDate renders a civil date for the entry_date column.
func formatDate(t time.Time) string {
	return domain.CivilDate(t).Format(domain.DateLayout)
}

// formatTimestamp renders a timestamp keeping its UTC offset, so the stored
// value still reads as the local clock time it was logged at.
func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ownerFilter returns the SQL fragment and args restricting rows to owner.
// An empty owner matches every row.
func ownerFilter(owner string) (string, []any) {
	if owner == "" {
		return "", nil
	}
	return " AND created_by = ?", []any{owner}
}

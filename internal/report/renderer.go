// Package report renders single-day logbook reports.
package report

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// ContentType is the media type of rendered reports.
const ContentType = "application/pdf"

// Renderer turns one day's entry, or its absence, into a document.
// Implementations must be safe for concurrent use and return identical bytes
// for identical input.
type Renderer interface {
	Render(day time.Time, e *domain.LogbookEntry) ([]byte, error)
}

// RenderError reports a failure of the document engine.
type RenderError struct {
	Day time.Time
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering report for %s: %v", e.Day.Format(domain.DisplayDateLayout), e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

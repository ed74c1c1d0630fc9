package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/go-pdf/fpdf"
)

// NoSessionText is printed for a day without an entry.
const NoSessionText = "No session recorded"

const (
	labelWidth = 60.0
	rowHeight  = 9.0
)

// PDFRenderer renders A4 reports with the core PDF fonts.
type PDFRenderer struct {
	baseline stats.Baseline
	loc      *time.Location
	title    string
	compress bool
}

type Option func(*PDFRenderer)

// WithLocation sets the zone clock times are printed in. Defaults to the
// zone stored with each timestamp.
func WithLocation(loc *time.Location) Option {
	return func(r *PDFRenderer) { r.loc = loc }
}

func WithTitle(title string) Option {
	return func(r *PDFRenderer) { r.title = title }
}

// WithCompression toggles stream compression. On by default.
func WithCompression(on bool) Option {
	return func(r *PDFRenderer) { r.compress = on }
}

func NewPDFRenderer(baseline stats.Baseline, opts ...Option) *PDFRenderer {
	r := &PDFRenderer{baseline: baseline, title: "Logbook", compress: true}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *PDFRenderer) Render(day time.Time, e *domain.LogbookEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderTo(&buf, day, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes the report to w. A malformed entry fails with its
// *domain.ValidationError; engine and write failures with *RenderError.
func (r *PDFRenderer) RenderTo(w io.Writer, day time.Time, e *domain.LogbookEntry) error {
	day = domain.CivilDate(day)

	var rows [][2]string
	if e != nil {
		m, err := r.baseline.Compute(e)
		if err != nil {
			return err
		}
		rows = r.entryRows(e, m)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Pin everything time- or map-order-dependent so output is reproducible.
	pdf.SetCreationDate(day)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(r.title, true)
	pdf.SetCreator("worklog", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(r.title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, rowHeight, "Date: "+day.Format(domain.DisplayDateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if e == nil {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, rowHeight, NoSessionText, "", 1, "L", false, 0, "")
	} else {
		for _, row := range rows {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(labelWidth, rowHeight, row[0], "B", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, rowHeight, tr(row[1]), "B", 1, "L", false, 0, "")
		}
		if e.Note != "" {
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(e.Note), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return &RenderError{Day: day, Err: err}
	}
	if err := pdf.Output(w); err != nil {
		return &RenderError{Day: day, Err: err}
	}
	return nil
}

func (r *PDFRenderer) entryRows(e *domain.LogbookEntry, m stats.DayMetrics) [][2]string {
	start, end := e.StartTime, e.EndTime
	if r.loc != nil {
		start, end = start.In(r.loc), end.In(r.loc)
	}
	return [][2]string{
		{"Start", start.Format(domain.ClockLayout)},
		{"End", clockWithDay(start, end)},
		{"Total", stats.FormatHours(m.TotalWorkTime)},
		{"Time difference", stats.FormatSignedHours(m.TimeDifference)},
		{"Distance", stats.FormatKm(e.DistanceKm) + " km"},
		{"Distance difference", stats.FormatSignedKm(m.KmDifference) + " km"},
	}
}

// clockWithDay prints end's clock time, adding its date when the session ran
// past midnight.
func clockWithDay(start, end time.Time) string {
	if domain.CivilDate(start).Equal(domain.CivilDate(end)) {
		return end.Format(domain.ClockLayout)
	}
	return fmt.Sprintf("%s (%s)", end.Format(domain.ClockLayout), end.Format(domain.DisplayDateLayout))
}

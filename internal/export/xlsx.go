// Package export writes logbook entries to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/xuri/excelize/v2"
)

const (
	EntriesSheet  = "Entries"
	AveragesSheet = "Weekday averages"
)

// EntriesHeader is the first row of the entries sheet.
var EntriesHeader = []string{
	"Date",
	"Weekday",
	"Start",
	"End",
	"Total (h)",
	"Time difference (h)",
	"Distance (km)",
	"Distance difference (km)",
	"Owner",
	"Note",
}

var entriesColumnWidths = []float64{12, 10, 8, 8, 10, 18, 14, 22, 14, 40}

// Workbook is the content of one export.
type Workbook struct {
	Entries []app.EntryView
	// Optional; the averages sheet is written when both are set.
	WorkHours []stats.WeekdayAverage
	Distance  []stats.WeekdayAverage
	// Clock times are printed in Location when set.
	Location *time.Location
}

// WriteXLSX writes wb as an .xlsx file to w.
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(EntriesSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeHeader(f, EntriesSheet, EntriesHeader, entriesColumnWidths, headerStyle); err != nil {
		return err
	}
	for i, v := range wb.Entries {
		if err := f.SetSheetRow(EntriesSheet, rowCell(i+2), entryRow(v, wb.Location)); err != nil {
			return fmt.Errorf("writing entry row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(EntriesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if len(wb.WorkHours) > 0 && len(wb.Distance) > 0 {
		if err := writeAverages(f, wb.WorkHours, wb.Distance, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeAverages(f *excelize.File, hours, distance []stats.WeekdayAverage, style int) error {
	if len(hours) != len(distance) {
		return fmt.Errorf("averages mismatch: %d work-hour buckets, %d distance buckets", len(hours), len(distance))
	}
	if _, err := f.NewSheet(AveragesSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	header := []string{"Weekday", "Entries", "Average work (h)", "Average distance (km)"}
	if err := writeHeader(f, AveragesSheet, header, []float64{10, 10, 18, 22}, style); err != nil {
		return err
	}
	for i := range hours {
		row := []any{hours[i].Day, hours[i].Count, round2(hours[i].Value), round2(distance[i].Value)}
		if err := f.SetSheetRow(AveragesSheet, rowCell(i+2), &row); err != nil {
			return fmt.Errorf("writing averages row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string, widths []float64, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}
	return nil
}

func entryRow(v app.EntryView, loc *time.Location) *[]any {
	e := v.Entry
	start, end := e.StartTime, e.EndTime
	if loc != nil {
		start, end = start.In(loc), end.In(loc)
	}
	row := []any{
		e.Date.Format(domain.DisplayDateLayout),
		e.Date.Weekday().String()[:3],
		start.Format(domain.ClockLayout),
		end.Format(domain.ClockLayout),
		round2(v.Metrics.TotalWorkTime),
		round2(v.Metrics.TimeDifference),
		round2(e.DistanceKm),
		round2(v.Metrics.KmDifference),
		e.CreatedBy,
		e.Note,
	}
	return &row
}

func rowCell(row int) string {
	return fmt.Sprintf("A%d", row)
}

// round2 keeps the sheet free of float noise such as 8.499999.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

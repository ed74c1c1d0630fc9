package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
)

func clock(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(domain.ClockLayout)
}

// FormatEntryList renders entries with their derived metrics.
func FormatEntryList(views []app.EntryView, loc *time.Location) string {
	if len(views) == 0 {
		return Dim("No entries recorded.")
	}

	rows := make([][]string, 0, len(views))
	var totalHours, totalKm float64
	for _, v := range views {
		e := v.Entry
		totalHours += v.Metrics.TotalWorkTime
		totalKm += e.DistanceKm
		rows = append(rows, []string{
			TruncID(e.ID),
			e.Date.Format(domain.DisplayDateLayout),
			e.Date.Weekday().String()[:3],
			clock(e.StartTime, loc) + "-" + clock(e.EndTime, loc),
			stats.FormatHours(v.Metrics.TotalWorkTime),
			SignedHours(v.Metrics.TimeDifference),
			stats.FormatKm(e.DistanceKm),
			SignedKm(v.Metrics.KmDifference),
			truncate(e.Note, 30),
		})
	}

	table := Table{
		Headers:    []string{"ID", "DATE", "DAY", "SHIFT", "TOTAL", "Δ TIME", "KM", "Δ KM", "NOTE"},
		Rows:       rows,
		RightAlign: map[int]bool{4: true, 5: true, 6: true, 7: true},
	}.Render()

	summary := fmt.Sprintf("%d entries  %s h  %s km",
		len(views), stats.FormatHours(totalHours), stats.FormatKm(totalKm))
	return table + "\n" + Dim(summary)
}

// FormatEntry renders one entry as a labelled box.
func FormatEntry(v app.EntryView, loc *time.Location) string {
	e := v.Entry
	lines := []string{
		kv("ID", e.ID),
		kv("Date", e.Date.Format(domain.DisplayDateLayout)+" ("+e.Date.Weekday().String()+")"),
		kv("Start", clock(e.StartTime, loc)),
		kv("End", clock(e.EndTime, loc)),
		kv("Total", stats.FormatHours(v.Metrics.TotalWorkTime)),
		kv("Time diff", SignedHours(v.Metrics.TimeDifference)),
		kv("Distance", stats.FormatKm(e.DistanceKm)+" km"),
		kv("Km diff", SignedKm(v.Metrics.KmDifference)),
	}
	if e.Note != "" {
		lines = append(lines, kv("Note", e.Note))
	}
	return RenderBox("Logbook entry", strings.Join(lines, "\n"))
}

func kv(label, value string) string {
	return fmt.Sprintf("%s %s", StyleDim.Render(fmt.Sprintf("%-10s", label)), value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

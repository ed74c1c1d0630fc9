package formatter

import (
	"fmt"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
)

const barWidth = 24

// MetricTitle names a metric for headings.
func MetricTitle(m domain.Metric) string {
	switch m {
	case domain.MetricWorkHours:
		return "Average work hours"
	case domain.MetricDistanceKm:
		return "Average distance"
	default:
		return string(m)
	}
}

// MetricValue formats one averaged value of metric m.
func MetricValue(m domain.Metric, v float64) string {
	if m == domain.MetricDistanceKm {
		return stats.FormatKm(v) + " km"
	}
	return stats.FormatHours(v)
}

// FormatWeekdayStats renders the seven weekday averages as a bar table.
func FormatWeekdayStats(m domain.Metric, avgs []stats.WeekdayAverage, w stats.Window) string {
	var max float64
	for _, a := range avgs {
		if a.Value > max {
			max = a.Value
		}
	}

	rows := make([][]string, 0, len(avgs))
	for _, a := range avgs {
		count := Dim(fmt.Sprintf("%d", a.Count))
		rows = append(rows, []string{a.Day, MetricValue(m, a.Value), RenderBar(a.Value, max, barWidth), count})
	}
	table := Table{
		Headers:    []string{"DAY", "AVERAGE", "", "N"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true, 3: true},
	}.Render()

	window := fmt.Sprintf("%s to %s", w.Start.Format(domain.DisplayDateLayout), w.End.Format(domain.DisplayDateLayout))
	return Header(MetricTitle(m)) + "\n" + table + Dim(window)
}

package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleViews(t *testing.T) []app.EntryView {
	t.Helper()
	e := testutil.NewTestEntry(testutil.Day(2024, time.March, 1),
		testutil.WithShift("08:00", "16:30"),
		testutil.WithDistance(20),
		testutil.WithEntryNote("client visit"),
	)
	m, err := stats.ComputeDayMetrics(e, 8, 15)
	require.NoError(t, err)
	return []app.EntryView{{Entry: e, Metrics: m}}
}

func TestWriteXLSX_Entries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{Entries: sampleViews(t)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{EntriesSheet}, f.GetSheetList())
	rows, err := f.GetRows(EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, EntriesHeader, rows[0])
	assert.Equal(t, "01.03.2024", rows[1][0])
	assert.Equal(t, "Fri", rows[1][1])
	assert.Equal(t, "08:00", rows[1][2])
	assert.Equal(t, "16:30", rows[1][3])
	assert.Equal(t, "8.5", rows[1][4])
	assert.Equal(t, "0.5", rows[1][5])
	assert.Equal(t, "20", rows[1][6])
	assert.Equal(t, "5", rows[1][7])
	assert.Equal(t, testutil.DefaultOwner, rows[1][8])
	assert.Equal(t, "client visit", rows[1][9])
}

func TestWriteXLSX_WithAverages(t *testing.T) {
	views := sampleViews(t)
	w := stats.Window{Start: testutil.Day(2024, time.February, 1), End: testutil.Day(2024, time.March, 31)}
	entries := []*domain.LogbookEntry{views[0].Entry}
	hours, err := stats.AverageByWeekday(entries, stats.WorkHours, w, stats.LabelsFor("en"))
	require.NoError(t, err)
	distance, err := stats.AverageByWeekday(entries, stats.DistanceKm, w, stats.LabelsFor("en"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{Entries: views, WorkHours: hours, Distance: distance}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{EntriesSheet, AveragesSheet}, f.GetSheetList())
	rows, err := f.GetRows(AveragesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Mon", "0", "0", "0"}, rows[1])
	assert.Equal(t, []string{"Fri", "1", "8.5", "20"}, rows[5])
	assert.Equal(t, "Sun", rows[7][0])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, EntriesHeader, rows[0])
}

func TestWriteXLSX_MismatchedAverages(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, Workbook{
		WorkHours: make([]stats.WeekdayAverage, 7),
		Distance:  make([]stats.WeekdayAverage, 3),
	})
	assert.ErrorContains(t, err, "averages mismatch")
}

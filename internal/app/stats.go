package app

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/stats"
)

// StatsRequest scopes a statistics query. An empty Owner covers every owner;
// a nil Now means the current time.
type StatsRequest struct {
	Owner string
	Now   *time.Time
}

type WorkHourStat struct {
	Day              string  `json:"day"`
	AverageWorkHours float64 `json:"averageWorkHours"`
}

type DistanceStat struct {
	Day             string  `json:"day"`
	AverageDistance float64 `json:"averageDistance"`
}

// ListEntriesRequest selects entries by owner over an inclusive date range.
type ListEntriesRequest struct {
	Owner string
	From  time.Time
	To    time.Time
}

// EntryView pairs an entry with its derived metrics.
type EntryView struct {
	Entry   *domain.LogbookEntry
	Metrics stats.DayMetrics
}

package app

import (
	"context"
	"time"
)

type StatsUseCase interface {
	GetWorkHourStats(ctx context.Context, req StatsRequest) ([]WorkHourStat, error)
	GetDistanceStats(ctx context.Context, req StatsRequest) ([]DistanceStat, error)
}

type ReportUseCase interface {
	GeneratePDF(ctx context.Context, owner string, day time.Time) ([]byte, error)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/worklog/internal/auth"
	"github.com/alexanderramin/worklog/internal/cache"
	"github.com/alexanderramin/worklog/internal/cli"
	"github.com/alexanderramin/worklog/internal/config"
	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/logging"
	"github.com/alexanderramin/worklog/internal/report"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/go-redis/redis/v8"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "worklog")
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	entries := repository.NewSQLiteEntryRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewZapUseCaseObserver(logger)

	baseline := stats.Baseline{WorkHours: cfg.ExpectedWorkHours, DistanceKm: cfg.ExpectedDistanceKm}
	renderer := report.NewPDFRenderer(baseline, report.WithLocation(cfg.Location))

	app := &cli.App{
		Entries: service.NewEntryService(entries, uow, baseline, logger, observer),
		Stats: service.NewStatsService(entries, service.StatsOptions{
			WindowMonths: cfg.WindowMonths,
			Labels:       stats.LabelsFor(cfg.Locale),
			Location:     cfg.Location,
		}, observer),
		Reports: service.NewReportService(entries, renderer, observer),

		Owner:        cfg.Owner,
		Location:     cfg.Location,
		WindowMonths: cfg.WindowMonths,
		Baseline:     baseline,
		Logger:       logger,
		HTTP: cli.HTTPOptions{
			Addr:        cfg.HTTPAddr,
			ReportCache: cache.NoopReportCache{},
		},
	}

	if len(cfg.Tokens) > 0 {
		app.HTTP.Authorizer = auth.NewTokenAuthorizer(cfg.Tokens)
	}

	// The report cache is optional; without Redis every request renders.
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unavailable, report cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			app.HTTP.ReportCache = cache.NewRedisReportCache(client, cfg.ReportTTL)
		}
	}

	// Detect interactive terminal for forms and the stats browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}

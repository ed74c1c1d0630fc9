package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/worklog/internal/cache"
	"github.com/alexanderramin/worklog/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// newHTTPHandler wires the logbook routes against the app's services.
func newHTTPHandler(app *App) (*httpapi.Router, error) {
	if app.HTTP.Authorizer == nil {
		return nil, errors.New("no API tokens configured (set WORKLOG_API_TOKENS)")
	}
	reportCache := app.HTTP.ReportCache
	if reportCache == nil {
		reportCache = cache.NoopReportCache{}
	}

	handler := httpapi.NewLogbookHandler(
		app.Entries,
		app.Stats,
		app.Reports,
		app.HTTP.Authorizer,
		app.logger(),
		httpapi.WithReportCache(reportCache),
		httpapi.WithLocation(app.loc()),
		httpapi.WithClock(app.now),
	)
	router := httpapi.NewRouter(app.logger())
	router.RegisterLogbookRoutes(handler)
	return router, nil
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the logbook HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := newHTTPHandler(app)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = app.HTTP.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(addr, router, app.logger())
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			app.logger().Info("shutdown signal received", zap.Duration("timeout", shutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from WORKLOG_HTTP_ADDR)")

	return cmd
}

package cli

import (
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/auth"
	"github.com/alexanderramin/worklog/internal/cache"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/alexanderramin/worklog/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// HTTPOptions configures the serve command.
type HTTPOptions struct {
	Addr        string
	Authorizer  auth.Authorizer
	ReportCache cache.ReportCache
}

// App holds references to all services and settings used by CLI commands.
type App struct {
	Entries service.EntryService
	Stats   service.StatsService
	Reports service.ReportService

	// Owner is recorded on new entries and scopes every query.
	Owner        string
	Location     *time.Location
	WindowMonths int
	Baseline     stats.Baseline
	Logger       *zap.Logger
	HTTP         HTTPOptions

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now replaces time.Now when set.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) loc() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// today is the current civil date in the configured zone.
func (a *App) today() time.Time {
	return domain.CivilDate(a.now().In(a.loc()))
}

// window is the statistics window as of now.
func (a *App) window() stats.Window {
	return stats.TrailingMonths(a.now().In(a.loc()), a.WindowMonths)
}

// statsRequest scopes a statistics query to owner as of now.
func (a *App) statsRequest(owner string) app.StatsRequest {
	now := a.now()
	return app.StatsRequest{Owner: owner, Now: &now}
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// NewRootCmd creates the top-level "worklog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Personal work logbook with weekday statistics and PDF reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEntryCmd(app),
		newStatsCmd(app),
		newReportCmd(app),
		newServeCmd(app),
	)

	return root
}

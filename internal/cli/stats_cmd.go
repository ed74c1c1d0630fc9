package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var metricArgs = map[string]domain.Metric{
	"work-hours": domain.MetricWorkHours,
	"hours":      domain.MetricWorkHours,
	"distance":   domain.MetricDistanceKm,
	"km":         domain.MetricDistanceKm,
}

func newStatsCmd(app *App) *cobra.Command {
	var interactive, asJSON, allOwners bool

	cmd := &cobra.Command{
		Use:       "stats [work-hours|distance]",
		Short:     "Show weekday averages over the statistics window",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"work-hours", "distance"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := app.Owner
			if allOwners {
				owner = ""
			}

			metrics := statsMetrics
			if len(args) == 1 {
				m, ok := metricArgs[args[0]]
				if !ok {
					return fmt.Errorf("unknown metric %q (use work-hours or distance)", args[0])
				}
				metrics = []domain.Metric{m}
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				_, err := tea.NewProgram(newStatsModel(ctx, app, owner, metrics[0]), tea.WithContext(ctx)).Run()
				return err
			}

			req := app.statsRequest(owner)
			out := cmd.OutOrStdout()

			if asJSON {
				var v any
				var err error
				if metrics[0] == domain.MetricDistanceKm && len(metrics) == 1 {
					v, err = app.Stats.GetDistanceStats(ctx, req)
				} else if len(metrics) == 1 {
					v, err = app.Stats.GetWorkHourStats(ctx, req)
				} else {
					v, err = statsBoth(cmd, app, owner)
				}
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}

			w := app.window()
			for i, m := range metrics {
				avgs, err := app.Stats.WeekdayAverages(ctx, req, m)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, formatter.FormatWeekdayStats(m, avgs, w))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the metrics interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the averages as JSON")
	cmd.Flags().BoolVar(&allOwners, "all-owners", false, "average over every owner")

	return cmd
}

func statsBoth(cmd *cobra.Command, app *App, owner string) (any, error) {
	req := app.statsRequest(owner)
	hours, err := app.Stats.GetWorkHourStats(cmd.Context(), req)
	if err != nil {
		return nil, err
	}
	dist, err := app.Stats.GetDistanceStats(cmd.Context(), req)
	if err != nil {
		return nil, err
	}
	return map[string]any{"workHours": hours, "distance": dist}, nil
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/worklog/internal/app"
	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"e"},
		Short:   "Manage logbook entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryShowCmd(app),
		newEntryEditCmd(app),
		newEntryRemoveCmd(app),
		newEntryExportCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var in entryInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record the work session of a day",
		Long: `Record the work session of a day.

Without --start and --end an interactive form is shown on a terminal.
An --end before --start is read as ending on the next day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Day == "" {
				in.Day = app.today().Format(domain.DisplayDateLayout)
			}
			if in.Start == "" || in.End == "" {
				if !app.interactive() {
					return fmt.Errorf("--start and --end are required")
				}
				if err := entryForm(&in).Run(); err != nil {
					return err
				}
			}

			e, err := in.toEntry(app.Owner, app.loc())
			if err != nil {
				return err
			}
			if err := app.Entries.Create(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(viewOf(app, e), app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Day, "day", "", "day of the session (dd.MM.yyyy, default today)")
	cmd.Flags().StringVar(&in.Start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&in.End, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&in.Km, "km", "", "distance driven in km")
	cmd.Flags().StringVar(&in.Note, "note", "", "free-text note")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var from, to string
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries, by default those inside the statistics window",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := listRequest(app, from, to, all)
			if err != nil {
				return err
			}
			views, err := app.Entries.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryList(views, app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day (dd.MM.yyyy)")
	cmd.Flags().StringVar(&to, "to", "", "last day (dd.MM.yyyy)")
	cmd.Flags().BoolVar(&all, "all-owners", false, "include entries of every owner")

	return cmd
}

func newEntryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one entry with its deltas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Entries.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("entry %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(viewOf(app, e), app.loc()))
			return nil
		},
	}
}

func newEntryEditCmd(app *App) *cobra.Command {
	var in entryInput

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := app.Entries.GetByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("entry %s: %w", args[0], err)
			}

			flags := cmd.Flags()
			draft := domain.NewDraft(*e)

			if anyChanged(flags, "day", "start", "end") {
				cur := inputOf(*e, app.loc())
				if flags.Changed("day") {
					cur.Day = in.Day
				}
				if flags.Changed("start") {
					cur.Start = in.Start
				}
				if flags.Changed("end") {
					cur.End = in.End
				}
				day, err := domain.ParseDisplayDate(cur.Day)
				if err != nil {
					return err
				}
				start, end, err := shiftTimes(day, cur.Start, cur.End, app.loc())
				if err != nil {
					return err
				}
				draft.Update(func(v *domain.LogbookEntry) {
					v.Date = day
					v.StartTime = start
					v.EndTime = end
				})
			}
			if flags.Changed("km") {
				km, err := parseKm(in.Km)
				if err != nil {
					return fmt.Errorf("--km: %w", err)
				}
				draft.Update(func(v *domain.LogbookEntry) { v.DistanceKm = km })
			}
			if flags.Changed("note") {
				draft.Update(func(v *domain.LogbookEntry) { v.Note = in.Note })
			}

			if !draft.IsDirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}
			if err := draft.Commit(func(v domain.LogbookEntry) error {
				return app.Entries.Update(ctx, &v)
			}); err != nil {
				return err
			}

			updated := draft.Value()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(viewOf(app, &updated), app.loc()))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Day, "day", "", "new day (dd.MM.yyyy)")
	cmd.Flags().StringVar(&in.Start, "start", "", "new start time (HH:MM)")
	cmd.Flags().StringVar(&in.End, "end", "", "new end time (HH:MM)")
	cmd.Flags().StringVar(&in.Km, "km", "", "new distance in km")
	cmd.Flags().StringVar(&in.Note, "note", "", "new note")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newEntryExportCmd(app *App) *cobra.Command {
	var from, to, out string
	var all bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write entries and weekday averages to an .xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := listRequest(app, from, to, all)
			if err != nil {
				return err
			}
			views, err := app.Entries.List(ctx, req)
			if err != nil {
				return err
			}

			statsReq := app.statsRequest(req.Owner)
			hours, err := app.Stats.WeekdayAverages(ctx, statsReq, domain.MetricWorkHours)
			if err != nil {
				return err
			}
			dist, err := app.Stats.WeekdayAverages(ctx, statsReq, domain.MetricDistanceKm)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			wb := export.Workbook{Entries: views, WorkHours: hours, Distance: dist, Location: app.loc()}
			if err := export.WriteXLSX(f, wb); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(views), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day (dd.MM.yyyy)")
	cmd.Flags().StringVar(&to, "to", "", "last day (dd.MM.yyyy)")
	cmd.Flags().StringVarP(&out, "out", "o", "worklog.xlsx", "output file")
	cmd.Flags().BoolVar(&all, "all-owners", false, "include entries of every owner")

	return cmd
}

// listRequest builds a range query. Missing bounds fall back to the statistics window.
func listRequest(a *App, from, to string, all bool) (app.ListEntriesRequest, error) {
	w := a.window()
	req := app.ListEntriesRequest{Owner: a.Owner, From: w.Start, To: w.End}
	if all {
		req.Owner = ""
	}
	if from != "" {
		d, err := domain.ParseDisplayDate(from)
		if err != nil {
			return req, fmt.Errorf("--from: %w", err)
		}
		req.From = d
	}
	if to != "" {
		d, err := domain.ParseDisplayDate(to)
		if err != nil {
			return req, fmt.Errorf("--to: %w", err)
		}
		req.To = d
	}
	if req.To.Before(req.From) {
		return req, fmt.Errorf("--to must not be before --from")
	}
	return req, nil
}

// viewOf pairs e with its metrics for display. Metrics stay zero when the
// entry cannot be measured.
func viewOf(a *App, e *domain.LogbookEntry) app.EntryView {
	v := app.EntryView{Entry: e}
	if m, err := a.Baseline.Compute(e); err == nil {
		v.Metrics = m
	}
	return v
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if flags.Changed(n) {
			return true
		}
	}
	return false
}

func inputOf(e domain.LogbookEntry, loc *time.Location) entryInput {
	return entryInput{
		Day:   e.Date.Format(domain.DisplayDateLayout),
		Start: e.StartTime.In(loc).Format(domain.ClockLayout),
		End:   e.EndTime.In(loc).Format(domain.ClockLayout),
		Note:  e.Note,
	}
}

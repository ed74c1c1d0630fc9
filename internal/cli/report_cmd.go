package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var day, out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the PDF report of a day",
		Long: `Render the PDF report of a day.

A day without an entry still yields a report stating that no session was
recorded. Use --out - to write the PDF to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := app.today()
			if day != "" {
				parsed, err := domain.ParseDisplayDate(day)
				if err != nil {
					return fmt.Errorf("--day: %w", err)
				}
				d = parsed
			}

			pdf, err := app.Reports.GeneratePDF(cmd.Context(), app.Owner, d)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(pdf)
				return err
			}
			if out == "" {
				out = fmt.Sprintf("logbook-%s.pdf", d.Format(domain.DateLayout))
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day to report (dd.MM.yyyy, default today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout (default logbook-YYYY-MM-DD.pdf)")

	return cmd
}

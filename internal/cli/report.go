// internal/cli/report.go
package salarydash

import (
	"fmt"
	"os"

	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd implements 'report', which writes the dashboard for one selection
// as a standalone HTML page.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the dashboard as an HTML page",
	Long:  `The 'report' command builds both figures for a selection and writes them as a standalone HTML dashboard page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		var sel dashboard.Selection
		sel.Country, _ = cmd.Flags().GetString("country")
		sel.Qualification, _ = cmd.Flags().GetString("qualification")
		sel.Measure, _ = cmd.Flags().GetString("measure")

		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		figs, err := dash.Handle(cmd.Context(), sel)
		if err != nil {
			return err
		}
		page, err := report.Generate(figs, dash.Options())
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		success(cmd.OutOrStdout(), "Wrote dashboard report to %s", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "salary_report.html", "output HTML file")
	reportCmd.Flags().String("country", "", "country or area")
	reportCmd.Flags().String("qualification", "", "qualification level")
	reportCmd.Flags().String("measure", "", "measure for the comparison figure")
	rootCmd.AddCommand(reportCmd)
}

// internal/cli/aggregate.go
package salarydash

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mwiater/salarydash/internal/salary"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// aggregateCmd implements 'aggregate', which prints the ordered summary of
// mean hourly salaries per country, experience level and measure.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Print the salary summary table",
	Long: `The 'aggregate' command groups the dataset by country, experience level and measure,
averages the hourly salary of each group and prints the rows ordered by measure, country mean
(highest first) and experience level.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		measure, _ := cmd.Flags().GetString("measure")
		asJSON, _ := cmd.Flags().GetBool("json")

		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		rows, err := dash.Summary(cmd.Context(), measure)
		if err != nil {
			return err
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		writeSummaryTable(cmd.OutOrStdout(), rows)
		return nil
	},
}

// writeSummaryTable renders rows as an aligned text table.
func writeSummaryTable(out io.Writer, rows []salary.SummaryRow) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Measure", "Country or Area", "Experience Level", "Mean Salary per Hour", "Measure Mean"})
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append([]string{
			r.Measure,
			r.Country,
			r.Experience,
			formatSalary(r.MeanSalaryPerHour),
			formatSalary(r.MeasureMean),
		})
	}
	table.SetFooter([]string{"", "", "", "Rows", strconv.Itoa(len(rows))})
	table.Render()
}

func formatSalary(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	aggregateCmd.Flags().String("measure", "", "restrict the summary to one measure")
	aggregateCmd.Flags().Bool("json", false, "print the summary as JSON")
	rootCmd.AddCommand(aggregateCmd)
}

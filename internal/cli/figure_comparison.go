// internal/cli/figure_comparison.go
package salarydash

import (
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/spf13/cobra"
)

// figureComparisonCmd implements 'figure comparison', the grouped bar chart of
// one measure across all countries.
var figureComparisonCmd = &cobra.Command{
	Use:   "comparison",
	Short: "Build the international comparison figure",
	Long:  `Build the grouped bar chart comparing the mean hourly salary of every country for one measure, countries ordered by their mean with the highest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		measure, _ := cmd.Flags().GetString("measure")

		_, figs, err := handleSelection(cmd, dashboard.Selection{Measure: measure})
		if err != nil {
			return err
		}
		describeEmpty(cmd.ErrOrStderr(), figs.Comparison)
		return emitFigure(cmd, figs.Comparison)
	},
}

func init() {
	figureComparisonCmd.Flags().String("measure", "", "measure to compare (default from config, then the first measure)")
	figureCmd.AddCommand(figureComparisonCmd)
}

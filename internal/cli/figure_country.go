// internal/cli/figure_country.go
package salarydash

import (
	"fmt"

	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/spf13/cobra"
)

// figureCountryCmd implements 'figure country', the faceted line chart of one
// country and qualification level.
var figureCountryCmd = &cobra.Command{
	Use:   "country",
	Short: "Build the per-country salary figure",
	Long:  `Build the faceted line chart of hourly salary by education level, one facet per measure and one line per experience level, for the selected country and qualification level.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		country, _ := cmd.Flags().GetString("country")
		qualification, _ := cmd.Flags().GetString("qualification")

		dash, figs, err := handleSelection(cmd, dashboard.Selection{Country: country, Qualification: qualification})
		if err != nil {
			return err
		}
		sel := figs.Selection
		if !dash.Dataset().HasCountry(sel.Country) {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %q is not a country or area of the dataset\n", sel.Country)
		} else if !dash.Dataset().HasQualification(sel.Qualification) {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %q is not a qualification level of the dataset\n", sel.Qualification)
		}
		describeEmpty(cmd.ErrOrStderr(), figs.Country)
		return emitFigure(cmd, figs.Country)
	},
}

func init() {
	figureCountryCmd.Flags().String("country", "", "country or area (default from config, then Israel)")
	figureCountryCmd.Flags().String("qualification", "", "qualification level (default from config, then minimum qualification)")
	figureCmd.AddCommand(figureCountryCmd)
}

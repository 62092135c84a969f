// internal/cli/list.go
package salarydash

import (
	"fmt"
	"io"

	"github.com/mwiater/salarydash/internal/salary"
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing selector values and commands",
	Long:  `The 'list' command groups subcommands that print the values the dashboard selectors accept, and the command tree itself.`,
}

var listCountriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries and areas in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		printValues(cmd.OutOrStdout(), dash.Options().Countries, dash.Defaults().Country)
		return nil
	},
}

var listQualificationsCmd = &cobra.Command{
	Use:   "qualifications",
	Short: "List the qualification levels in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		printValues(cmd.OutOrStdout(), dash.Options().Qualifications, dash.Defaults().Qualification)
		return nil
	},
}

var listMeasuresCmd = &cobra.Command{
	Use:   "measures",
	Short: "List the measures in display order",
	Run: func(cmd *cobra.Command, args []string) {
		measures := salary.Measures()
		def := measures[0]
		if m := GetConfig().DefaultMeasure; m != "" {
			def = m
		}
		printValues(cmd.OutOrStdout(), measures, def)
	},
}

// printValues prints one value per line, marking the default with '*'.
func printValues(out io.Writer, values []string, def string) {
	for _, v := range values {
		marker := " "
		if v == def {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, v)
	}
}

func init() {
	listCmd.AddCommand(listCountriesCmd)
	listCmd.AddCommand(listQualificationsCmd)
	listCmd.AddCommand(listMeasuresCmd)
	rootCmd.AddCommand(listCmd)
}

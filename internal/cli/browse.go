// internal/cli/browse.go
package salarydash

import (
	"github.com/mwiater/salarydash/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd implements 'browse', the interactive terminal dashboard.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the dashboard in the terminal",
	Long:  `The 'browse' command starts a terminal UI with the country, qualification and measure selectors and renders both figures as text after each selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		return tui.Start(cmd.Context(), dash)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

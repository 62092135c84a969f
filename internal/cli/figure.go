// internal/cli/figure.go
package salarydash

import (
	"fmt"
	"io"

	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/render"
	"github.com/spf13/cobra"
)

// figureCmd represents the 'figure' command group for building one chart.
var figureCmd = &cobra.Command{
	Use:   "figure",
	Short: "Group commands for building a single dashboard figure",
	Long:  `The 'figure' command groups subcommands that build one of the two dashboard figures and print it as a JSON chart specification or write it as a PNG image.`,
}

func init() {
	figureCmd.PersistentFlags().String("png", "", "write the figure as a PNG image to this file")
	rootCmd.AddCommand(figureCmd)
}

// emitFigure writes fig as PNG when pngPath is set and as JSON otherwise.
func emitFigure(cmd *cobra.Command, fig charts.Figure) error {
	pngPath, _ := cmd.Flags().GetString("png")
	if pngPath == "" {
		return writeJSON(cmd.OutOrStdout(), fig)
	}
	if err := writeFile(pngPath, func(w io.Writer) error { return render.PNG(w, fig) }); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "Wrote %s figure to %s", fig.ID, pngPath)
	return nil
}

// handleSelection runs one selection event against a freshly opened dashboard.
func handleSelection(cmd *cobra.Command, sel dashboard.Selection) (*dashboard.Dashboard, dashboard.Figures, error) {
	dash, err := openDashboard(cmd.Context())
	if err != nil {
		return nil, dashboard.Figures{}, err
	}
	figs, err := dash.Handle(cmd.Context(), sel)
	return dash, figs, err
}

// describeEmpty notes that a figure has no data.
func describeEmpty(out io.Writer, fig charts.Figure) {
	if fig.Empty() {
		fmt.Fprintf(out, "note: %s figure has no data for this selection\n", fig.ID)
	}
}

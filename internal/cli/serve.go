// internal/cli/serve.go
package salarydash

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mwiater/salarydash/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd implements 'serve', which answers dashboard selection events over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long:  `The 'serve' command loads the dataset once and serves the dashboard page, the chart specifications and PNG renderings until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !DebugEnabled() {
			gin.SetMode(gin.ReleaseMode)
		}
		addr := GetConfig().Addr()

		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		success(cmd.OutOrStdout(), "Serving %d countries on %s", len(dash.Options().Countries), addr)
		return server.Run(ctx, addr, dash)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("listenAddr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

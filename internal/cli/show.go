// internal/cli/show.go
package salarydash

import (
	"errors"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/mwiater/salarydash/internal/appconfig"
	"github.com/spf13/cobra"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display resources or information related to salarydash.`,
}

// showConfigCmd prints the effective configuration after flags and
// environment overrides were applied.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags and SALARYDASH_* environment variables accordingly. With --raw the config file is dumped as read from disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if !raw {
			cfg := GetConfig()
			appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, *cfg)
			return nil
		}

		onDisk, err := appconfig.Load(cfgFile)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "No config file found.")
			return nil
		}
		if err != nil {
			return err
		}
		pp.Fprintln(cmd.OutOrStdout(), onDisk)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().Bool("raw", false, "dump the config file as read, without overrides")
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}

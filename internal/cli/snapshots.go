// internal/cli/snapshots.go
package salarydash

import (
	"errors"
	"fmt"
	"time"

	"github.com/mwiater/salarydash/internal/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// snapshotsCmd represents the 'snapshots' command group for saved summaries.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Group commands for saved summary snapshots",
	Long:  `The 'snapshots' command groups subcommands that inspect the summary snapshots saved by 'export'.`,
}

// snapshotsListCmd implements 'snapshots list'.
var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snaps, err := st.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshots saved.")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"ID", "Created", "Rows", "Source", "Checksum"})
		table.SetAutoWrapText(false)
		for _, s := range snaps {
			table.Append([]string{
				s.ID,
				s.CreatedAt.Local().Format(time.DateTime),
				fmt.Sprint(s.RowCount),
				s.Source,
				shortChecksum(s.Checksum),
			})
		}
		table.Render()
		return nil
	},
}

// snapshotsShowCmd implements 'snapshots show ID'.
var snapshotsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print the summary rows of one snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rows, err := st.SnapshotRows(cmd.Context(), args[0])
		if errors.Is(err, store.ErrSnapshotNotFound) {
			return fmt.Errorf("snapshot %q: %w", args[0], err)
		}
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

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = GetConfig().SnapshotDBPath()
	}
	return store.Open(path)
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func init() {
	snapshotsCmd.PersistentFlags().String("db", "", "snapshot database (default from config, then salarydash.db)")
	snapshotsShowCmd.Flags().Bool("json", false, "print the rows as JSON")
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

// internal/cli/export.go
package salarydash

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/salary"
	"github.com/mwiater/salarydash/internal/store"
	"github.com/spf13/cobra"
)

// summaryColumns is the CSV header of an exported summary.
var summaryColumns = []string{
	dataset.ColumnCountry,
	dataset.ColumnExperience,
	dataset.ColumnMeasure,
	"Mean Salary per Hour",
	"Measure Mean",
}

// exportCmd implements 'export', which writes the aggregated summary to CSV,
// JSON or a snapshot database. Without any target the summary is saved as a
// snapshot in the configured database.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the salary summary",
	Long:  `The 'export' command aggregates the dataset and writes the ordered summary rows to a CSV file, a JSON file and/or a SQLite snapshot database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		jsonPath, _ := cmd.Flags().GetString("json")
		dbPath, _ := cmd.Flags().GetString("db")
		measure, _ := cmd.Flags().GetString("measure")
		if csvPath == "" && jsonPath == "" && dbPath == "" {
			dbPath = GetConfig().SnapshotDBPath()
		}

		dash, err := openDashboard(cmd.Context())
		if err != nil {
			return err
		}
		rows, err := dash.Summary(cmd.Context(), measure)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if csvPath != "" {
			if err := writeFile(csvPath, func(w io.Writer) error { return writeSummaryCSV(w, rows) }); err != nil {
				return err
			}
			success(out, "Wrote %d rows to %s", len(rows), csvPath)
		}
		if jsonPath != "" {
			if err := writeFile(jsonPath, func(w io.Writer) error { return writeJSON(w, rows) }); err != nil {
				return err
			}
			success(out, "Wrote %d rows to %s", len(rows), jsonPath)
		}
		if dbPath != "" {
			st, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			ds := dash.Dataset()
			snap, err := st.SaveSnapshot(cmd.Context(), ds.Source(), ds.Checksum(), rows)
			if err != nil {
				return err
			}
			success(out, "Saved snapshot %s (%d rows) to %s", snap.ID, snap.RowCount, dbPath)
		}
		return nil
	},
}

// writeSummaryCSV writes rows with a header line, salaries at full precision.
func writeSummaryCSV(w io.Writer, rows []salary.SummaryRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, strings.Join(summaryColumns, ","))
		return err
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, summaryColumns)
	for _, r := range rows {
		records = append(records, []string{
			r.Country,
			r.Experience,
			r.Measure,
			strconv.FormatFloat(r.MeanSalaryPerHour, 'f', -1, 64),
			strconv.FormatFloat(r.MeasureMean, 'f', -1, 64),
		})
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("build summary frame: %w", df.Err)
	}
	return df.WriteCSV(w)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func init() {
	exportCmd.Flags().String("csv", "", "write the summary as CSV to this file")
	exportCmd.Flags().String("json", "", "write the summary as JSON to this file")
	exportCmd.Flags().String("db", "", "save the summary as a snapshot in this SQLite database")
	exportCmd.Flags().String("measure", "", "restrict the summary to one measure")
	rootCmd.AddCommand(exportCmd)
}

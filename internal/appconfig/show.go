// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the effective configuration, defaults applied.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Dataset:               %s\n", cfg.DatasetPath())
	fmt.Fprintf(out, "  Fetch Timeout:         %s\n", cfg.FetchTimeout())
	if cfg.StyleFile != "" {
		fmt.Fprintf(out, "  Style File:            %s\n", cfg.StyleFile)
	} else {
		fmt.Fprintf(out, "  Style:                 %s\n", cfg.StyleName())
	}
	fmt.Fprintf(out, "  Default Country:       %s\n", orDefault(cfg.DefaultCountry))
	fmt.Fprintf(out, "  Default Qualification: %s\n", orDefault(cfg.DefaultQualification))
	fmt.Fprintf(out, "  Default Measure:       %s\n", orDefault(cfg.DefaultMeasure))
	fmt.Fprintf(out, "  Listen Address:        %s\n", cfg.Addr())
	fmt.Fprintf(out, "  Snapshot DB:           %s\n", cfg.SnapshotDBPath())
	fmt.Fprintf(out, "  Log File:              %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:                 %v\n", cfg.Debug)
}

func orDefault(v string) string {
	if v == "" {
		return "(built-in)"
	}
	return v
}

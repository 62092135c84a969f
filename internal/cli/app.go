// internal/cli/app.go
package salarydash

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/salarydash/internal/appconfig"
	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/logging"
)

var (
	successfulResult = color.New(color.FgGreen).SprintFunc()
	failedResult     = color.New(color.FgRed).SprintFunc()
)

// success prints a green status line.
func success(out io.Writer, format string, args ...any) {
	fmt.Fprintln(out, successfulResult("✔ "+fmt.Sprintf(format, args...)))
}

// failure prints a red status line for err.
func failure(out io.Writer, err error) {
	fmt.Fprintln(out, failedResult("✘ "+err.Error()))
}

// resolveStyle returns the style file when one is configured, otherwise the
// named preset.
func resolveStyle(cfg *appconfig.Config) (charts.Style, error) {
	if path := strings.TrimSpace(cfg.StyleFile); path != "" {
		return charts.LoadStyle(path)
	}
	return charts.Preset(cfg.StyleName())
}

// loadDataset reads the configured dataset.
func loadDataset(ctx context.Context, cfg *appconfig.Config) (*dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, cfg.DatasetPath(), cfg.FetchTimeout())
	if err != nil {
		return nil, err
	}
	if DebugEnabled() {
		logging.LogEvent("[DATASET] source=%q rows=%d checksum=%s", ds.Source(), ds.Len(), ds.Checksum())
	}
	return ds, nil
}

// openDashboard loads the dataset and style and builds the dashboard with the
// configured default selection.
func openDashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	cfg := GetConfig()
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}
	style, err := resolveStyle(cfg)
	if err != nil {
		return nil, err
	}
	return dashboard.New(ds, style, dashboard.Selection{
		Country:       cfg.DefaultCountry,
		Qualification: cfg.DefaultQualification,
		Measure:       cfg.DefaultMeasure,
	})
}

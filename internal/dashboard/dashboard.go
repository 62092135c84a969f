// internal/dashboard/dashboard.go
// Package dashboard answers selection events with freshly computed figures.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/logging"
	"github.com/mwiater/salarydash/internal/salary"
)

const (
	// DefaultCountry is preselected when the configuration names none.
	DefaultCountry = "Israel"
	// DefaultQualification is preselected when the configuration names none.
	DefaultQualification = "Minimum qualification at this stage of career"
)

// Selection is the state of the three dashboard selectors.
type Selection struct {
	Country       string `json:"country"`
	Qualification string `json:"qualification"`
	Measure       string `json:"measure"`
}

// Options lists every value the selectors can take.
type Options struct {
	Countries      []string  `json:"countries"`
	Qualifications []string  `json:"qualifications"`
	Measures       []string  `json:"measures"`
	Defaults       Selection `json:"defaults"`
}

// Figures is the result of one selection event.
type Figures struct {
	RenderID   string        `json:"renderId"`
	Selection  Selection     `json:"selection"`
	Country    charts.Figure `json:"country"`
	Comparison charts.Figure `json:"comparison"`
}

// Dashboard holds the read-only dataset and the figure style. It keeps no
// per-request state, so Handle may be called from several goroutines.
type Dashboard struct {
	ds       *dataset.Dataset
	style    charts.Style
	defaults Selection
}

// New validates the dataset categories once and resolves the default
// selection against what the dataset contains.
func New(ds *dataset.Dataset, style charts.Style, preferred Selection) (*Dashboard, error) {
	if ds == nil {
		return nil, fmt.Errorf("dashboard: %w: no dataset", dataset.ErrInvalidDataset)
	}
	if _, err := salary.Aggregate(ds.Observations()); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &Dashboard{
		ds:       ds,
		style:    style,
		defaults: DefaultSelection(ds, preferred),
	}, nil
}

// DefaultSelection picks the preferred value of each selector when the dataset
// has it, then the built-in default, then the first available value.
func DefaultSelection(ds *dataset.Dataset, preferred Selection) Selection {
	sel := Selection{
		Country:       pick(ds.Countries(), preferred.Country, DefaultCountry),
		Qualification: pick(ds.Qualifications(), preferred.Qualification, DefaultQualification),
		Measure:       pick(salary.Measures(), preferred.Measure),
	}
	return sel
}

func pick(available []string, candidates ...string) string {
	for _, c := range candidates {
		for _, a := range available {
			if c != "" && a == c {
				return a
			}
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// Defaults returns the resolved default selection.
func (d *Dashboard) Defaults() Selection { return d.defaults }

// Dataset returns the dataset the dashboard reads from.
func (d *Dashboard) Dataset() *dataset.Dataset { return d.ds }

// Style returns the figure style.
func (d *Dashboard) Style() charts.Style { return d.style }

// Options lists the selectable values.
func (d *Dashboard) Options() Options {
	return Options{
		Countries:      d.ds.Countries(),
		Qualifications: d.ds.Qualifications(),
		Measures:       salary.Measures(),
		Defaults:       d.defaults,
	}
}

// Summary aggregates the dataset. A non-empty measure restricts the rows to
// that measure.
func (d *Dashboard) Summary(ctx context.Context, measure string) ([]salary.SummaryRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := salary.Aggregate(d.ds.Observations())
	if err != nil {
		return nil, err
	}
	if measure == "" {
		return rows, nil
	}
	if _, err := salary.MeasureRank(measure); err != nil {
		return nil, err
	}
	return salary.ForMeasure(rows, measure), nil
}

// Resolve fills the empty fields of sel from the defaults.
func (d *Dashboard) Resolve(sel Selection) Selection {
	if sel.Country == "" {
		sel.Country = d.defaults.Country
	}
	if sel.Qualification == "" {
		sel.Qualification = d.defaults.Qualification
	}
	if sel.Measure == "" {
		sel.Measure = d.defaults.Measure
	}
	return sel
}

// Handle computes both figures for a selection. Empty selection fields take
// their default. A country or qualification absent from the dataset yields an
// empty country figure; a measure outside the fixed order is an error.
func (d *Dashboard) Handle(ctx context.Context, sel Selection) (Figures, error) {
	sel = d.Resolve(sel)
	renderID := uuid.NewString()

	figs, err := d.build(ctx, sel)
	if err != nil {
		logging.LogSelection(renderID, sel.Country, sel.Qualification, sel.Measure, err)
		return Figures{}, err
	}
	figs.RenderID = renderID
	logging.LogSelection(renderID, sel.Country, sel.Qualification, sel.Measure, map[string]int{
		"countryFacets":     len(figs.Country.Facets),
		"comparisonSeries":  seriesCount(figs.Comparison),
		"comparisonCountry": len(figs.Comparison.XAxis.Categories),
	})
	return figs, nil
}

func (d *Dashboard) build(ctx context.Context, sel Selection) (Figures, error) {
	if err := ctx.Err(); err != nil {
		return Figures{}, err
	}
	if _, err := salary.MeasureRank(sel.Measure); err != nil {
		return Figures{}, err
	}
	country, err := charts.CountryFigure(d.ds, sel.Country, sel.Qualification, d.style)
	if err != nil {
		return Figures{}, fmt.Errorf("country figure: %w", err)
	}
	rows, err := salary.Aggregate(d.ds.Observations())
	if err != nil {
		return Figures{}, fmt.Errorf("aggregate: %w", err)
	}
	comparison, err := charts.ComparisonFigure(rows, sel.Measure, d.style)
	if err != nil {
		return Figures{}, fmt.Errorf("comparison figure: %w", err)
	}
	return Figures{Selection: sel, Country: country, Comparison: comparison}, nil
}

func seriesCount(fig charts.Figure) int {
	n := 0
	for _, f := range fig.Facets {
		n += len(f.Series)
	}
	return n
}

// internal/charts/country.go
package charts

import (
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/salary"
)

// CountryFigureID identifies the per-country figure.
const CountryFigureID = "country"

type educationKey struct {
	measure    string
	experience string
	education  string
}

// CountryFigure builds the faceted line chart of one country and
// qualification level: one facet per measure, one line per experience level
// and one point per education level. Duplicate observations are averaged. A
// selection without data yields a figure with no facets.
func CountryFigure(ds *dataset.Dataset, country, qualification string, style Style) (Figure, error) {
	observations := ds.Filter(country, qualification)

	values := make(map[educationKey][]float64)
	for _, o := range observations {
		if _, err := salary.MeasureRank(o.Measure); err != nil {
			return Figure{}, err
		}
		if _, err := salary.ExperienceRank(o.Experience); err != nil {
			return Figure{}, err
		}
		if _, err := salary.EducationRank(o.Education); err != nil {
			return Figure{}, err
		}
		key := educationKey{measure: o.Measure, experience: o.Experience, education: o.Education}
		values[key] = append(values[key], o.SalaryPerHour)
	}

	educations := salary.EducationLevels()
	ticks := make([]string, len(educations))
	for i, e := range educations {
		ticks[i] = style.EducationTick(e)
	}

	fig := Figure{
		ID:     CountryFigureID,
		Kind:   KindLine,
		Title:  "Actual Salary (USD) per Hour in " + country,
		Width:  style.CountrySize.Width,
		Height: style.CountrySize.Height,
		XAxis: Axis{
			Categories: educations,
			TickLabels: ticks,
		},
		YAxis:        Axis{Title: "Actual Salary per Hour"},
		Legend:       Legend{Order: LegendReversed, Orientation: Vertical},
		Margin:       style.CountryMargin,
		FacetSpacing: style.FacetSpacing,
		LineWidth:    style.LineWidth,
		Annotations:  []Annotation{{Text: "Education level", X: 0.5, Y: -0.8}},
		Facets:       []Facet{},
	}

	for _, measure := range salary.Measures() {
		var facet Facet
		for _, experience := range salary.ExperienceLevels() {
			series := Series{Name: experience, Color: style.Color(experience)}
			for _, education := range educations {
				v, ok := values[educationKey{measure: measure, experience: experience, education: education}]
				if !ok {
					continue
				}
				series.Points = append(series.Points, Point{Label: education, Value: salary.Mean(v)})
			}
			if len(series.Points) > 0 {
				facet.Series = append(facet.Series, series)
			}
		}
		if len(facet.Series) == 0 {
			continue
		}
		facet.Title = "<b>Measure</b>" + style.TickBreak + measure
		fig.Facets = append(fig.Facets, facet)
	}
	return fig, nil
}

// internal/charts/comparison.go
package charts

import (
	"github.com/mwiater/salarydash/internal/salary"
)

// ComparisonFigureID identifies the international comparison figure.
const ComparisonFigureID = "comparison"

// ComparisonFigure builds the grouped bar chart of one measure across every
// country. rows must be the output of salary.Aggregate. Countries are ordered
// by their measure mean, highest first, and bars within a country run from
// the highest experience level down.
func ComparisonFigure(rows []salary.SummaryRow, measure string, style Style) (Figure, error) {
	if _, err := salary.MeasureRank(measure); err != nil {
		return Figure{}, err
	}

	type cell struct{ country, experience string }
	means := make(map[cell]float64)
	for _, r := range salary.ForMeasure(rows, measure) {
		if _, err := salary.ExperienceRank(r.Experience); err != nil {
			return Figure{}, err
		}
		means[cell{country: r.Country, experience: r.Experience}] = r.MeanSalaryPerHour
	}

	countries := salary.CountryRanking(rows, measure)
	ticks := make([]string, len(countries))
	for i, c := range countries {
		ticks[i] = style.highlight(c)
	}

	facet := Facet{Title: measure}
	levels := salary.ExperienceLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		experience := levels[i]
		series := Series{Name: experience, Color: style.Color(experience)}
		for _, country := range countries {
			if v, ok := means[cell{country: country, experience: experience}]; ok {
				series.Points = append(series.Points, Point{Label: country, Value: v})
			}
		}
		if len(series.Points) > 0 {
			facet.Series = append(facet.Series, series)
		}
	}

	fig := Figure{
		ID:     ComparisonFigureID,
		Kind:   KindGroupedBar,
		Title:  "International Comparison of Actual Salary (USD) per Hour",
		Width:  style.ComparisonSize.Width,
		Height: style.ComparisonSize.Height,
		XAxis: Axis{
			Title:      "Country or Area",
			Categories: countries,
			TickLabels: ticks,
			TickAngle:  style.ComparisonTickAngle,
		},
		Legend:      Legend{Title: "Experience Level", Order: LegendNormal, Orientation: Horizontal},
		Margin:      style.ComparisonMargin,
		Annotations: []Annotation{{Text: "Actual Salary per Hour", X: -0.07, Y: 0.5, Angle: -90}},
		Facets:      []Facet{},
	}
	if len(facet.Series) > 0 {
		fig.Facets = append(fig.Facets, facet)
	}
	return fig, nil
}

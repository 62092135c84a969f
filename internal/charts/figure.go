// internal/charts/figure.go
// Package charts turns salary data into render-agnostic chart specifications
// for the per-country and international comparison views.
package charts

// Kind identifies how a figure is drawn.
type Kind string

const (
	// KindLine draws one line per series across categorical x ticks.
	KindLine Kind = "line"
	// KindGroupedBar draws one bar per series, grouped by x category.
	KindGroupedBar Kind = "grouped_bar"
)

// Legend trace orders.
const (
	LegendNormal   = "normal"
	LegendReversed = "reversed"
)

// Legend orientations.
const (
	Vertical   = "v"
	Horizontal = "h"
)

// Point is a single categorical data point.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is one colored trace within a facet.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Facet is one panel of a figure.
type Facet struct {
	Title  string   `json:"title"`
	Series []Series `json:"series"`
}

// Axis describes the categories and tick labels along one axis.
type Axis struct {
	Title      string   `json:"title,omitempty"`
	Categories []string `json:"categories,omitempty"`
	TickLabels []string `json:"tickLabels,omitempty"`
	TickAngle  int      `json:"tickAngle,omitempty"`
}

// Legend controls how series are listed.
type Legend struct {
	Title       string `json:"title,omitempty"`
	Order       string `json:"order"`
	Orientation string `json:"orientation"`
}

// Margin is the space around the plot area in pixels.
type Margin struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// Annotation is free text placed in paper coordinates.
type Annotation struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle int     `json:"angle,omitempty"`
}

// Figure is a complete chart specification.
type Figure struct {
	ID           string       `json:"id"`
	Kind         Kind         `json:"kind"`
	Title        string       `json:"title"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	XAxis        Axis         `json:"xAxis"`
	YAxis        Axis         `json:"yAxis"`
	Facets       []Facet      `json:"facets"`
	Legend       Legend       `json:"legend"`
	Margin       Margin       `json:"margin"`
	FacetSpacing float64      `json:"facetSpacing,omitempty"`
	LineWidth    float64      `json:"lineWidth,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

// Empty reports whether the figure has no data points at all.
func (f Figure) Empty() bool {
	for _, facet := range f.Facets {
		for _, s := range facet.Series {
			if len(s.Points) > 0 {
				return false
			}
		}
	}
	return true
}

// TickLabel returns the display label for a category, or the category itself
// when no tick labels were set.
func (a Axis) TickLabel(category string) string {
	for i, c := range a.Categories {
		if c == category && i < len(a.TickLabels) {
			return a.TickLabels[i]
		}
	}
	return category
}

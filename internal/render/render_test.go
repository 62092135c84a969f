// internal/render/render_test.go
package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mwiater/salarydash/internal/charts"
)

func lineFigure() charts.Figure {
	return charts.Figure{
		ID:     charts.CountryFigureID,
		Kind:   charts.KindLine,
		Title:  "Actual Salary (USD) per Hour in Israel",
		Width:  1000,
		Height: 300,
		XAxis: charts.Axis{
			Categories: []string{"Primary education", "Upper secondary general education"},
			TickLabels: []string{"Primary <br>education", "Upper secondary <br>education"},
		},
		YAxis:        charts.Axis{Title: "Actual Salary per Hour"},
		Legend:       charts.Legend{Order: charts.LegendReversed},
		FacetSpacing: 0.1,
		LineWidth:    3.5,
		Facets: []charts.Facet{
			{Title: "<b>Measure</b><br>Statutory teaching time", Series: []charts.Series{
				{Name: "No Experience", Color: "#fdd0a2", Points: []charts.Point{{Label: "Primary education", Value: 20}, {Label: "Upper secondary general education", Value: 31}}},
				{Name: "Maximum Experience", Color: "#7f2704", Points: []charts.Point{{Label: "Primary education", Value: 44}}},
			}},
			{Title: "<b>Measure</b><br>Total statutory working time", Series: []charts.Series{
				{Name: "No Experience", Color: "#fdd0a2", Points: []charts.Point{{Label: "Primary education", Value: 12}}},
			}},
		},
	}
}

func TestPNGLineFigure(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, lineFigure()); err != nil {
		t.Fatalf("PNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w := img.Bounds().Dx(); w != 1000 {
		t.Fatalf("expected width 1000, got %d", w)
	}
}

func TestPNGGroupedBars(t *testing.T) {
	fig := charts.Figure{
		ID:     charts.ComparisonFigureID,
		Kind:   charts.KindGroupedBar,
		Title:  "International Comparison of Actual Salary (USD) per Hour",
		Width:  900,
		Height: 400,
		XAxis: charts.Axis{
			Categories: []string{"Finland", "Israel"},
			TickLabels: []string{"Finland", "<b>Israel</b>"},
			TickAngle:  -45,
		},
		Legend: charts.Legend{Title: "Experience Level", Order: charts.LegendNormal, Orientation: charts.Horizontal},
		Facets: []charts.Facet{{Title: "Statutory teaching time", Series: []charts.Series{
			{Name: "Maximum Experience", Color: "#7f2704", Points: []charts.Point{{Label: "Finland", Value: 60}, {Label: "Israel", Value: 40}}},
			{Name: "No Experience", Color: "#fdd0a2", Points: []charts.Point{{Label: "Israel", Value: 20}}},
		}}},
	}
	var buf bytes.Buffer
	if err := PNG(&buf, fig); err != nil {
		t.Fatalf("PNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 900 || img.Bounds().Dy() != 400 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestPNGEmptyFigure(t *testing.T) {
	var buf bytes.Buffer
	fig := charts.Figure{Kind: charts.KindLine, Title: "Actual Salary (USD) per Hour in Atlantis", Width: 640, Height: 200}
	if err := PNG(&buf, fig); err != nil {
		t.Fatalf("PNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 200 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestPNGUnsupportedKind(t *testing.T) {
	fig := lineFigure()
	fig.Kind = "pie"
	if err := PNG(&bytes.Buffer{}, fig); err == nil {
		t.Fatal("expected an error for an unsupported kind")
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor("#fd8d3c")
	if c.R != 0xfd || c.G != 0x8d || c.B != 0x3c {
		t.Fatalf("unexpected color %+v", c)
	}
	if hexColor("red") != hexColor("") {
		t.Fatal("invalid colors should share the fallback")
	}
}

// internal/render/render.go
// Package render draws chart specifications as PNG images with go-chart.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/util"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	defaultWidth  = 1200
	defaultHeight = 400
	// minFacetWidth keeps narrow facets readable when a figure has many of them.
	minFacetWidth = 240
)

// PNG writes fig to w. Figures without data points produce a blank canvas
// carrying only the title.
func PNG(w io.Writer, fig charts.Figure) error {
	width, height := fig.Width, fig.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if fig.Empty() {
		return png.Encode(w, blank(width, height, util.PlainLabel(fig.Title)))
	}

	switch fig.Kind {
	case charts.KindLine:
		img, err := lineFacets(fig, width, height)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	case charts.KindGroupedBar:
		return groupedBars(w, fig, width, height)
	default:
		return fmt.Errorf("render: unsupported figure kind %q", fig.Kind)
	}
}

// lineFacets renders each facet as its own line chart and places them side by
// side on one canvas under the figure title.
func lineFacets(fig charts.Figure, width, height int) (image.Image, error) {
	facetWidth := width / len(fig.Facets)
	if facetWidth < minFacetWidth {
		facetWidth = minFacetWidth
	}
	gap := int(float64(facetWidth) * fig.FacetSpacing / 2)
	titleHeight := 28
	canvas := blank(facetWidth*len(fig.Facets), height+titleHeight, util.PlainLabel(fig.Title))

	yRange := valueRange(fig)
	for i, facet := range fig.Facets {
		img, err := lineFacet(fig, facet, facetWidth-gap, height, yRange)
		if err != nil {
			return nil, fmt.Errorf("render facet %q: %w", util.PlainLabel(facet.Title), err)
		}
		offset := image.Pt(i*facetWidth+gap/2, titleHeight)
		draw.Draw(canvas, img.Bounds().Add(offset), img, img.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

func lineFacet(fig charts.Figure, facet charts.Facet, width, height int, yRange *chart.ContinuousRange) (image.Image, error) {
	index := make(map[string]float64, len(fig.XAxis.Categories))
	ticks := make([]chart.Tick, 0, len(fig.XAxis.Categories))
	for i, c := range fig.XAxis.Categories {
		index[c] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: util.PlainLabel(fig.XAxis.TickLabel(c))})
	}

	series := make([]chart.Series, 0, len(facet.Series))
	for _, s := range facet.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			x, ok := index[p.Label]
			if !ok {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, p.Value)
		}
		col := hexColor(s.Color)
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: fig.LineWidth,
				DotColor:    col,
				DotWidth:    fig.LineWidth + 1,
			},
		})
	}
	if fig.Legend.Order == charts.LegendReversed {
		for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
			series[i], series[j] = series[j], series[i]
		}
	}

	ch := chart.Chart{
		Title:      util.PlainLabel(facet.Title),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 48}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(ticks)) - 0.5},
		},
		YAxis:  chart.YAxis{Name: fig.YAxis.Title, Range: yRange},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// groupedBars lays the series of each category out as adjacent bars with an
// empty slot between categories.
func groupedBars(w io.Writer, fig charts.Figure, width, height int) error {
	facet := fig.Facets[0]
	var bars []chart.Value
	for ci, category := range fig.XAxis.Categories {
		if ci > 0 {
			bars = append(bars, chart.Value{Label: "", Value: 0, Style: chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent}})
		}
		first := true
		for _, s := range facet.Series {
			v, ok := pointValue(s, category)
			if !ok {
				continue
			}
			label := ""
			if first {
				label = util.PlainLabel(fig.XAxis.TickLabel(category))
				first = false
			}
			col := hexColor(s.Color)
			bars = append(bars, chart.Value{
				Label: label,
				Value: v,
				Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			})
		}
	}

	entries := make([]legendEntry, 0, len(facet.Series))
	for _, s := range facet.Series {
		entries = append(entries, legendEntry{name: s.Name, color: hexColor(s.Color)})
	}

	bc := chart.BarChart{
		Title:      util.PlainLabel(fig.Title),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40 + fig.Margin.Top, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.Style{TextRotationDegrees: float64(-fig.XAxis.TickAngle)},
		YAxis:      chart.YAxis{Range: valueRange(fig)},
		BarSpacing: 2,
		Bars:       bars,
	}
	bc.Elements = []chart.Renderable{legend(fig.Legend.Title, entries)}
	return bc.Render(chart.PNG, w)
}

func pointValue(s charts.Series, label string) (float64, bool) {
	for _, p := range s.Points {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

type legendEntry struct {
	name  string
	color drawing.Color
}

// legend draws a horizontal row of color swatches in the top-left corner of
// the canvas.
func legend(title string, entries []legendEntry) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := chart.Style{FontSize: 9, FontColor: drawing.ColorBlack}.InheritFrom(defaults)
		style.WriteTextOptionsToRenderer(r)
		x, y := cb.Left+8, cb.Top+4
		if title != "" {
			r.Text(title+":", x, y+10)
			x += r.MeasureText(title+":").Width() + 10
		}
		for _, e := range entries {
			chart.Draw.Box(r, chart.Box{Top: y, Left: x, Right: x + 12, Bottom: y + 12},
				chart.Style{FillColor: e.color, StrokeColor: e.color, StrokeWidth: 1})
			style.WriteTextOptionsToRenderer(r)
			r.Text(e.name, x+16, y+10)
			x += 16 + r.MeasureText(e.name).Width() + 14
		}
	}
}

// valueRange returns a y range from zero to a rounded maximum across every
// point of the figure.
func valueRange(fig charts.Figure) *chart.ContinuousRange {
	peak := 0.0
	for _, f := range fig.Facets {
		for _, s := range f.Series {
			for _, p := range s.Points {
				if p.Value > peak {
					peak = p.Value
				}
			}
		}
	}
	if peak <= 0 {
		peak = 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(peak)))
	top := math.Ceil(peak*1.05/mag) * mag
	return &chart.ContinuousRange{Min: 0, Max: top}
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(hex)
}

// blank returns a white canvas with title drawn in the top-left corner.
func blank(w, h int, title string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if strings.TrimSpace(title) != "" {
		dr := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  fixed.Point26_6{X: fixed.I(12), Y: fixed.I(20)},
		}
		dr.DrawString(title)
	}
	return img
}

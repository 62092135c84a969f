// internal/report/report.go
// Package report renders the dashboard as a standalone HTML page.
package report

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
)

// PageTitle is the heading of the generated dashboard.
const PageTitle = "Teacher Salary Analysis"

type reportData struct {
	Title       string
	Subtitle    string
	Selection   dashboard.Selection
	Options     dashboard.Options
	FiguresJSON template.JS
}

type reportFigures struct {
	Country    charts.Figure `json:"country"`
	Comparison charts.Figure `json:"comparison"`
}

// Generate renders both figures and the selector options into one HTML page.
// The page submits selector changes back to itself as query parameters.
func Generate(figs dashboard.Figures, opts dashboard.Options) (string, error) {
	payload, err := json.Marshal(reportFigures{Country: figs.Country, Comparison: figs.Comparison})
	if err != nil {
		return "", err
	}

	viewModel := reportData{
		Title:       PageTitle,
		Subtitle:    "Inner look on " + figs.Selection.Country + ", and international comparison",
		Selection:   figs.Selection,
		Options:     opts,
		FiguresJSON: template.JS(payload),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reportTemplate = template.Must(template.New("salary-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    :root {
      --primary: #7f2704;
      --accent: #fd8d3c;
      --light: #fff5eb;
      --border: #fdd0a2;
    }
    body {
      background-color: var(--light);
    }
    .selector-label {
      background-color: var(--border);
      font-weight: 600;
      padding: 0 .3rem;
    }
    .card {
      border-color: var(--border);
    }
    .selected {
      color: var(--accent);
    }
  </style>
</head>
<body>
  <div class="container-fluid py-3">
    <h1>{{ .Title }}</h1>
    <h2 class="h4 text-secondary">{{ .Subtitle }}</h2>

    <form method="get" class="card p-3 mb-3">
      <div class="row">
        <div class="col-md-6">
          <p><span class="selector-label">Want to see the Actual salary in other countries?</span></p>
          <select name="country" class="form-select" onchange="this.form.submit()">
            {{- range .Options.Countries }}
            <option value="{{ . }}"{{ if eq . $.Selection.Country }} selected{{ end }}>{{ . }}</option>
            {{- end }}
          </select>
          <p class="mt-1"><span class="selected">{{ .Selection.Country }}</span> is selected</p>
        </div>
        <div class="col-md-6">
          <p><span class="selector-label">Which Qualification would you like to see?</span></p>
          <select name="qualification" class="form-select" onchange="this.form.submit()">
            {{- range .Options.Qualifications }}
            <option value="{{ . }}"{{ if eq . $.Selection.Qualification }} selected{{ end }}>{{ . }}</option>
            {{- end }}
          </select>
          <p class="mt-1"><span class="selected">{{ .Selection.Qualification }}</span> is selected</p>
        </div>
      </div>
      <div id="country-chart" class="mt-2"></div>
      <input type="hidden" name="measure" value="{{ .Selection.Measure }}">
    </form>

    <form method="get" class="card p-3">
      <input type="hidden" name="country" value="{{ .Selection.Country }}">
      <input type="hidden" name="qualification" value="{{ .Selection.Qualification }}">
      <p><span class="selector-label">Want to see the Actual salary by Measure?</span></p>
      {{- range $i, $m := .Options.Measures }}
      <div class="form-check form-check-inline">
        <input class="form-check-input" type="radio" name="measure" id="measure-{{ $i }}" value="{{ $m }}"{{ if eq $m $.Selection.Measure }} checked{{ end }} onchange="this.form.submit()">
        <label class="form-check-label" for="measure-{{ $i }}">{{ $m }}</label>
      </div>
      {{- end }}
      <p class="mt-1"><span class="selected">{{ .Selection.Measure }}</span> is selected</p>
      <div id="comparison-chart" class="mt-2"></div>
    </form>
  </div>

  <script>
    const figures = {{ .FiguresJSON }};

    function layoutFor(fig) {
      return {
        title: fig.title,
        width: fig.width,
        height: fig.height,
        margin: { t: fig.margin.top, b: fig.margin.bottom, l: fig.margin.left || 80, r: fig.margin.right || 80 },
        legend: {
          title: { text: fig.legend.title || "" },
          traceorder: fig.legend.order,
          orientation: fig.legend.orientation
        },
        annotations: (fig.annotations || []).map(a => ({
          text: a.text, x: a.x, y: a.y, xref: "paper", yref: "paper",
          showarrow: false, textangle: a.angle || 0
        }))
      };
    }

    function lineTraces(fig, layout) {
      const traces = [];
      const facets = fig.facets || [];
      const spacing = fig.facetSpacing || 0;
      const width = facets.length ? (1 - spacing * (facets.length - 1)) / facets.length : 1;
      const ticks = fig.xAxis.categories.map((_, i) => fig.xAxis.tickLabels[i] || fig.xAxis.categories[i]);
      facets.forEach((facet, i) => {
        const suffix = i === 0 ? "" : String(i + 1);
        const start = i * (width + spacing);
        layout["xaxis" + suffix] = {
          domain: [start, start + width], anchor: "y" + suffix,
          type: "category", categoryorder: "array", categoryarray: fig.xAxis.categories,
          tickmode: "array", tickvals: fig.xAxis.categories, ticktext: ticks, ticks: "outside"
        };
        layout["yaxis" + suffix] = { anchor: "x" + suffix, showticklabels: true };
        layout.annotations.push({
          text: facet.title, x: start + width / 2, y: 1.02, xref: "paper", yref: "paper",
          showarrow: false, yanchor: "bottom"
        });
        facet.series.forEach(s => traces.push({
          type: "scatter", mode: "lines", name: s.name, legendgroup: s.name, showlegend: i === 0,
          x: s.points.map(p => p.label), y: s.points.map(p => p.value),
          line: { color: s.color, width: fig.lineWidth }, xaxis: "x" + suffix, yaxis: "y" + suffix,
          hoverinfo: "skip"
        }));
      });
      return traces;
    }

    function barTraces(fig, layout) {
      layout.barmode = "group";
      layout.xaxis = {
        title: { text: fig.xAxis.title }, tickangle: fig.xAxis.tickAngle,
        categoryorder: "array", categoryarray: fig.xAxis.categories,
        tickmode: "array", tickvals: fig.xAxis.categories, ticktext: fig.xAxis.tickLabels
      };
      layout.yaxis = { showticklabels: true };
      const facet = (fig.facets || [])[0];
      if (!facet) {
        return [];
      }
      return facet.series.map(s => ({
        type: "bar", name: s.name, marker: { color: s.color },
        x: s.points.map(p => p.label), y: s.points.map(p => p.value), hoverinfo: "skip"
      }));
    }

    function draw(target, fig) {
      const layout = layoutFor(fig);
      const traces = fig.kind === "grouped_bar" ? barTraces(fig, layout) : lineTraces(fig, layout);
      Plotly.newPlot(target, traces, layout, { displayModeBar: false });
    }

    draw("country-chart", figures.country);
    draw("comparison-chart", figures.comparison);
  </script>
</body>
</html>
`

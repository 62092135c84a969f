// internal/tui/tui.go
// Package tui provides the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/util"
)

// viewState represents the current screen of the terminal dashboard.
type viewState int

const (
	// viewCountrySelector is the state where the user picks a country.
	viewCountrySelector viewState = iota
	// viewQualificationSelector is the state where the user picks a qualification level.
	viewQualificationSelector
	// viewMeasureSelector is the state where the user picks a measure.
	viewMeasureSelector
	// viewFigures shows both figures for the current selection.
	viewFigures
)

const (
	// barWidth is the widest bar drawn in the comparison ranking.
	barWidth = 40
	// nameWidth is the column width of series and country names.
	nameWidth = 24
)

// model is the Bubble Tea model of the terminal dashboard.
type model struct {
	ctx               context.Context
	dash              *dashboard.Dashboard
	state             viewState
	isLoading         bool
	err               error
	countryList       list.Model
	qualificationList list.Model
	measureList       list.Model
	spinner           spinner.Model
	selection         dashboard.Selection
	figures           dashboard.Figures
	width, height     int
	requestStartTime  time.Time
}

// item represents a selectable value in one of the selector lists.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// figuresReadyMsg carries the result of a dashboard render.
type figuresReadyMsg struct{ figures dashboard.Figures }

// figuresErr is sent when the dashboard cannot render the selection.
type figuresErr struct{ error }

func newSelector(title string, values []string, selected, desc string) list.Model {
	items := make([]list.Item, len(values))
	index := 0
	for i, v := range values {
		items[i] = item{title: v, desc: desc}
		if v == selected {
			index = i
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.Select(index)
	return l
}

// initialModel builds the selectors with the dashboard defaults preselected.
func initialModel(ctx context.Context, dash *dashboard.Dashboard) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	opts := dash.Options()
	return &model{
		ctx:               ctx,
		dash:              dash,
		state:             viewCountrySelector,
		spinner:           s,
		selection:         opts.Defaults,
		countryList:       newSelector("Want to see the Actual salary in other countries?", opts.Countries, opts.Defaults.Country, "Country or Area"),
		qualificationList: newSelector("Which Qualification would you like to see?", opts.Qualifications, opts.Defaults.Qualification, "Qualification level"),
		measureList:       newSelector("Want to see the Actual salary by Measure?", opts.Measures, opts.Defaults.Measure, "Measure"),
	}
}

// renderCmd asks the dashboard for both figures of a selection.
func renderCmd(ctx context.Context, dash *dashboard.Dashboard, sel dashboard.Selection) tea.Cmd {
	return func() tea.Msg {
		figs, err := dash.Handle(ctx, sel)
		if err != nil {
			return figuresErr{error: err}
		}
		return figuresReadyMsg{figures: figs}
	}
}

// Init starts the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.state == viewFigures || m.err != nil {
				m.err = nil
				m.state = viewCountrySelector
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.countryList.SetSize(msg.Width-2, msg.Height-4)
		m.qualificationList.SetSize(msg.Width-2, msg.Height-4)
		m.measureList.SetSize(msg.Width-2, msg.Height-4)

	case figuresReadyMsg:
		m.isLoading = false
		m.figures = msg.figures
		m.state = viewFigures
		return m, nil

	case figuresErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil
	}

	switch m.state {
	case viewCountrySelector:
		m.countryList, cmd = m.countryList.Update(msg)
		cmds = append(cmds, cmd)
		if isEnter(msg) {
			if selected, ok := m.countryList.SelectedItem().(item); ok {
				m.selection.Country = selected.title
				m.state = viewQualificationSelector
			}
		}

	case viewQualificationSelector:
		m.qualificationList, cmd = m.qualificationList.Update(msg)
		cmds = append(cmds, cmd)
		if isEnter(msg) {
			if selected, ok := m.qualificationList.SelectedItem().(item); ok {
				m.selection.Qualification = selected.title
				m.state = viewMeasureSelector
			}
		}

	case viewMeasureSelector:
		m.measureList, cmd = m.measureList.Update(msg)
		cmds = append(cmds, cmd)
		if isEnter(msg) && !m.isLoading {
			if selected, ok := m.measureList.SelectedItem().(item); ok {
				m.selection.Measure = selected.title
				m.isLoading = true
				m.requestStartTime = time.Now()
				m.err = nil
				cmds = append(cmds, m.spinner.Tick, renderCmd(m.ctx, m.dash, m.selection))
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func isEnter(msg tea.Msg) bool {
	key, ok := msg.(tea.KeyMsg)
	return ok && key.String() == "enter"
}

// View renders the UI for the current state.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\n(tab to go back, q to quit)", m.err))
	}

	switch m.state {
	case viewCountrySelector, viewQualificationSelector, viewMeasureSelector:
		if m.isLoading {
			timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
			return fmt.Sprintf("\n  %s Building figures... %ss\n", m.spinner.View(), timer)
		}
		var l list.Model
		switch m.state {
		case viewCountrySelector:
			l = m.countryList
		case viewQualificationSelector:
			l = m.qualificationList
		default:
			l = m.measureList
		}
		listView := l.View()
		if l.Title != "" && !strings.Contains(listView, l.Title) {
			listView = fmt.Sprintf("%s\n\n%s", l.Title, listView)
		}
		return lipgloss.NewStyle().Margin(1, 2).Render(listView)

	case viewFigures:
		return m.figuresView()

	default:
		return "Unknown state"
	}
}

func (m *model) figuresView() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("130")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	sel := m.figures.Selection
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Selection:"),
		headerStyle.Render(sel.Country),
		headerStyle.MarginLeft(1).Render(sel.Qualification),
		headerStyle.MarginLeft(1).Render(sel.Measure),
	)
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(" (tab to change, q to quit)")
	b.WriteString(status + help + "\n\n")

	b.WriteString(countryTable(m.figures.Country))
	b.WriteString("\n")
	b.WriteString(comparisonRanking(m.figures.Comparison))
	return b.String()
}

// countryTable lists every line of the country figure as a row of values by
// education level.
func countryTable(fig charts.Figure) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true)
	b.WriteString(titleStyle.Render(fig.Title) + "\n")
	if len(fig.Facets) == 0 {
		b.WriteString("  No data for this selection.\n")
		return b.String()
	}
	for _, facet := range fig.Facets {
		b.WriteString("\n  " + titleStyle.Render(util.PlainLabel(facet.Title)) + "\n")
		for _, s := range facet.Series {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
			var values []string
			for _, p := range s.Points {
				values = append(values, fmt.Sprintf("%s %.2f", util.PlainLabel(fig.XAxis.TickLabel(p.Label)), p.Value))
			}
			b.WriteString(fmt.Sprintf("    %s %s %s\n", swatch, util.FitRunes(s.Name, nameWidth), strings.Join(values, " | ")))
		}
	}
	return b.String()
}

// comparisonRanking draws the comparison figure as horizontal bars, one line
// per country and experience level.
func comparisonRanking(fig charts.Figure) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true)
	b.WriteString(titleStyle.Render(fig.Title) + "\n")
	if len(fig.Facets) == 0 {
		b.WriteString("  No data for this measure.\n")
		return b.String()
	}
	facet := fig.Facets[0]

	peak := 0.0
	for _, s := range facet.Series {
		for _, p := range s.Points {
			if p.Value > peak {
				peak = p.Value
			}
		}
	}
	for rank, country := range fig.XAxis.Categories {
		label := fig.XAxis.TickLabel(country)
		nameStyle := lipgloss.NewStyle()
		if label != country {
			nameStyle = nameStyle.Bold(true)
		}
		b.WriteString(fmt.Sprintf("  %2d. %s\n", rank+1, nameStyle.Render(util.TruncateRunes(country, 2*nameWidth))))
		for _, s := range facet.Series {
			for _, p := range s.Points {
				if p.Label != country {
					continue
				}
				n := 0
				if peak > 0 {
					n = int(p.Value / peak * barWidth)
				}
				bar := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(strings.Repeat("█", n))
				b.WriteString(fmt.Sprintf("      %s %s %.2f\n", util.FitRunes(s.Name, nameWidth), bar, p.Value))
			}
		}
	}
	return b.String()
}

// Start runs the terminal dashboard until the user quits.
func Start(ctx context.Context, dash *dashboard.Dashboard) error {
	p := tea.NewProgram(initialModel(ctx, dash), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// internal/tui/tui_test.go
package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/salary"
)

func newTestDashboard(t *testing.T) *dashboard.Dashboard {
	t.Helper()
	ds := dataset.New("memory", []salary.Observation{
		{Country: "Finland", Qualification: dashboard.DefaultQualification, Education: "Primary education",
			Experience: "Maximum Experience", Measure: "Statutory teaching time", SalaryPerHour: 55},
		{Country: "Israel", Qualification: dashboard.DefaultQualification, Education: "Primary education",
			Experience: "No Experience", Measure: "Statutory teaching time", SalaryPerHour: 21},
		{Country: "Israel", Qualification: dashboard.DefaultQualification, Education: "Upper secondary general education",
			Experience: "Maximum Experience", Measure: "Statutory teaching time", SalaryPerHour: 40},
	})
	style, err := charts.Preset("classic")
	if err != nil {
		t.Fatal(err)
	}
	d, err := dashboard.New(ds, style, dashboard.Selection{})
	if err != nil {
		t.Fatalf("dashboard.New error: %v", err)
	}
	return d
}

// TestSelectorFlow walks the three selectors with their preselected defaults,
// renders the figures and returns to the first selector with tab.
func TestSelectorFlow(t *testing.T) {
	dash := newTestDashboard(t)
	m := initialModel(context.Background(), dash)
	if m.state != viewCountrySelector {
		t.Fatalf("expected country selector, got %v", m.state)
	}
	if out := m.View(); out != "Initializing..." {
		t.Fatalf("expected initializing view before sizing, got %q", out)
	}

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.state != viewQualificationSelector || m.selection.Country != "Israel" {
		t.Fatalf("expected qualification selector with Israel; got state=%v country=%q", m.state, m.selection.Country)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if m.state != viewMeasureSelector || m.selection.Qualification != dashboard.DefaultQualification {
		t.Fatalf("expected measure selector; got state=%v qualification=%q", m.state, m.selection.Qualification)
	}

	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if !m.isLoading || cmd == nil {
		t.Fatalf("expected a render command; loading=%v", m.isLoading)
	}
	if m.selection.Measure != "Statutory teaching time" {
		t.Fatalf("unexpected measure %q", m.selection.Measure)
	}

	msg := renderCmd(context.Background(), dash, m.selection)()
	m2, _ = m.Update(msg)
	m = m2.(*model)
	if m.state != viewFigures || m.isLoading {
		t.Fatalf("expected figures view; got state=%v loading=%v", m.state, m.isLoading)
	}

	out := m.View()
	for _, want := range []string{
		"Actual Salary (USD) per Hour in Israel",
		"International Comparison of Actual Salary (USD) per Hour",
		"Measure Statutory teaching time",
		"1. ",
		"Finland",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*model)
	if m.state != viewCountrySelector {
		t.Fatalf("expected tab to return to the country selector, got %v", m.state)
	}
}

func TestQuit(t *testing.T) {
	m := initialModel(context.Background(), newTestDashboard(t))
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected a quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q", key.String())
		}
	}
}

func TestRenderErrorView(t *testing.T) {
	m := initialModel(context.Background(), newTestDashboard(t))
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m2, _ := m.Update(figuresErr{error: errors.New("boom")})
	m = m2.(*model)
	if !strings.Contains(m.View(), "Error: boom") {
		t.Fatalf("expected error view, got %s", m.View())
	}
	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*model)
	if m.err != nil || m.state != viewCountrySelector {
		t.Fatalf("expected tab to clear the error; err=%v state=%v", m.err, m.state)
	}
}

func TestEmptyCountryTable(t *testing.T) {
	out := countryTable(charts.Figure{Title: "Actual Salary (USD) per Hour in Atlantis"})
	if !strings.Contains(out, "No data for this selection.") {
		t.Fatalf("unexpected table %q", out)
	}
}

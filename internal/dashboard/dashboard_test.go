// internal/dashboard/dashboard_test.go
package dashboard

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dataset"
	"github.com/mwiater/salarydash/internal/salary"
)

const (
	teaching = "Statutory teaching time"
	total    = "Total statutory working time"
	mostQual = "Most prevalent qualification at this stage of career"
)

func obs(country, qualification, experience, measure string, value float64) salary.Observation {
	return salary.Observation{
		Country:       country,
		Qualification: qualification,
		Education:     "Primary education",
		Experience:    experience,
		Measure:       measure,
		SalaryPerHour: value,
	}
}

func newDashboard(t *testing.T, preferred Selection) *Dashboard {
	t.Helper()
	ds := dataset.New("memory", []salary.Observation{
		obs("Finland", mostQual, "No Experience", teaching, 40),
		obs("Israel", DefaultQualification, "No Experience", teaching, 20),
		obs("Israel", DefaultQualification, "Maximum Experience", total, 35),
		obs("Finland", DefaultQualification, "Maximum Experience", teaching, 60),
	})
	style, err := charts.Preset("classic")
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(ds, style, preferred)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return d
}

func TestDefaultSelection(t *testing.T) {
	cases := []struct {
		name      string
		preferred Selection
		want      Selection
	}{
		{"built-in defaults", Selection{}, Selection{"Israel", DefaultQualification, teaching}},
		{"configured values", Selection{"Finland", mostQual, total}, Selection{"Finland", mostQual, total}},
		{"unknown values fall back", Selection{"Atlantis", "PhD", "Overtime"}, Selection{"Israel", DefaultQualification, teaching}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDashboard(t, tc.preferred)
			if got := d.Defaults(); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}

	ds := dataset.New("memory", []salary.Observation{obs("Chile", mostQual, "No Experience", teaching, 1)})
	if got := DefaultSelection(ds, Selection{}); got.Country != "Chile" || got.Qualification != mostQual {
		t.Fatalf("expected first available values, got %+v", got)
	}
}

func TestHandleDefaults(t *testing.T) {
	d := newDashboard(t, Selection{})
	figs, err := d.Handle(context.Background(), Selection{})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if figs.RenderID == "" {
		t.Fatal("expected a render id")
	}
	if figs.Selection != d.Defaults() {
		t.Fatalf("expected defaults to be applied, got %+v", figs.Selection)
	}
	if figs.Country.Title != "Actual Salary (USD) per Hour in Israel" {
		t.Fatalf("unexpected country title %q", figs.Country.Title)
	}
	if len(figs.Country.Facets) != 2 {
		t.Fatalf("expected 2 country facets, got %d", len(figs.Country.Facets))
	}
	if !reflect.DeepEqual(figs.Comparison.XAxis.Categories, []string{"Finland", "Israel"}) {
		t.Fatalf("unexpected comparison countries %v", figs.Comparison.XAxis.Categories)
	}

	again, err := d.Handle(context.Background(), Selection{})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if again.RenderID == figs.RenderID {
		t.Fatal("each render must get its own id")
	}
}

func TestHandleUnknownCountryIsEmpty(t *testing.T) {
	d := newDashboard(t, Selection{})
	figs, err := d.Handle(context.Background(), Selection{Country: "Atlantis"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !figs.Country.Empty() {
		t.Fatal("expected empty country figure")
	}
}

func TestHandleUnknownMeasure(t *testing.T) {
	d := newDashboard(t, Selection{})
	if _, err := d.Handle(context.Background(), Selection{Measure: "Overtime"}); !errors.Is(err, salary.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestHandleCancelledContext(t *testing.T) {
	d := newDashboard(t, Selection{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Handle(ctx, Selection{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHandleConcurrent(t *testing.T) {
	d := newDashboard(t, Selection{})
	want, err := d.Handle(context.Background(), Selection{})
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.Handle(context.Background(), Selection{})
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got.Comparison, want.Comparison) {
				errs <- errors.New("comparison figure differs between calls")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestSummaryAndOptions(t *testing.T) {
	d := newDashboard(t, Selection{})
	rows, err := d.Summary(context.Background(), "")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	rows, err = d.Summary(context.Background(), total)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected 1 total row, got %d, %v", len(rows), err)
	}
	if _, err := d.Summary(context.Background(), "Overtime"); !errors.Is(err, salary.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	opts := d.Options()
	if !reflect.DeepEqual(opts.Countries, []string{"Finland", "Israel"}) {
		t.Fatalf("unexpected countries %v", opts.Countries)
	}
	if len(opts.Measures) != 3 || opts.Defaults != d.Defaults() {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestNewRejectsUnknownCategories(t *testing.T) {
	ds := dataset.New("memory", []salary.Observation{obs("A", mostQual, "Intern", teaching, 1)})
	style, _ := charts.Preset("")
	if _, err := New(ds, style, Selection{}); !errors.Is(err, salary.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if _, err := New(nil, style, Selection{}); !errors.Is(err, dataset.ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
}

// internal/dataset/dataset_test.go
package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const header = "Country or Area,Qualification level,Education level,Experience Level,Measure,Actual Salary per Hour\n"

// TestLoadSample reads the fixture with its leading index column and checks
// the derived category lists.
func TestLoadSample(t *testing.T) {
	ds, err := Load(context.Background(), filepath.Join("testdata", "sample.csv"), 0)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Len() != 6 {
		t.Fatalf("expected 6 observations, got %d", ds.Len())
	}
	if got := ds.Countries(); !reflect.DeepEqual(got, []string{"Israel", "Finland"}) {
		t.Fatalf("unexpected countries %v", got)
	}
	wantQual := []string{
		"Minimum qualification at this stage of career",
		"Most prevalent qualification at this stage of career",
	}
	if got := ds.Qualifications(); !reflect.DeepEqual(got, wantQual) {
		t.Fatalf("unexpected qualifications %v", got)
	}
	if ds.Checksum() == "" {
		t.Fatal("expected a checksum for a file-backed dataset")
	}
	first := ds.Observations()[0]
	if first.SalaryPerHour != 20.5 || first.Education != "Primary education" {
		t.Fatalf("unexpected first observation %+v", first)
	}

	israel := ds.Filter("Israel", wantQual[0])
	if len(israel) != 3 {
		t.Fatalf("expected 3 Israel rows, got %d", len(israel))
	}
	if !ds.HasCountry("Finland") || ds.HasCountry("Atlantis") {
		t.Fatal("HasCountry returned the wrong answer")
	}
	if !ds.HasQualification(wantQual[1]) || ds.HasQualification("Doctorate") {
		t.Fatal("HasQualification returned the wrong answer")
	}
}

func TestObservationsReturnsCopy(t *testing.T) {
	ds, err := Parse("inline", []byte(header+"A,Q,Primary education,No Experience,Statutory teaching time,1\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	obs := ds.Observations()
	obs[0].Country = "mutated"
	if ds.Observations()[0].Country != "A" {
		t.Fatal("Observations must not expose internal storage")
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"header only", header},
		{"missing column", "Country or Area,Measure\nA,Statutory teaching time\n"},
		{"non-numeric salary", header + "A,Q,Primary education,No Experience,Statutory teaching time,abc\n"},
		{"negative salary", header + "A,Q,Primary education,No Experience,Statutory teaching time,-3\n"},
		{"NaN salary", header + "A,Q,Primary education,No Experience,Statutory teaching time,NaN\n"},
		{"empty salary", header + "A,Q,Primary education,No Experience,Statutory teaching time,\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := Parse(tc.name, []byte(tc.csv))
			if !errors.Is(err, ErrInvalidDataset) {
				t.Fatalf("expected ErrInvalidDataset, got %v", err)
			}
			if ds != nil {
				t.Fatal("expected nil dataset on error")
			}
		})
	}
}

// TestParsePaddedHeader accepts header names with surrounding spaces next to
// an unnamed index column.
func TestParsePaddedHeader(t *testing.T) {
	raw := ",Country or Area, Qualification level,Education level ,Experience Level,Measure,Actual Salary per Hour\n" +
		"0,Israel,Min,Primary education,No Experience,Statutory teaching time,10\n"
	ds, err := Parse("padded.csv", []byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("expected 1 observation, got %d", ds.Len())
	}
	got := ds.Observations()[0]
	if got.Qualification != "Min" || got.Education != "Primary education" || got.SalaryPerHour != 10 {
		t.Fatalf("unexpected observation %+v", got)
	}
}

func TestParseEmptySalaryMessage(t *testing.T) {
	_, err := Parse("blank.csv", []byte(header+"A,Q,Primary education,No Experience,Statutory teaching time,\n"))
	if err == nil || !strings.Contains(err.Error(), "rejected rather than skipped") {
		t.Fatalf("expected an explanation for the empty salary, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected the CSV line number, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")
	if _, err := Load(context.Background(), missing, 0); !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
	if _, err := Load(context.Background(), "", 0); !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset for empty source, got %v", err)
	}
}

func TestLoadFromURL(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "sample.csv"))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/merged_data.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	ds, err := Load(context.Background(), srv.URL+"/merged_data.csv", 5*time.Second)
	if err != nil {
		t.Fatalf("Load(url) failed: %v", err)
	}
	if ds.Len() != 6 || ds.Source() != srv.URL+"/merged_data.csv" {
		t.Fatalf("unexpected dataset: len=%d source=%s", ds.Len(), ds.Source())
	}

	if _, err := Load(context.Background(), srv.URL+"/missing.csv", 5*time.Second); !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset for 404, got %v", err)
	}
}

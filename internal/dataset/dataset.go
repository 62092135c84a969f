// internal/dataset/dataset.go
// Package dataset loads the teacher-salary table once and exposes it as a
// read-only handle.
package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/mwiater/salarydash/internal/salary"
)

// Column names expected in the input file.
const (
	ColumnCountry       = "Country or Area"
	ColumnQualification = "Qualification level"
	ColumnEducation     = "Education level"
	ColumnExperience    = "Experience Level"
	ColumnMeasure       = "Measure"
	ColumnSalary        = "Actual Salary per Hour"
)

// defaultFetchTimeout bounds remote dataset downloads when no timeout is given.
const defaultFetchTimeout = 30 * time.Second

// ErrInvalidDataset marks a dataset that cannot be used: missing or unreadable
// file, missing required columns, or malformed salary values.
var ErrInvalidDataset = errors.New("invalid dataset")

// RequiredColumns lists the columns every dataset must provide.
func RequiredColumns() []string {
	return []string{
		ColumnCountry,
		ColumnQualification,
		ColumnEducation,
		ColumnExperience,
		ColumnMeasure,
		ColumnSalary,
	}
}

// Dataset is the loaded salary table. It is never mutated after construction,
// so it can be shared between concurrent readers.
type Dataset struct {
	source         string
	checksum       string
	observations   []salary.Observation
	countries      []string
	qualifications []string
}

// New builds a Dataset from observations already in memory.
func New(source string, observations []salary.Observation) *Dataset {
	ds := &Dataset{
		source:       source,
		observations: append([]salary.Observation(nil), observations...),
	}
	seenCountry := make(map[string]bool)
	seenQualification := make(map[string]bool)
	for _, o := range ds.observations {
		if !seenCountry[o.Country] {
			seenCountry[o.Country] = true
			ds.countries = append(ds.countries, o.Country)
		}
		if !seenQualification[o.Qualification] {
			seenQualification[o.Qualification] = true
			ds.qualifications = append(ds.qualifications, o.Qualification)
		}
	}
	return ds
}

// Load reads the dataset from a local path or an http(s) URL and parses it.
func Load(ctx context.Context, source string, timeout time.Duration) (*Dataset, error) {
	raw, err := readSource(ctx, source, timeout)
	if err != nil {
		return nil, err
	}
	return Parse(source, raw)
}

// Parse decodes CSV bytes into a Dataset. A leading unnamed index column is
// ignored along with any other column that is not required.
func Parse(source string, raw []byte) (*Dataset, error) {
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidDataset, source, df.Err)
	}

	// Headers are matched after trimming; actual keeps the name as read.
	actual := make(map[string]string)
	for _, name := range df.Names() {
		trimmed := strings.TrimSpace(name)
		if _, ok := actual[trimmed]; !ok {
			actual[trimmed] = name
		}
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := actual[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is missing columns: %s", ErrInvalidDataset, source, strings.Join(missing, ", "))
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%w: %s has no rows", ErrInvalidDataset, source)
	}

	columns := make(map[string][]string, len(actual))
	for _, col := range RequiredColumns() {
		s := df.Col(actual[col])
		if s.Err != nil {
			return nil, fmt.Errorf("%w: %s column %q: %v", ErrInvalidDataset, source, col, s.Err)
		}
		columns[col] = s.Records()
	}
	countries := columns[ColumnCountry]
	qualifications := columns[ColumnQualification]
	educations := columns[ColumnEducation]
	experiences := columns[ColumnExperience]
	measures := columns[ColumnMeasure]
	salaries := columns[ColumnSalary]

	observations := make([]salary.Observation, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		value, err := parseSalary(salaries[i])
		if err != nil {
			// +2: header line plus 1-based numbering.
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInvalidDataset, source, i+2, err)
		}
		observations = append(observations, salary.Observation{
			Country:       strings.TrimSpace(countries[i]),
			Qualification: strings.TrimSpace(qualifications[i]),
			Education:     strings.TrimSpace(educations[i]),
			Experience:    strings.TrimSpace(experiences[i]),
			Measure:       strings.TrimSpace(measures[i]),
			SalaryPerHour: value,
		})
	}

	ds := New(source, observations)
	sum := sha256.Sum256(raw)
	ds.checksum = hex.EncodeToString(sum[:])
	return ds, nil
}

func parseSalary(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, errors.New("salary is empty; rows with missing salaries are rejected rather than skipped")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("salary %q is not a number", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("salary %q must be a non-negative number", raw)
	}
	return value, nil
}

func readSource(ctx context.Context, source string, timeout time.Duration) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: no dataset source configured", ErrInvalidDataset)
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidDataset, source, err)
		}
		return data, nil
	}

	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrInvalidDataset, source, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrInvalidDataset, source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrInvalidDataset, source, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", ErrInvalidDataset, source, err)
	}
	return data, nil
}

// Source returns the path or URL the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Checksum returns the hex sha256 of the raw file, or "" for in-memory datasets.
func (d *Dataset) Checksum() string { return d.checksum }

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.observations) }

// Observations returns a copy of every observation.
func (d *Dataset) Observations() []salary.Observation {
	return append([]salary.Observation(nil), d.observations...)
}

// Countries returns the distinct countries in order of first appearance.
func (d *Dataset) Countries() []string { return append([]string(nil), d.countries...) }

// Qualifications returns the distinct qualification levels in order of first appearance.
func (d *Dataset) Qualifications() []string {
	return append([]string(nil), d.qualifications...)
}

// HasCountry reports whether the dataset contains the country.
func (d *Dataset) HasCountry(country string) bool { return contains(d.countries, country) }

// HasQualification reports whether the dataset contains the qualification level.
func (d *Dataset) HasQualification(qualification string) bool {
	return contains(d.qualifications, qualification)
}

// Filter returns the observations for one country and qualification level.
func (d *Dataset) Filter(country, qualification string) []salary.Observation {
	var out []salary.Observation
	for _, o := range d.observations {
		if o.Country == country && o.Qualification == qualification {
			out = append(out, o)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

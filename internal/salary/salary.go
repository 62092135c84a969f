// internal/salary/salary.go
// Package salary defines the teacher-salary domain types, the fixed category
// orderings used for sorting and coloring, and the summary aggregator.
package salary

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category value is not part of its
// fixed enumeration order.
var ErrUnknownCategory = errors.New("unknown category")

var (
	educationOrder = []string{
		"Pre-primary education",
		"Primary education",
		"Lower secondary general education",
		"Upper secondary general education",
	}
	experienceOrder = []string{
		"No Experience",
		"10 years of Experience",
		"15 years of Experience",
		"Maximum Experience",
	}
	measureOrder = []string{
		"Statutory teaching time",
		"Statutory working time required at school",
		"Total statutory working time",
	}
)

// Observation is a single salary record from the dataset.
type Observation struct {
	Country       string  `json:"country"`
	Qualification string  `json:"qualification"`
	Education     string  `json:"education"`
	Experience    string  `json:"experience"`
	Measure       string  `json:"measure"`
	SalaryPerHour float64 `json:"salaryPerHour"`
}

// SummaryRow is one (country, experience, measure) group of the aggregated summary.
type SummaryRow struct {
	Country           string  `json:"country"`
	Experience        string  `json:"experience"`
	Measure           string  `json:"measure"`
	MeanSalaryPerHour float64 `json:"meanSalaryPerHour"`
	// MeasureMean is the mean of the group means of the row's (country, measure) pair.
	MeasureMean float64 `json:"measureMean"`
}

// EducationLevels returns the education levels in ascending order.
func EducationLevels() []string { return append([]string(nil), educationOrder...) }

// ExperienceLevels returns the experience levels in ascending order.
func ExperienceLevels() []string { return append([]string(nil), experienceOrder...) }

// Measures returns the statutory time measures in ascending order.
func Measures() []string { return append([]string(nil), measureOrder...) }

// EducationRank returns the position of an education level in its fixed order.
func EducationRank(level string) (int, error) {
	return rank("education level", educationOrder, level)
}

// ExperienceRank returns the position of an experience level in its fixed order.
func ExperienceRank(level string) (int, error) {
	return rank("experience level", experienceOrder, level)
}

// MeasureRank returns the position of a measure in its fixed order.
func MeasureRank(measure string) (int, error) {
	return rank("measure", measureOrder, measure)
}

func rank(kind string, order []string, value string) (int, error) {
	for i, v := range order {
		if v == value {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s %q: %w", kind, value, ErrUnknownCategory)
}

// internal/salary/aggregate.go
package salary

import (
	"sort"
)

type groupKey struct {
	country    string
	experience string
	measure    string
}

type pairKey struct {
	country string
	measure string
}

// rankedRow carries the enumeration ranks alongside a row while sorting.
type rankedRow struct {
	row        SummaryRow
	measure    int
	experience int
}

// Aggregate groups observations by (country, experience level, measure),
// averages the salary per hour of each group and orders the result by measure
// ascending, the (country, measure) mean descending, experience ascending and
// finally country name.
//
// Values are summed in sorted order, so any permutation of the same input
// produces a bit-identical result.
func Aggregate(observations []Observation) ([]SummaryRow, error) {
	groups := make(map[groupKey][]float64)
	ranks := make(map[groupKey][2]int)

	for _, o := range observations {
		mr, err := MeasureRank(o.Measure)
		if err != nil {
			return nil, err
		}
		er, err := ExperienceRank(o.Experience)
		if err != nil {
			return nil, err
		}
		key := groupKey{country: o.Country, experience: o.Experience, measure: o.Measure}
		groups[key] = append(groups[key], o.SalaryPerHour)
		ranks[key] = [2]int{mr, er}
	}

	rows := make([]rankedRow, 0, len(groups))
	for key, values := range groups {
		r := ranks[key]
		rows = append(rows, rankedRow{
			row: SummaryRow{
				Country:           key.country,
				Experience:        key.experience,
				Measure:           key.measure,
				MeanSalaryPerHour: Mean(values),
			},
			measure:    r[0],
			experience: r[1],
		})
	}

	// Canonical order before computing the pair means keeps the sums stable.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.row.Country != b.row.Country {
			return a.row.Country < b.row.Country
		}
		if a.measure != b.measure {
			return a.measure < b.measure
		}
		return a.experience < b.experience
	})

	pairs := make(map[pairKey][]float64)
	for _, r := range rows {
		key := pairKey{country: r.row.Country, measure: r.row.Measure}
		pairs[key] = append(pairs[key], r.row.MeanSalaryPerHour)
	}
	pairMeans := make(map[pairKey]float64, len(pairs))
	for key, values := range pairs {
		pairMeans[key] = Mean(values)
	}
	for i := range rows {
		rows[i].row.MeasureMean = pairMeans[pairKey{country: rows[i].row.Country, measure: rows[i].row.Measure}]
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.measure != b.measure {
			return a.measure < b.measure
		}
		if a.row.MeasureMean != b.row.MeasureMean {
			return a.row.MeasureMean > b.row.MeasureMean
		}
		if a.experience != b.experience {
			return a.experience < b.experience
		}
		return a.row.Country < b.row.Country
	})

	out := make([]SummaryRow, len(rows))
	for i, r := range rows {
		out[i] = r.row
	}
	return out, nil
}

// ForMeasure returns the rows belonging to one measure, preserving order.
func ForMeasure(rows []SummaryRow, measure string) []SummaryRow {
	out := make([]SummaryRow, 0, len(rows))
	for _, r := range rows {
		if r.Measure == measure {
			out = append(out, r)
		}
	}
	return out
}

// CountryRanking returns the countries of one measure ordered by their
// (country, measure) mean, highest first. rows must come from Aggregate.
func CountryRanking(rows []SummaryRow, measure string) []string {
	seen := make(map[string]bool)
	var countries []string
	for _, r := range rows {
		if r.Measure != measure || seen[r.Country] {
			continue
		}
		seen[r.Country] = true
		countries = append(countries, r.Country)
	}
	return countries
}

// Mean returns the arithmetic mean of values, summed in ascending order so the
// result does not depend on input order. It returns 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var total float64
	for _, v := range sorted {
		total += v
	}
	return total / float64(len(sorted))
}

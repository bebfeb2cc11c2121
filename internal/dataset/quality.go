package dataset

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summarize computes descriptive statistics for a joined row set.
// An empty input yields a zero-valued summary.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	temps := make([]float64, len(rows))
	prices := make([]float64, len(rows))
	minDate, maxDate := rows[0].Date, rows[0].Date

	for i, row := range rows {
		temps[i] = row.Temperature
		prices[i] = row.EggPrice
		if row.Date.Before(minDate) {
			minDate = row.Date
		}
		if row.Date.After(maxDate) {
			maxDate = row.Date
		}
	}

	cities := Cities(rows)

	return Summary{
		TotalRecords: len(rows),
		CitiesCount:  len(cities),
		Cities:       cities,
		DateRange: DateRange{
			Start: minDate.Format("2006-01-02"),
			End:   maxDate.Format("2006-01-02"),
		},
		Temperature: fieldStats(temps),
		EggPrice:    fieldStats(prices),
	}
}

func fieldStats(values []float64) FieldStats {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	mean, std := stat.MeanStdDev(values, nil)

	return FieldStats{Min: min, Max: max, Mean: mean, Std: std}
}

// DetectMissingMonths reports, per city in lexicographic order, the months
// absent from the continuous month range between that city's first and last
// record.
func DetectMissingMonths(rows []Row) []CityGaps {
	byCity := make(map[string][]time.Time)
	for _, row := range rows {
		byCity[row.City] = append(byCity[row.City], row.Date)
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var gaps []CityGaps
	for _, city := range cities {
		dates := byCity[city]
		present := make(map[string]struct{}, len(dates))
		minDate, maxDate := dates[0], dates[0]
		for _, d := range dates {
			present[d.Format("2006-01")] = struct{}{}
			if d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}

		var missing []string
		for cursor := firstOfMonth(minDate); !cursor.After(maxDate); cursor = cursor.AddDate(0, 1, 0) {
			if _, ok := present[cursor.Format("2006-01")]; !ok {
				missing = append(missing, cursor.Format("2006-01"))
			}
		}

		gaps = append(gaps, CityGaps{
			City:          city,
			TotalRecords:  len(dates),
			MissingMonths: len(missing),
			MissingDates:  missing,
		})
	}

	return gaps
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

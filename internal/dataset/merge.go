package dataset

import (
	"sort"
	"time"
)

// joinKey is the equijoin key for the two measurement streams
type joinKey struct {
	date  time.Time
	city  string
	year  int
	month int
}

// Merge performs an inner equijoin of temperature and price records on
// (date, city, year, month). Records present in only one stream are dropped:
// a measurement without its counterpart cannot be correlated. Empty inputs or
// disjoint keys yield an empty result, which is a normal outcome.
// Output is ordered ascending by (date, city).
func Merge(temps, prices []Measurement) []Row {
	if len(temps) == 0 || len(prices) == 0 {
		return nil
	}

	priceByKey := make(map[joinKey]float64, len(prices))
	for _, p := range prices {
		key := joinKey{date: p.Date, city: p.City, year: p.Year, month: p.Month}
		if _, exists := priceByKey[key]; !exists {
			priceByKey[key] = p.Value
		}
	}

	var rows []Row
	for _, t := range temps {
		key := joinKey{date: t.Date, city: t.City, year: t.Year, month: t.Month}
		price, ok := priceByKey[key]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Date:        t.Date,
			City:        t.City,
			Temperature: t.Value,
			EggPrice:    price,
			Year:        t.Date.Year(),
			MonthName:   t.Date.Month().String(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].City < rows[j].City
	})

	return rows
}

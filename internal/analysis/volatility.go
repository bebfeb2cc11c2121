package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"dataweaver/internal/dataset"
)

// DefaultVolatilityWindow is the rolling window for price volatility
const DefaultVolatilityWindow = 3

// PriceVolatility computes rolling egg price volatility per city. For each
// city with at least window rows (ordered by date) it reports the average
// and maximum rolling standard deviation plus percent-change statistics.
// Cities with fewer rows than the window are skipped. Output follows
// lexicographic city order.
func PriceVolatility(rows []dataset.Row, window int) []CityVolatility {
	if window < 2 {
		window = DefaultVolatilityWindow
	}

	byCity := make(map[string][]dataset.Row)
	for _, row := range rows {
		byCity[row.City] = append(byCity[row.City], row)
	}

	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	var results []CityVolatility
	for _, city := range cities {
		group := byCity[city]
		if len(group) < window {
			continue
		}

		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		prices := make([]float64, len(group))
		for i, row := range group {
			prices[i] = row.EggPrice
		}

		var volSum, volMax float64
		volCount := 0
		for i := window; i <= len(prices); i++ {
			sd := stat.StdDev(prices[i-window:i], nil)
			volSum += sd
			if sd > volMax {
				volMax = sd
			}
			volCount++
		}

		var changeSum, changeMax float64
		changeCount := 0
		for i := 1; i < len(prices); i++ {
			if prices[i-1] == 0 {
				continue
			}
			change := (prices[i] - prices[i-1]) / prices[i-1] * 100
			changeSum += change
			if math.Abs(change) > changeMax {
				changeMax = math.Abs(change)
			}
			changeCount++
		}

		result := CityVolatility{
			City:          city,
			AvgVolatility: volSum / float64(volCount),
			MaxVolatility: volMax,
		}
		if changeCount > 0 {
			result.AvgPriceChange = changeSum / float64(changeCount)
			result.MaxPriceChange = changeMax
		}

		results = append(results, result)
	}

	return results
}

// DetectExtremeEvents tags rows whose temperature lies at or beyond the 5th
// or 95th percentile of the filtered data set.
func DetectExtremeEvents(rows []dataset.Row) []ExtremeEvent {
	if len(rows) == 0 {
		return nil
	}

	temps := make([]float64, len(rows))
	for i, row := range rows {
		temps[i] = row.Temperature
	}
	sort.Float64s(temps)

	low := stat.Quantile(0.05, stat.Empirical, temps, nil)
	high := stat.Quantile(0.95, stat.Empirical, temps, nil)

	var events []ExtremeEvent
	for _, row := range rows {
		var eventType string
		switch {
		case row.Temperature >= high:
			eventType = "Extreme Heat"
		case row.Temperature <= low:
			eventType = "Extreme Cold"
		default:
			continue
		}

		events = append(events, ExtremeEvent{
			Date:        row.Date.Format("2006-01-02"),
			City:        row.City,
			Temperature: row.Temperature,
			EggPrice:    row.EggPrice,
			EventType:   eventType,
		})
	}

	return events
}

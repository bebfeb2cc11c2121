package dataset

import (
	"time"
)

// Kind identifies one of the two measurement sources
type Kind string

const (
	// KindTemperature is the monthly average temperature source
	KindTemperature Kind = "temperature"
	// KindEggPrice is the monthly average egg price source
	KindEggPrice Kind = "egg_price"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// ValueColumn returns the source-specific value column header for the kind
func (k Kind) ValueColumn() string {
	switch k {
	case KindTemperature:
		return "amonthly average temp"
	case KindEggPrice:
		return "Average_Price_Per_Egg_INR_Monthly"
	}
	return ""
}

// Measurement represents a single loaded observation in canonical form
type Measurement struct {
	Date  time.Time `json:"date"`
	City  string    `json:"city"`
	Value float64   `json:"value"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
}

// Row represents a joined observation: one (date, city) with both metrics
type Row struct {
	Date        time.Time `json:"date"`
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	EggPrice    float64   `json:"egg_price"`
	Year        int       `json:"year"`
	MonthName   string    `json:"month_name"`
}

// FieldStats holds descriptive statistics for one metric
type FieldStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// DateRange holds the inclusive bounds of a row set
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary contains descriptive statistics for a joined row set
type Summary struct {
	TotalRecords int        `json:"total_records"`
	CitiesCount  int        `json:"cities_count"`
	Cities       []string   `json:"cities"`
	DateRange    DateRange  `json:"date_range"`
	Temperature  FieldStats `json:"temperature_stats"`
	EggPrice     FieldStats `json:"price_stats"`
}

// CityGaps reports months absent from a city's continuous month range
type CityGaps struct {
	City          string   `json:"city"`
	TotalRecords  int      `json:"total_records"`
	MissingMonths int      `json:"missing_months"`
	MissingDates  []string `json:"missing_dates"`
}

// AvailableCities returns the cities the data set covers
func AvailableCities() []string {
	return []string{"Ahmedabad", "Bengaluru", "Chennai", "Delhi", "Hyderabad", "Kolkata", "Mumbai", "Pune"}
}

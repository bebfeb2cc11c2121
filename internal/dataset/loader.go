package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrSourceUnavailable marks a source file that is missing or unparseable.
// Callers treat it as "no data", not as a fault.
var ErrSourceUnavailable = errors.New("source unavailable")

// cityCorrections maps known data-entry typos to their canonical city names
var cityCorrections = map[string]string{
	"Hyerabad": "Hyderabad",
}

// dateLayouts are the accepted Date column formats, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"2006-01",
}

// Loader reads a measurement source and normalizes it into canonical records
type Loader struct {
	files  map[Kind]string
	logger *slog.Logger
}

// NewLoader creates a loader over the given source file paths
func NewLoader(temperatureFile, eggPriceFile string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		files: map[Kind]string{
			KindTemperature: temperatureFile,
			KindEggPrice:    eggPriceFile,
		},
		logger: logger.With(slog.String("component", "loader")),
	}
}

// SourcePath returns the configured file path for the kind
func (l *Loader) SourcePath(kind Kind) string {
	return l.files[kind]
}

// Load reads the full source for the kind and returns canonical records
// sorted ascending by (date, city).
//
// cities semantics: nil means all cities; an empty non-nil slice means none
// were selected and yields zero rows. Unrecognized names match nothing.
// Rows whose value cannot be parsed as a number are dropped. Duplicate
// (date, city) keys within the stream keep the first occurrence.
func (l *Loader) Load(ctx context.Context, kind Kind, cities []string) ([]Measurement, error) {
	path, ok := l.files[kind]
	if !ok || path == "" {
		return nil, fmt.Errorf("unknown source kind %q: %w", kind, ErrSourceUnavailable)
	}

	file, err := os.Open(path)
	if err != nil {
		l.logger.WarnContext(ctx, "source file not readable",
			slog.String("kind", kind.String()),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("open %s: %w", path, ErrSourceUnavailable)
	}
	defer file.Close()

	records, err := l.parse(ctx, kind, file)
	if err != nil {
		return nil, err
	}

	records = filterCities(records, cities)

	// Stable sort so duplicate (date, city) keys stay in file order and
	// dedupe keeps the first occurrence.
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].City < records[j].City
	})

	records = dedupeKeepFirst(ctx, l.logger, kind, records)

	l.logger.InfoContext(ctx, "source loaded",
		slog.String("kind", kind.String()),
		slog.Int("records", len(records)))

	return records, nil
}

// parse reads the CSV stream and converts rows to canonical measurements
func (l *Loader) parse(ctx context.Context, kind Kind, r io.Reader) ([]Measurement, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s csv: %v: %w", kind, err, ErrSourceUnavailable)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s source has no header: %w", kind, ErrSourceUnavailable)
	}

	// Map column positions by header name
	indices := make(map[string]int)
	for i, col := range rows[0] {
		indices[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}

	required := []string{"Date", "Location", kind.ValueColumn(), "Year", "Month"}
	for _, col := range required {
		if _, ok := indices[col]; !ok {
			return nil, fmt.Errorf("%s source missing required column %q: %w", kind, col, ErrSourceUnavailable)
		}
	}

	var (
		records []Measurement
		dropped int
	)

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) <= maxIndex(indices, required) {
			dropped++
			continue
		}

		date, ok := parseDate(row[indices["Date"]])
		if !ok {
			dropped++
			continue
		}

		value, ok := parseValue(row[indices[kind.ValueColumn()]])
		if !ok {
			dropped++
			continue
		}

		city := strings.TrimSpace(row[indices["Location"]])
		if fixed, found := cityCorrections[city]; found {
			city = fixed
		}
		if city == "" {
			dropped++
			continue
		}

		year, _ := strconv.Atoi(strings.TrimSpace(row[indices["Year"]]))
		month, _ := strconv.Atoi(strings.TrimSpace(row[indices["Month"]]))
		if year == 0 {
			year = date.Year()
		}
		if month == 0 {
			month = int(date.Month())
		}

		records = append(records, Measurement{
			Date:  date,
			City:  city,
			Value: value,
			Year:  year,
			Month: month,
		})
	}

	if dropped > 0 {
		l.logger.WarnContext(ctx, "dropped unparseable rows",
			slog.String("kind", kind.String()),
			slog.Int("dropped", dropped))
	}

	return records, nil
}

// parseValue is the two-outcome numeric parse: (value, true) on success,
// (0, false) when the cell is missing or not a number.
func parseValue(cell string) (float64, bool) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseDate tries the accepted layouts and truncates to UTC midnight
func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// filterCities applies the requested city set. nil keeps everything, an
// empty non-nil set keeps nothing.
func filterCities(records []Measurement, cities []string) []Measurement {
	if cities == nil {
		return records
	}

	allowed := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		allowed[c] = struct{}{}
	}

	filtered := records[:0]
	for _, rec := range records {
		if _, ok := allowed[rec.City]; ok {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// dedupeKeepFirst drops later duplicates of the same (date, city) key.
// Input must already be sorted by (date, city).
func dedupeKeepFirst(ctx context.Context, logger *slog.Logger, kind Kind, records []Measurement) []Measurement {
	if len(records) < 2 {
		return records
	}

	out := records[:1]
	duplicates := 0
	for _, rec := range records[1:] {
		last := out[len(out)-1]
		if rec.Date.Equal(last.Date) && rec.City == last.City {
			duplicates++
			continue
		}
		out = append(out, rec)
	}

	if duplicates > 0 {
		logger.WarnContext(ctx, "duplicate (date, city) rows dropped, keeping first",
			slog.String("kind", kind.String()),
			slog.Int("duplicates", duplicates))
	}

	return out
}

func maxIndex(indices map[string]int, cols []string) int {
	max := 0
	for _, col := range cols {
		if idx := indices[col]; idx > max {
			max = idx
		}
	}
	return max
}

package exporter

import (
	"dataweaver/internal/analysis"
	"dataweaver/internal/dataset"
)

// RowHeaders are the column headers for joined row exports
func RowHeaders() []string {
	return []string{"Date", "City", "Temperature", "EggPrice", "Year", "MonthName"}
}

// RowRecords serializes joined rows for delimited export
func RowRecords(rows []dataset.Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Date.Format("2006-01-02"),
			row.City,
			formatFloat(row.Temperature, 2),
			formatFloat(row.EggPrice, 2),
			formatInt(row.Year),
			row.MonthName,
		})
	}
	return records
}

// CorrelationHeaders are the column headers for correlation exports
func CorrelationHeaders() []string {
	return []string{"City", "WeatherMetric", "Correlation", "PValue", "SampleSize", "IsSignificant", "Strength"}
}

// CorrelationRecords serializes correlation results for delimited export.
// Degenerate correlations export as N/A.
func CorrelationRecords(results []analysis.CorrelationResult) [][]string {
	records := make([][]string, 0, len(results))
	for _, r := range results {
		records = append(records, []string{
			r.City,
			r.WeatherMetric,
			formatFloat(r.Correlation, 4),
			formatFloat(r.PValue, 4),
			formatInt(r.SampleSize),
			formatBool(r.IsSignificant),
			analysis.FormatCorrelation(r.Correlation),
		})
	}
	return records
}

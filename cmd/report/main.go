// Command report runs the load-merge-filter pipeline once from the command
// line and writes the joined rows, correlation results, and insight
// statements to disk without starting the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataweaver/internal/analysis"
	"dataweaver/internal/config"
	"dataweaver/internal/dataset"
	"dataweaver/internal/exporter"
	"dataweaver/internal/services"
)

func main() {
	var (
		tempFile  = flag.String("temperature", "", "temperature CSV path (default from config)")
		eggFile   = flag.String("eggs", "", "egg price CSV path (default from config)")
		outDir    = flag.String("out", "reports", "output directory")
		format    = flag.String("format", "csv", "output format: csv or xlsx")
		cities    = flag.String("cities", "", "comma-separated city filter (default all)")
		startDate = flag.String("start", "", "inclusive start date (YYYY-MM-DD)")
		endDate   = flag.String("end", "", "inclusive end date (YYYY-MM-DD)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(logger, *tempFile, *eggFile, *outDir, *format, *cities, *startDate, *endDate); err != nil {
		logger.Error("report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, tempFile, eggFile, outDir, format, cities, startDate, endDate string) error {
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported format %q, expected csv or xlsx", format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if tempFile == "" {
		tempFile = cfg.Paths.TemperatureFile
	}
	if eggFile == "" {
		eggFile = cfg.Paths.EggPriceFile
	}

	query, err := buildQuery(cities, startDate, endDate)
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(tempFile, eggFile, logger)
	store := dataset.NewStore(loader, 0)
	data := services.NewDataService(store, nil, logger)
	analyzer := services.NewAnalysisService(data, nil, logger)

	ctx := context.Background()

	result, err := data.LoadRows(ctx, query)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if result.State != services.StateOK {
		logger.Warn("pipeline produced no rows", slog.String("state", string(result.State)))
		return nil
	}

	report, err := analyzer.Correlations(ctx, query)
	if err != nil {
		return fmt.Errorf("correlations: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102_150405")
	rowsPath := filepath.Join(outDir, fmt.Sprintf("%s_%s.%s", config.RowsExportStem, stamp, format))
	corrPath := filepath.Join(outDir, fmt.Sprintf("%s_%s.%s", config.CorrelationsExportStem, stamp, format))

	if err := write(format, rowsPath, "Rows", exporter.RowHeaders(), exporter.RowRecords(result.Rows)); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := write(format, corrPath, "Correlations", exporter.CorrelationHeaders(), exporter.CorrelationRecords(report.Cities)); err != nil {
		return fmt.Errorf("write correlations: %w", err)
	}

	logger.Info("reports written",
		slog.String("rows", rowsPath),
		slog.String("correlations", corrPath),
		slog.Int("row_count", len(result.Rows)))

	correlations := analysis.PerCityCorrelations(result.Rows)
	for _, insight := range analysis.GenerateInsights(result.Rows, correlations) {
		fmt.Println(insight)
	}

	return nil
}

func buildQuery(cities, startDate, endDate string) (services.RowsQuery, error) {
	query := services.RowsQuery{}

	if cities != "" {
		var selected []string
		for _, city := range strings.Split(cities, ",") {
			if city = strings.TrimSpace(city); city != "" {
				selected = append(selected, city)
			}
		}
		query.Cities = selected
	}

	if startDate != "" {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return query, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		query.Start = &start
	}
	if endDate != "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return query, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		query.End = &end
	}

	return query, nil
}

func write(format, path, sheet string, headers []string, records [][]string) error {
	if format == "xlsx" {
		return exporter.NewExcelWriter().WriteExcel(path, sheet, headers, records)
	}
	return exporter.NewCSVWriter().WriteSimpleCSV(path, headers, records)
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dataweaver/internal/config"
	apierrors "dataweaver/internal/errors"
	"dataweaver/internal/exporter"
)

// ExportHandler streams the joined rows and correlation results as CSV or
// xlsx downloads.
type ExportHandler struct {
	data         DataServiceInterface
	analysis     AnalysisServiceInterface
	csvWriter    *exporter.CSVWriter
	excelWriter  *exporter.ExcelWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(data DataServiceInterface, analysis AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		data:         data,
		analysis:     analysis,
		csvWriter:    exporter.NewCSVWriter(),
		excelWriter:  exporter.NewExcelWriter(),
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/rows", h.ExportRows)
	r.Get("/correlations", h.ExportCorrelations)

	return r
}

// ExportRows handles GET /api/export/rows
func (h *ExportHandler) ExportRows(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.data.LoadRows(r.Context(), query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.stream(w, r, format, config.RowsExportStem,
		exporter.RowHeaders(), exporter.RowRecords(result.Rows))
}

// ExportCorrelations handles GET /api/export/correlations
func (h *ExportHandler) ExportCorrelations(w http.ResponseWriter, r *http.Request) {
	format, err := exportFormat(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.analysis.Correlations(r.Context(), query)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.stream(w, r, format, config.CorrelationsExportStem,
		exporter.CorrelationHeaders(), exporter.CorrelationRecords(report.Cities))
}

// stream writes the export onto the response in the requested format.
// An empty record set still produces a valid file with headers only.
func (h *ExportHandler) stream(w http.ResponseWriter, r *http.Request, format, stem string, headers []string, records [][]string) {
	filename := fmt.Sprintf("%s_%s.%s", stem, time.Now().UTC().Format("20060102_150405"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	var err error
	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.excelWriter.Stream(w, "Export", headers, records)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = h.csvWriter.Stream(w, headers, records)
	}

	if err != nil {
		// Headers are already out; all we can do is log
		h.logger.ErrorContext(r.Context(), "export stream failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(r.Context(), "export served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("filename", filename),
		slog.Int("records", len(records)))
}

// exportFormat validates the format parameter, defaulting to csv
func exportFormat(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv":
		return "csv", nil
	case "xlsx":
		return "xlsx", nil
	default:
		return "", apierrors.ErrValidation("format", fmt.Sprintf("unsupported export format %q, expected csv or xlsx", format))
	}
}

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "dataweaver/internal/errors"
	"dataweaver/internal/services"
)

// AnalysisHandler serves the statistical layer: correlations, insights,
// formal tests, volatility, and extreme events.
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/correlations", h.GetCorrelations)
	r.Get("/insights", h.GetInsights)
	r.Get("/tests", h.GetTests)
	r.Get("/volatility", h.GetVolatility)
	r.Get("/extremes", h.GetExtremes)

	return r
}

// GetCorrelations handles GET /api/analysis/correlations
func (h *AnalysisHandler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Correlations(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logReport(r, "correlations", report.RunID, string(report.State))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetInsights handles GET /api/analysis/insights
func (h *AnalysisHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Insights(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logReport(r, "insights", report.RunID, string(report.State))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetTests handles GET /api/analysis/tests
func (h *AnalysisHandler) GetTests(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.StatisticalTests(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logReport(r, "tests", report.RunID, string(report.State))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetVolatility handles GET /api/analysis/volatility
func (h *AnalysisHandler) GetVolatility(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	window, err := parseWindow(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Volatility(r.Context(), query, window)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logReport(r, "volatility", report.RunID, string(report.State))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetExtremes handles GET /api/analysis/extremes
func (h *AnalysisHandler) GetExtremes(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Extremes(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logReport(r, "extremes", report.RunID, string(report.State))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

func (h *AnalysisHandler) logReport(r *http.Request, kind, runID, state string) {
	h.logger.InfoContext(r.Context(), "analysis served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("kind", kind),
		slog.String("run_id", runID),
		slog.String("state", state))
}

func (h *AnalysisHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrInvalidDateRange) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date_range",
			"start_date must not be after end_date and the range must not exceed ten years"))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

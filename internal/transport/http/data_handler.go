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

// DataHandler serves the joined data set: city lists, rows, and summaries
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/cities", h.GetCities)
	r.Get("/rows", h.GetRows)
	r.Get("/summary", h.GetSummary)

	return r
}

// GetCities handles GET /api/data/cities
func (h *DataHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   cities,
		"count":  len(cities),
	})
}

// GetRows handles GET /api/data/rows. A degenerate pipeline outcome is a
// 200 with its state field set, never an error status.
func (h *DataHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.LoadRows(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "rows served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("state", string(result.State)),
		slog.Int("count", len(result.Rows)))

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"state":  result.State,
		"data":   result.Rows,
		"count":  len(result.Rows),
	})
}

// GetSummary handles GET /api/data/summary
func (h *DataHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	query, err := parseRowsQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Summary(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "success",
		"state":     result.State,
		"summary":   result.Summary,
		"data_gaps": result.Gaps,
	})
}

// handleServiceError maps known service errors before delegating
func (h *DataHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrInvalidDateRange) {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("date_range",
			"start_date must not be after end_date and the range must not exceed ten years"))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataweaver/internal/analysis"
	"dataweaver/internal/services"
)

func TestAnalysisHandler_GetCorrelations(t *testing.T) {
	overall := 0.42
	service := &stubAnalysisService{
		correlations: func(ctx context.Context, query services.RowsQuery) (*services.CorrelationReport, error) {
			return &services.CorrelationReport{
				RunID:              "run-1",
				State:              services.StateOK,
				OverallCorrelation: &overall,
				Cities: []analysis.CorrelationResult{
					{City: "Chennai", WeatherMetric: "temperature", Correlation: 0.8, PValue: 0.01, SampleSize: 24, IsSignificant: true},
				},
				SampleSize: 24,
			}, nil
		},
	}
	handler := NewAnalysisHandler(service, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/correlations", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			RunID              string                   `json:"run_id"`
			State              string                   `json:"state"`
			OverallCorrelation *float64                 `json:"overall_correlation"`
			Cities             []map[string]interface{} `json:"cities"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "run-1", body.Data.RunID)
	require.NotNil(t, body.Data.OverallCorrelation)
	assert.InDelta(t, 0.42, *body.Data.OverallCorrelation, 1e-9)
	require.Len(t, body.Data.Cities, 1)
	assert.Equal(t, "Chennai", body.Data.Cities[0]["city"])
	assert.NotEmpty(t, body.Data.Cities[0]["strength"])
}

func TestAnalysisHandler_GetInsights_NoData(t *testing.T) {
	service := &stubAnalysisService{
		insights: func(ctx context.Context, query services.RowsQuery) (*services.InsightsReport, error) {
			return &services.InsightsReport{RunID: "run-2", State: services.StateNoData}, nil
		},
	}
	handler := NewAnalysisHandler(service, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/insights", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data services.InsightsReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, services.StateNoData, body.Data.State)
	assert.Empty(t, body.Data.Insights)
}

func TestAnalysisHandler_GetVolatility_WindowValidation(t *testing.T) {
	var captured int
	service := &stubAnalysisService{
		volatility: func(ctx context.Context, query services.RowsQuery, window int) (*services.VolatilityReport, error) {
			captured = window
			return &services.VolatilityReport{RunID: "run-3", State: services.StateOK, Window: window}, nil
		},
	}
	handler := NewAnalysisHandler(service, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/volatility?window=6", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, captured)

	req = httptest.NewRequest(http.MethodGet, "/volatility?window=1", nil)
	rec = httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "window below two is rejected at the boundary")
}

func TestAnalysisHandler_GetTests(t *testing.T) {
	service := &stubAnalysisService{
		tests: func(ctx context.Context, query services.RowsQuery) (*services.TestsReport, error) {
			return &services.TestsReport{
				RunID: "run-4",
				State: services.StateOK,
				PriceAnova: &analysis.AnovaResult{
					FStatistic: 12.5, PValue: 0.001, GroupsDiffer: true,
				},
			}, nil
		},
	}
	handler := NewAnalysisHandler(service, testLogger(), testErrorHandler())

	req := httptest.NewRequest(http.MethodGet, "/tests", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data services.TestsReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data.PriceAnova)
	assert.True(t, body.Data.PriceAnova.GroupsDiffer)
	assert.Nil(t, body.Data.TemperatureNormality, "omitted tests stay omitted")
}

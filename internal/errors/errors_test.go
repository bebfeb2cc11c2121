package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("start_date", "must use YYYY-MM-DD")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "start_date", details.Field)
	assert.Equal(t, "must use YYYY-MM-DD", details.Message)
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("report")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "report not found", err.Message)
}

func TestHandleError_APIError(t *testing.T) {
	handler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/data/rows", nil)

	handler.HandleError(w, r, ErrValidation("cities", "unknown city"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.ErrorCode)
}

func TestHandleError_Nil(t *testing.T) {
	handler := NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.HandleError(w, r, nil)
	assert.Empty(t, w.Body.String())
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error passthrough", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped api error", fmt.Errorf("handler: %w", ErrRateLimitExceeded), http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		{"canceled", context.Canceled, http.StatusGatewayTimeout, "TIMEOUT"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.ErrorCode)
		})
	}
}

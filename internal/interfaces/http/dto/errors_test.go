package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestDomainErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"TARIFF_CODE_NOT_FOUND", http.StatusNotFound},
		{"CATEGORY_NOT_FOUND", http.StatusNotFound},
		{"TEMPLATE_NOT_FOUND", http.StatusNotFound},
		{"PRODUCT_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"DELEGATION_CYCLE", http.StatusUnprocessableEntity},
		{"DELEGATION_TARGET_MISSING", http.StatusUnprocessableEntity},
		{"MAX_DEPTH_EXCEEDED", http.StatusUnprocessableEntity},
		{"VALIDATION_REQUIRED", http.StatusBadRequest},
		{"INVALID_CODE", http.StatusBadRequest},
		{"INVALID_SEASON", http.StatusBadRequest},
		{"INVALID_TARIFF_CODE", http.StatusBadRequest},
		{"INVALID_WEIGHT", http.StatusBadRequest},
		// Unknown domain codes fail safe as unprocessable
		{"SOME_NEW_RULE", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainErrorHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("TARIFF_CODE_NOT_FOUND", "Tariff code not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "TARIFF_CODE_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Tariff code not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "code", Message: "code is required"},
		{Field: "start_month", Message: "start_month must be between 1 and 12"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "code", resp.Error.Details[0].Field)
}

func TestResponse_JSONShape(t *testing.T) {
	t.Run("success response omits error", func(t *testing.T) {
		data, err := json.Marshal(NewSuccessResponse(map[string]string{"id": "1"}))
		assert.NoError(t, err)
		assert.Contains(t, string(data), `"success":true`)
		assert.NotContains(t, string(data), `"error"`)
	})

	t.Run("error response omits data and empty request id", func(t *testing.T) {
		data, err := json.Marshal(NewErrorResponse(ErrCodeNotFound, "missing"))
		assert.NoError(t, err)
		assert.Contains(t, string(data), `"success":false`)
		assert.NotContains(t, string(data), `"data"`)
		assert.NotContains(t, string(data), `"request_id"`)
	})

	t.Run("meta carries pagination totals", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})
}

func TestListRequest_Normalize(t *testing.T) {
	req := ListRequest{}
	req.Normalize()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.PageSize)

	req = ListRequest{Page: 3, PageSize: 50}
	req.Normalize()
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 50, req.PageSize)
}

package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	catalogimport "github.com/shopapi/backend/internal/infrastructure/import"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{shared.ErrValidation.Code, http.StatusBadRequest},
		{catalogimport.ErrCodeMissingField, http.StatusBadRequest},
		{catalogimport.ErrCodeMalformedPayload, http.StatusBadRequest},
		{trade.ErrInvalidQuantity.Code, http.StatusBadRequest},
		{catalog.ErrDuplicateShop.Code, http.StatusBadRequest},
		{catalog.ErrDuplicateProductInfo.Code, http.StatusBadRequest},
		{identity.ErrEmailTaken.Code, http.StatusBadRequest},
		{shared.ErrAuthFailed.Code, http.StatusUnauthorized},
		{shared.ErrForbidden.Code, http.StatusForbidden},
		{trade.ErrBasketNotFound.Code, http.StatusNotFound},
		{trade.ErrItemNotFound.Code, http.StatusNotFound},
		{identity.ErrContactNotFound.Code, http.StatusNotFound},
		{catalog.ErrProductInfoNotFound.Code, http.StatusNotFound},
		{"SOMETHING_UNEXPECTED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 45, 2, 20)

	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.Page)

	t.Run("defaults apply to zero paging", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 5, 0, 0)

		assert.Equal(t, DefaultPage, resp.Meta.Page)
		assert.Equal(t, DefaultPageSize, resp.Meta.PageSize)
		assert.Equal(t, 1, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("VALIDATION_ERROR", "Validation failed", "req-1",
		shared.FieldError{Field: "items[0].quantity", Message: "Quantity must be between 1 and 100"})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, "req-1", errInfo["request_id"])
	details := errInfo["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "items[0].quantity", details[0].(map[string]any)["field"])

	t.Run("no details key without details", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeInternal, "boom", ""))
		require.NoError(t, err)

		assert.NotContains(t, string(raw), "details")
		assert.NotContains(t, string(raw), "request_id")
	})
}

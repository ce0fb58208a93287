package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", shared.NewValidationError("email", "Email cannot be empty"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"auth", shared.ErrAuthFailed, http.StatusUnauthorized, "AUTHENTICATION_FAILED"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found suffix", trade.ErrOrderNotFound, http.StatusNotFound, trade.ErrOrderNotFound.Code},
		{"invalid transition", trade.ErrInvalidTransition, http.StatusBadRequest, "INVALID_STATE"},
		{"wrapped", fmt.Errorf("checkout: %w", trade.ErrBasketNotFound), http.StatusNotFound, trade.ErrBasketNotFound.Code},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			c.Set(logger.GinRequestIDKey, "req-42")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
		})
	}

	t.Run("details are passed through", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		h.HandleError(c, shared.NewValidationError("items[1].quantity", "Quantity must be between 1 and 100"))

		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "items[1].quantity", resp.Error.Details[0].Field)
	})

	t.Run("unknown errors are hidden", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		c.Request.Header.Set(middleware.RequestIDHeader, "from-header")
		h.HandleError(c, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.Equal(t, "from-header", resp.Error.RequestID)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/", "")
		h.HandleError(c, nil)

		assert.False(t, c.IsAborted())
		assert.Zero(t, w.Body.Len())
	})
}

func TestBaseHandler_BindJSON(t *testing.T) {
	h := &BaseHandler{}
	type request struct {
		Name     string `json:"name" binding:"required"`
		Quantity int    `json:"quantity" binding:"min=1"`
	}

	t.Run("valid body", func(t *testing.T) {
		c, _ := newTestContext(http.MethodPost, "/", `{"name":"hammer","quantity":2}`)
		var req request
		require.True(t, h.BindJSON(c, &req))
		assert.Equal(t, "hammer", req.Name)
	})

	t.Run("validation failure names the field", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", `{"name":"hammer","quantity":0}`)
		var req request
		require.False(t, h.BindJSON(c, &req))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "quantity", resp.Error.Details[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/", `{"name":`)
		var req request
		require.False(t, h.BindJSON(c, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := &BaseHandler{}

	for _, raw := range []string{"0", "-3", "abc", "18446744073709551616"} {
		t.Run(raw, func(t *testing.T) {
			c, w := newTestContext(http.MethodGet, "/", "")
			c.Params = gin.Params{{Key: "id", Value: raw}}

			_, ok := h.ParseID(c, "id")
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "id", decodeResponse(t, w).Error.Details[0].Field)
		})
	}

	c, _ := newTestContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := h.ParseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(17), id)
}

func TestBaseHandler_Actor(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/", "")
	_, ok := h.Actor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = newTestContext(http.MethodGet, "/", "")
	c.Set(middleware.ActorKey, access.Actor{UserID: 5, Partner: true})
	actor, ok := h.Actor(c)
	require.True(t, ok)
	assert.Equal(t, uint64(5), actor.UserID)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		status   int
		database string
	}{
		{"database reachable", nil, http.StatusOK, "ok"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable, "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(mockPinger)
			db.On("PingContext", mock.Anything).Return(tt.pingErr)
			h := NewSystemHandler(db, "1.2.3")

			r := gin.New()
			r.GET("/health", h.Health)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, w.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.database, body.Database)
			db.AssertExpectations(t)
		})
	}
}

func TestSystemHandler_InfoAndNoRoute(t *testing.T) {
	h := NewSystemHandler(new(mockPinger), "1.2.3")
	r := gin.New()
	r.GET("/info", h.GetSystemInfo)
	r.NoRoute(h.NoRoute)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var info struct {
		Data SystemInfoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Shop API", info.Data.Name)
	assert.Equal(t, "1.2.3", info.Data.Version)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeRouteNotFound, decodeResponse(t, w).Error.Code)
}

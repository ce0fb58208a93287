package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopapi/backend/internal/domain/catalog"
	"github.com/shopapi/backend/internal/domain/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_ObserveHTTP(t *testing.T) {
	m := NewMetrics("shop")

	m.ObserveHTTP(http.MethodGet, "/api/v1/products", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/api/v1/products", http.StatusOK, 30*time.Millisecond)
	m.ObserveHTTP(http.MethodPost, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))

	done := m.TrackInFlight()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("shop")
	m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `shop_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_RecordQuery(t *testing.T) {
	m := NewMetrics("shop")

	m.RecordQuery("select", "orders", 5*time.Millisecond, 200*time.Millisecond)
	m.RecordQuery("", "", 300*time.Millisecond, 200*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("SELECT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbSlowQueries.WithLabelValues("unknown")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbSlowQueries.WithLabelValues("orders")))
}

func TestDetectOperationType(t *testing.T) {
	tests := []struct{ sql, want string }{
		{"SELECT * FROM orders", "SELECT"},
		{"  insert into shops (name) VALUES ('Acme')", "INSERT"},
		{"UPDATE orders SET state = 'new'", "UPDATE"},
		{"DELETE FROM order_items", "DELETE"},
		{"PRAGMA foreign_keys = ON", "OTHER"},
		{"", "OTHER"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectOperationType(tt.sql), tt.sql)
	}
}

func TestRegisterDBMetrics(t *testing.T) {
	db := setupTestDB(t)
	m := NewMetrics("shop")

	require.NoError(t, RegisterDBMetrics(db, m, DBMetricsConfig{Enabled: true, DBName: "test"}, zap.NewNop()))

	require.NoError(t, db.Create(&testModel{Name: "nails"}).Error)
	var got []testModel
	require.NoError(t, db.Find(&got).Error)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("INSERT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueries.WithLabelValues("SELECT")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "go_sql_open_connections")

	t.Run("disabled is a no-op", func(t *testing.T) {
		assert.NoError(t, RegisterDBMetrics(setupTestDB(t), m, DBMetricsConfig{}, zap.NewNop()))
	})
}

func TestBusinessMetricsHandler(t *testing.T) {
	m := NewMetrics("shop")
	h := NewBusinessMetricsHandler(m)
	order := &trade.Order{UserID: 3, State: trade.OrderStateNew}
	order.ID = 10

	events := []shared.DomainEvent{
		identity.NewUserRegisteredEvent(&identity.User{Email: "a@b.c"}, "key"),
		trade.NewOrderCheckedOutEvent(order),
		trade.NewOrderStateChangedEvent(order, trade.OrderStateNew, trade.OrderStateConfirmed),
		catalog.NewCatalogImportedEvent(&catalog.Shop{Name: "Acme"}, 2, 5, 1),
	}
	for _, e := range events {
		require.NoError(t, h.Handle(context.Background(), e))
	}

	assert.Len(t, h.EventTypes(), 4)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCheckedOut))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orderTransitions.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogImports))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.importedListings.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importedListings.WithLabelValues("updated")))
}

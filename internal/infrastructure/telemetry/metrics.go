package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets
var (
	// HTTPDurationBuckets are bucket boundaries for HTTP request duration (seconds).
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	// DBDurationBuckets are bucket boundaries for database query duration (seconds).
	DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)

// Metric label names
const (
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelTable     = "table"
	LabelState     = "state"
	LabelResult    = "result"
)

// Metrics owns a Prometheus registry and every collector the service exports.
// Each instance has its own registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge

	dbQueries       *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbSlowQueries   *prometheus.CounterVec

	usersRegistered  prometheus.Counter
	ordersCheckedOut prometheus.Counter
	orderTransitions *prometheus.CounterVec
	catalogImports   prometheus.Counter
	importedListings *prometheus.CounterVec
}

// NewMetrics creates the collectors under the given namespace and registers
// them together with the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{LabelMethod, LabelRoute, LabelStatus}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   HTTPDurationBuckets,
		}, []string{LabelMethod, LabelRoute}),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),
		dbQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_total",
			Help:      "Total number of database queries by operation",
		}, []string{LabelOperation}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency in seconds",
			Buckets:   DBDurationBuckets,
		}, []string{LabelOperation}),
		dbSlowQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_slow_query_total",
			Help:      "Total number of slow database queries by table",
		}, []string{LabelTable}),
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of registered accounts",
		}),
		ordersCheckedOut: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_checked_out_total",
			Help:      "Total number of baskets placed as orders",
		}),
		orderTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_state_transitions_total",
			Help:      "Total number of order state changes by target state",
		}, []string{LabelState}),
		catalogImports: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_imports_total",
			Help:      "Total number of committed catalog imports",
		}),
		importedListings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_imported_listings_total",
			Help:      "Listings written by catalog imports, by result",
		}, []string{LabelResult}),
	}
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns its decrement.
func (m *Metrics) TrackInFlight() func() {
	m.httpInFlight.Inc()
	return m.httpInFlight.Dec
}

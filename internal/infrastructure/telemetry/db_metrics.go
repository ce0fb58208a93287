package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	Enabled bool
	// SlowQueryThreshold defines the threshold for slow query detection (default: 200ms).
	SlowQueryThreshold time.Duration
	// DBName labels the connection pool collector.
	DBName string
}

// DefaultDBMetricsConfig returns default configuration for database metrics.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 200 * time.Millisecond,
		DBName:             "shop",
	}
}

// RecordQuery records metrics for one database statement.
func (m *Metrics) RecordQuery(operation, table string, duration, slowThreshold time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	m.dbQueries.WithLabelValues(operation).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if duration > slowThreshold {
		if table == "" {
			table = "unknown"
		}
		m.dbSlowQueries.WithLabelValues(table).Inc()
	}
}

// DBMetricsPlugin is a GORM plugin that records query counts and latency.
type DBMetricsPlugin struct {
	metrics   *Metrics
	threshold time.Duration
	logger    *zap.Logger
}

// NewDBMetricsPlugin creates a new GORM plugin for database metrics.
func NewDBMetricsPlugin(metrics *Metrics, slowThreshold time.Duration, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return &DBMetricsPlugin{
		metrics:   metrics,
		threshold: slowThreshold,
		logger:    logger,
	}
}

// Name returns the plugin name.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize registers the GORM callbacks for metrics collection.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	return registerAround(db, "db_metrics", markQueryStart, p.record)
}

func (p *DBMetricsPlugin) record(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	elapsed, _ := queryElapsed(ctx)
	p.metrics.RecordQuery(detectOperationType(db.Statement.SQL.String()), db.Statement.Table, elapsed, p.threshold)
}

// detectOperationType derives the SQL verb from the rendered statement.
func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))

	switch {
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "OTHER"
	}
}

// RegisterDBMetrics installs the query plugin on db and exports its
// connection pool statistics.
func RegisterDBMetrics(db *gorm.DB, metrics *Metrics, cfg DBMetricsConfig, logger *zap.Logger) error {
	if !cfg.Enabled || metrics == nil {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := metrics.registry.Register(collectors.NewDBStatsCollector(sqlDB, cfg.DBName)); err != nil {
		return fmt.Errorf("failed to register pool stats collector: %w", err)
	}
	if err := db.Use(NewDBMetricsPlugin(metrics, cfg.SlowQueryThreshold, logger)); err != nil {
		return err
	}

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
		zap.String("db_name", cfg.DBName),
	)
	return nil
}

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	base := zaptest.NewLogger(t)

	lp, err := NewLoggerProvider(ctx, Config{ServiceName: "shop"}, false, base)
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.Same(t, base, lp.Tee(base, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewLoggerProvider_Enabled(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping collector-backed test in short mode")
	}
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	// The gRPC exporter connects lazily, so no collector is needed to build it
	lp, err := NewLoggerProvider(ctx, Config{
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "shop",
		Insecure:          true,
	}, true, base)
	require.NoError(t, err)
	assert.True(t, lp.IsEnabled())

	teed := lp.Tee(base, zapcore.WarnLevel)
	assert.NotSame(t, base, teed)
	// construction logs through the base core
	assert.Equal(t, 1, logs.FilterMessage("OTLP log export enabled").Len())

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = lp.Shutdown(shutdownCtx)
}

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(&levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}).With(zap.String("order_id", "7"))

	logger.Info("checkout started")
	logger.Warn("mail delivery failed")
	logger.Error("kafka unavailable")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "mail delivery failed", logs.All()[0].Message)
	assert.Equal(t, "7", logs.All()[0].ContextMap()["order_id"])
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

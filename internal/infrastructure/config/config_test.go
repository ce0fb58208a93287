package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shop-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8000", cfg.App.Port)
		assert.Equal(t, "http://localhost:8000", cfg.App.PublicURL)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shop", cfg.Database.DBName)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, "log", cfg.Mail.Provider)
		assert.Equal(t, int64(20<<20), cfg.HTTP.MaxImportSize)
		assert.False(t, cfg.Redis.Enabled)
	})

	t.Run("loads values from environment variables with SHOP prefix", func(t *testing.T) {
		t.Setenv("SHOP_APP_PORT", "9000")
		t.Setenv("SHOP_DATABASE_DRIVER", "sqlite")
		t.Setenv("SHOP_DATABASE_PATH", "/tmp/test.db")
		t.Setenv("SHOP_JWT_EXPIRATION", "1h")
		t.Setenv("SHOP_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
		assert.Equal(t, time.Hour, cfg.JWT.Expiration)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("SHOP_DATABASE_DRIVER", "mysql")

		_, err := Load()
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		t.Setenv("SHOP_APP_ENV", "production")
		t.Setenv("SHOP_DATABASE_PASSWORD", "pw")
		t.Setenv("SHOP_JWT_SECRET", "short")

		_, err := Load()
		assert.ErrorContains(t, err, "jwt.secret")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("sendgrid needs api key", func(t *testing.T) {
		cfg := base()
		cfg.Mail.Provider = "sendgrid"
		assert.ErrorContains(t, cfg.validate(), "sendgrid_api_key")
		cfg.Mail.SendGridAPIKey = "SG.key"
		assert.NoError(t, cfg.validate())
	})

	t.Run("kafka needs brokers", func(t *testing.T) {
		cfg := base()
		cfg.Kafka.Enabled = true
		assert.ErrorContains(t, cfg.validate(), "kafka.brokers")
	})

	t.Run("storage needs bucket", func(t *testing.T) {
		cfg := base()
		cfg.Storage.Enabled = true
		assert.ErrorContains(t, cfg.validate(), "storage.bucket")
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("sampling ratio bounds", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "shop", Password: "p@ss word", DBName: "shop", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/shop?sslmode=disable", d.DSN())
}

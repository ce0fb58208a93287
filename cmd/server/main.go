package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
	identityapp "github.com/shopapi/backend/internal/application/identity"
	"github.com/shopapi/backend/internal/application/notification"
	tradeapp "github.com/shopapi/backend/internal/application/trade"
	"github.com/shopapi/backend/internal/infrastructure/auth"
	"github.com/shopapi/backend/internal/infrastructure/config"
	"github.com/shopapi/backend/internal/infrastructure/event"
	catalogimport "github.com/shopapi/backend/internal/infrastructure/import"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/infrastructure/mail"
	"github.com/shopapi/backend/internal/infrastructure/messaging"
	"github.com/shopapi/backend/internal/infrastructure/persistence"
	"github.com/shopapi/backend/internal/infrastructure/storage"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"github.com/shopapi/backend/internal/interfaces/http/handler"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
	"github.com/shopapi/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopapi/backend/docs"
)

//	@title			Shop API
//	@version		1.0
//	@description	Marketplace backend: accounts, supplier catalog import, basket and order processing.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Format: "Token {jwt}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)
	zap.ReplaceGlobals(log)

	log.Info("Starting Shop API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		if err := logProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = logProvider.Tee(log, logger.ParseLevel(cfg.Log.Level))
	zap.ReplaceGlobals(log)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// sqlite has no migration runner; its schema always comes from the models
	if cfg.Database.AutoMigrate || cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	metrics := telemetry.NewMetrics("shop")
	if err := telemetry.RegisterDBMetrics(db.DB, metrics, telemetry.DefaultDBMetricsConfig(), log); err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		tracingCfg := telemetry.DefaultDBTracingConfig()
		tracingCfg.Enabled = true
		if cfg.Database.Driver == "sqlite" {
			tracingCfg.DBSystem = "sqlite"
		}
		if err := telemetry.NewDBTracingPlugin(tracingCfg, log).Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Token revocation survives restarts only with Redis
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cfg.Redis.Enabled {
		client, err := auth.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		redisBlacklist := auth.NewRedisTokenBlacklist(client)
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis")
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productInfoRepo := persistence.NewGormProductInfoRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	mailer, err := mail.NewMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(notification.NewRegistrationMailHandler(mailer, cfg.App.PublicURL, log))
	eventBus.Subscribe(notification.NewOrderMailHandler(mailer, userRepo, orderRepo, log))
	eventBus.Subscribe(telemetry.NewBusinessMetricsHandler(metrics))
	if cfg.Kafka.Enabled {
		sink, err := messaging.NewKafkaSink(cfg.Kafka, log)
		if err != nil {
			log.Fatal("Failed to initialize Kafka sink", zap.Error(err))
		}
		defer sink.Close()
		eventBus.Subscribe(notification.NewEventForwarder(sink, log))
		log.Info("Order events forwarded to Kafka", zap.String("topic", cfg.Kafka.Topic))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	var archiver catalogapp.DocumentArchiver
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3Archive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize import archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare import archive bucket", zap.Error(err), zap.String("bucket", archive.Bucket()))
		}
		archiver = archive
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(scope.Identity(), userRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(scope.Identity(), userRepo, jwtService, blacklist, log)
	contactService := identityapp.NewContactService(scope.Identity(), contactRepo, log)
	shopService := catalogapp.NewShopService(scope.Catalog(), shopRepo, log)
	categoryService := catalogapp.NewCategoryService(scope.Catalog(), categoryRepo, log)
	productService := catalogapp.NewProductService(scope.Catalog(), productInfoRepo, log)
	importService := catalogapp.NewImportService(scope.Catalog(), catalogimport.NewParser(), archiver, eventBus, log)
	basketService := tradeapp.NewBasketService(scope.Trade(), orderRepo, eventBus, log)
	orderService := tradeapp.NewOrderService(scope.Trade(), orderRepo, eventBus, log)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}

	middleware.SetupValidator()
	authLimiter := middleware.NewRateLimiter(20, time.Minute)
	defer authLimiter.Stop()

	engine := router.New(router.Config{
		Logger: log,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			AllowCredentials: true,
		},
		Security: middleware.DefaultSecurityConfig(),
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Auth: middleware.JWTMiddlewareConfig{
			Authenticator: authService,
			Shops:         shopRepo,
			Logger:        log,
		},
		Metrics:        metrics,
		AuthLimiter:    authLimiter,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		MaxImportSize:  cfg.HTTP.MaxImportSize,
		SwaggerEnabled: cfg.App.Env != "production",
	}, router.Handlers{
		System:   handler.NewSystemHandler(sqlDB, version),
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Contact:  handler.NewContactHandler(contactService),
		Shop:     handler.NewShopHandler(shopService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Import:   handler.NewImportHandler(importService, cfg.HTTP.MaxImportSize),
		Basket:   handler.NewBasketHandler(basketService),
		Order:    handler.NewOrderHandler(orderService),
	})
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

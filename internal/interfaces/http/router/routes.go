package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"github.com/shopapi/backend/internal/interfaces/http/handler"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers of the API
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Contact  *handler.ContactHandler
	Shop     *handler.ShopHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Import   *handler.ImportHandler
	Basket   *handler.BasketHandler
	Order    *handler.OrderHandler
}

// Config configures the engine and its middleware chain
type Config struct {
	Logger     *zap.Logger
	APIVersion string
	CORS       middleware.CORSConfig
	Security   middleware.SecurityConfig
	Tracing    middleware.TracingConfig
	Auth       middleware.JWTMiddlewareConfig

	Metrics        *telemetry.Metrics      // nil disables request metrics and /metrics
	AuthLimiter    *middleware.RateLimiter // nil leaves register and login unthrottled
	MaxBodySize    int64
	MaxImportSize  int64
	SwaggerEnabled bool
}

// New builds the engine: global middleware, operational endpoints and every
// API route under /api/{version}.
func New(cfg Config, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}

	engine := gin.New()
	engine.Use(
		logger.Recovery(cfg.Logger),
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		middleware.Tracing(cfg.Tracing),
	)
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
	}
	engine.Use(
		middleware.SecureWithConfig(cfg.Security),
		middleware.CORS(cfg.CORS),
	)
	engine.NoRoute(h.System.NoRoute)

	engine.GET("/health", h.System.Health)
	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	NewRouter(engine, WithAPIVersion(cfg.APIVersion)).
		Register(APIGroups(cfg, h)...).
		Setup()
	return engine
}

// APIGroups returns the route groups of the versioned API
func APIGroups(cfg Config, h Handlers) []RouteRegistrar {
	jsonBody := middleware.BodyLimit(cfg.MaxBodySize)
	authenticated := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(cfg.Auth),
		middleware.SpanEnricher(),
	}
	throttle := func(c *gin.Context) { c.Next() }
	if cfg.AuthLimiter != nil {
		throttle = middleware.RateLimit(cfg.AuthLimiter)
	}

	accounts := NewDomainGroup("accounts", "/users").Use(jsonBody)
	accounts.POST("/register", throttle, h.Auth.Register)
	accounts.POST("/login", throttle, h.Auth.Login)
	accounts.POST("/confirm-email", h.Auth.ConfirmEmail)
	accounts.GET("/confirm-email/:key", h.Auth.ConfirmEmailByKey)

	users := NewDomainGroup("users", "/users").Use(jsonBody).Use(authenticated...)
	users.POST("/logout", h.Auth.Logout)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	contacts := NewDomainGroup("contacts", "/contacts").Use(jsonBody).Use(authenticated...)
	contacts.GET("", h.Contact.List)
	contacts.POST("", h.Contact.Create)
	contacts.GET("/:id", h.Contact.Get)
	contacts.PUT("/:id", h.Contact.Update)
	contacts.DELETE("/:id", h.Contact.Delete)

	shops := NewDomainGroup("shops", "/shops").Use(jsonBody)
	shops.GET("", h.Shop.List)
	shops.GET("/:id", h.Shop.Get)
	shops.Group("shop-owners", "").Use(authenticated...).
		PUT("/:id", h.Shop.Update).
		PATCH("/:id/state", h.Shop.SetState)

	categories := NewDomainGroup("categories", "/categories").Use(jsonBody)
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get)
	categories.Group("category-owners", "").Use(authenticated...).
		PUT("/:id", h.Category.Rename).
		DELETE("/:id", h.Category.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.Get)

	partner := NewDomainGroup("partner", "/partner").Use(jsonBody).Use(authenticated...).Use(middleware.RequirePartner())
	partner.GET("/products", h.Product.ListPartner)
	partner.PUT("/products/:id", h.Product.UpdateListing)
	partner.DELETE("/products/:id", h.Product.DeleteListing)
	partner.GET("/orders", h.Order.ListPartner)
	partner.PATCH("/orders/:id/state", h.Order.ChangeState)

	catalogImport := NewDomainGroup("import", "/import").
		Use(middleware.BodyLimit(cfg.MaxImportSize)).
		Use(authenticated...)
	catalogImport.POST("", h.Import.Import)

	basket := NewDomainGroup("basket", "/basket").Use(jsonBody).Use(authenticated...)
	basket.GET("", h.Basket.Get)
	basket.POST("", h.Basket.AddItems)
	basket.PUT("", h.Basket.UpdateItems)
	basket.DELETE("", h.Basket.Remove)

	orders := NewDomainGroup("orders", "/orders").Use(jsonBody).Use(authenticated...)
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	orders.POST("", h.Basket.Checkout)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{
		accounts, users, contacts, shops, categories, products,
		partner, catalogImport, basket, orders, system,
	}
}

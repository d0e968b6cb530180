package main

import (
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loja/backend/internal/infrastructure/config"
	"github.com/loja/backend/internal/infrastructure/logger"
	"github.com/loja/backend/internal/infrastructure/telemetry"
	"github.com/loja/backend/internal/interfaces/http/dto"
	"github.com/loja/backend/internal/interfaces/http/handler"
	"github.com/loja/backend/internal/interfaces/http/middleware"
	"github.com/loja/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// serverDeps are the handlers and providers the HTTP engine is built from
type serverDeps struct {
	products      *handler.ProductHandler
	orders        *handler.OrderHandler
	system        *handler.SystemHandler
	meterProvider *telemetry.MeterProvider
}

// newEngine builds the gin engine with the middleware stack and all routes.
// The returned func releases background resources held by the middleware.
func newEngine(cfg *config.Config, log *zap.Logger, deps serverDeps) (*gin.Engine, func()) {
	middleware.SetupValidator()

	engine := gin.New()
	stop := func() {}

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Server span, so the request logger sees trace IDs
	// 4. Logger - Log requests
	// 5. Metrics - HTTP instruments
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(deps.meterProvider))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		stop = rateLimiter.Stop
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside the API prefix)
	engine.GET("/health", deps.system.Health)

	r := router.NewRouter(engine)

	catalogRoutes := router.NewDomainGroup("catalog", "/produtos")
	catalogRoutes.GET("", deps.products.List)
	catalogRoutes.GET("/:id", deps.products.GetByID)
	r.Register(catalogRoutes)

	orderRoutes := router.NewDomainGroup("order", "/pedido")
	orderRoutes.POST("", deps.orders.PlaceOrder)
	r.Register(orderRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", deps.system.GetSystemInfo)
	systemRoutes.GET("/ping", deps.system.Ping)
	r.Register(systemRoutes)

	r.Setup()

	engine.NoRoute(staticOrNotFound(cfg.HTTP.StaticDir, log))

	return engine, stop
}

// staticOrNotFound serves the storefront page from dir for GET and HEAD requests.
// Everything else, or a missing dir, gets a JSON 404.
func staticOrNotFound(dir string, log *zap.Logger) gin.HandlerFunc {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Rota não encontrada"))
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Info("Static directory not found, storefront page disabled", zap.String("dir", dir))
		return notFound
	}

	root := gin.Dir(dir, false)
	files := http.FileServer(root)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}
		f, err := root.Open(path.Clean("/" + c.Request.URL.Path))
		if err != nil {
			notFound(c)
			return
		}
		_ = f.Close()
		files.ServeHTTP(c.Writer, c.Request)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/loja/backend/internal/application/catalog"
	orderapp "github.com/loja/backend/internal/application/order"
	"github.com/loja/backend/internal/infrastructure/broker"
	"github.com/loja/backend/internal/infrastructure/config"
	"github.com/loja/backend/internal/infrastructure/dispatch"
	"github.com/loja/backend/internal/infrastructure/logger"
	"github.com/loja/backend/internal/infrastructure/telemetry"
	"github.com/loja/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers; each is a no-op when disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log := telemetry.NewBridgedLogger(baseLog, telemetry.NewZapOTELCore(loggerProvider, cfg.Telemetry.ServiceName, level))
	defer logger.Sync(log)

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("broker_driver", cfg.Broker.Driver),
	)

	// Catalog
	cat, err := catalogapp.BuildCatalog(productSpecs(cfg.Catalog.Products), cfg.Catalog.Currency)
	if err != nil {
		log.Fatal("Invalid catalog configuration", zap.Error(err))
	}
	log.Info("Catalog loaded", zap.Int("products", cat.Len()))

	orderMetrics := newOrderMetrics(meterProvider, log)

	// Broker connection is established once and shared by all requests.
	// An unreachable broker leaves the service running without dispatch.
	brokerClient, err := broker.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create broker client", zap.Error(err))
	}
	publisher := dispatch.NewPublisher(brokerClient, cfg.Broker.Topic, log, dispatch.WithMetrics(orderMetrics))

	// Application services
	productService := catalogapp.NewProductService(cat)
	orderService := orderapp.NewOrderService(
		cat,
		publisher,
		orderapp.NewConfirmationComposer(cfg.Confirmation.BaseURL, cfg.Confirmation.CountryCode),
		orderapp.WithMetrics(orderMetrics),
		orderapp.WithLogger(log),
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, stopEngine := newEngine(cfg, log, serverDeps{
		products:      handler.NewProductHandler(productService),
		orders:        handler.NewOrderHandler(orderService),
		system:        handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion, brokerClient),
		meterProvider: meterProvider,
	})

	srv := &http.Server{
		Addr:           cfg.App.Address(),
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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopEngine()

	if err := brokerClient.Close(shutdownCtx); err != nil {
		log.Warn("Error closing broker connection", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")

	// Last, so the messages above still reach the collector
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Warn("Error shutting down logger provider", zap.Error(err))
	}
}

// productSpecs converts configured products for BuildCatalog
func productSpecs(products []config.ProductConfig) []catalogapp.ProductSpec {
	specs := make([]catalogapp.ProductSpec, 0, len(products))
	for _, p := range products {
		specs = append(specs, catalogapp.ProductSpec{
			ID:       p.ID,
			Name:     p.Name,
			Color:    p.Color,
			Price:    p.Price,
			Position: p.Position,
		})
	}
	return specs
}

// newOrderMetrics returns nil when metrics are disabled; a nil *OrderMetrics records nothing
func newOrderMetrics(mp *telemetry.MeterProvider, log *zap.Logger) *telemetry.OrderMetrics {
	if !mp.IsEnabled() {
		return nil
	}
	m, err := telemetry.NewOrderMetrics(mp.Meter("loja.order"))
	if err != nil {
		log.Warn("Failed to create order metrics", zap.Error(err))
		return nil
	}
	return m
}

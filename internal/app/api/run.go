package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	marketplaceserver "github.com/levaja/marketplace-api/go"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
	"github.com/levaja/marketplace-api/internal/platform/migrations"
	platformobservability "github.com/levaja/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/levaja/marketplace-api/internal/platform/postgres"
	"github.com/levaja/marketplace-api/internal/platform/seed"
)

const serviceName = "levaja-marketplace-api"

// Run boots the marketplace HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Options{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.Open(ctx, cfg.Postgres.DSN, PostgresOptions(cfg), logger)
	defer closeDB()
	if err := migrations.Run(db); err != nil {
		return err
	}

	services, err := BuildServices(cfg, db, instruments)
	if err != nil {
		return err
	}
	if !cfg.Seed.Disabled {
		ds, err := seed.Demo()
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, ds, services.Seeding(), time.Now(), logger); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	var checkout ordersports.WorkflowOrchestrator = workflows.NewInlineOrderWorkflows(services.Orders)
	if temporalClient, err := ConnectTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = workflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	audit := marketplaceserver.NewAuditTrail(services.Insights, logger)
	handlers := marketplaceserver.ApiHandleFunctions{
		Guard:           marketplaceserver.NewGuard(services.Accounts),
		AuthAPI:         marketplaceserver.NewAuthAPI(services.Accounts),
		ProductAPI:      marketplaceserver.NewProductAPI(services.Catalog),
		MarketAPI:       marketplaceserver.NewMarketAPI(services.Catalog),
		CartAPI:         marketplaceserver.NewCartAPI(services.Carts),
		OrderAPI:        marketplaceserver.NewOrderAPI(services.Orders, checkout),
		NotificationAPI: marketplaceserver.NewNotificationAPI(services.Notifications),
		AdminUserAPI:    marketplaceserver.NewAdminUserAPI(services.Accounts, audit),
		AdminProductAPI: marketplaceserver.NewAdminProductAPI(services.Catalog, audit),
		AdminOrderAPI:   marketplaceserver.NewAdminOrderAPI(services.Orders, audit),
		SectorAPI:       marketplaceserver.NewSectorAPI(services.Sectors, audit),
		PromotionAPI:    marketplaceserver.NewPromotionAPI(services.Promotions, audit),
		WastageAPI:      marketplaceserver.NewWastageAPI(services.Wastage, audit),
		InsightsAPI:     marketplaceserver.NewInsightsAPI(services.Insights, audit),
		SystemAPI:       marketplaceserver.NewSystemAPI(),
	}

	router := marketplaceserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("marketplace API listening", slog.String("addr", cfg.HTTP.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("marketplace API server exited", slog.String("addr", cfg.HTTP.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down marketplace API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// PostgresOptions maps the pool settings onto the platform connector.
func PostgresOptions(cfg *Config) platformpostgres.Options {
	return platformpostgres.Options{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		SlowThreshold:   cfg.Postgres.SlowThreshold,
	}
}

// ConnectTemporal dials the configured cluster with tracing and structured logging attached.
func ConnectTemporal(cfg *Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

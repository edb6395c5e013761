package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/joao-fontenele/modestwear-storefront/internal/backend"
	"github.com/joao-fontenele/modestwear-storefront/internal/catalog"
	"github.com/joao-fontenele/modestwear-storefront/internal/config"
	"github.com/joao-fontenele/modestwear-storefront/internal/messaging"
	"github.com/joao-fontenele/modestwear-storefront/internal/orders"
	"github.com/joao-fontenele/modestwear-storefront/internal/storefront"
	"github.com/joao-fontenele/modestwear-storefront/internal/telemetry"
)

const (
	serviceName    = "storefront"
	serviceVersion = "0.1.0"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	metrics, err := telemetry.NewStorefrontMetrics(otel.Meter(serviceName))
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.PostgresURL != "" {
		db, err = telemetry.OpenDB(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
	}

	httpClient := &http.Client{
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	var remote *backend.Client
	if cfg.BackendAPIURL != "" {
		remote = backend.NewClient(cfg.BackendAPIURL, httpClient)
	}

	store := catalog.NewStore(catalog.SeedProducts(), catalog.DefaultFilterOptions())
	if err := loadCatalog(ctx, cfg, store, db, remote, logger); err != nil {
		logger.Error("failed to load catalog", "error", err, "source", cfg.CatalogSource)
		os.Exit(1)
	}

	var orderStore orders.Store = orders.NewMemoryRepository()
	if db != nil {
		orderStore = orders.NewOrderRepository(db)
	}

	opts := []storefront.Option{
		storefront.WithPricing(cfg.Pricing),
		storefront.WithOrderStore(orderStore),
	}
	if remote != nil {
		opts = append(opts, storefront.WithBackend(remote))
	}
	if len(cfg.KafkaBrokers) > 0 {
		producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
		defer func() { _ = producer.Close() }()
		opts = append(opts, storefront.WithPublisher(producer))
	}

	session := storefront.NewSession(store, logger, opts...)
	session.Subscribe(func(e storefront.Event) {
		metrics.RecordEvent(ctx, string(e.Kind), e.Action)
	})

	mux := http.NewServeMux()
	storefront.NewHandler(session, metrics, logger).Register(mux, telemetry.WithHTTPRoute)

	ordersHandler := orders.NewHandler(orderStore, logger)
	mux.HandleFunc("GET /orders", telemetry.WithHTTPRoute(ordersHandler.HandleList))
	mux.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(ordersHandler.HandleGet))
	mux.HandleFunc("PATCH /orders/{id}/status", telemetry.WithHTTPRoute(ordersHandler.HandleUpdateStatus))
	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: otelhttp.NewHandler(mux, serviceName,
			otelhttp.WithSpanNameFormatter(telemetry.SpanNameFromPattern),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", cfg.Port, "catalog_source", cfg.CatalogSource)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// loadCatalog replaces the seed catalogue with the configured source. An
// empty products table is seeded so the database and the in-memory view
// agree.
func loadCatalog(ctx context.Context, cfg *config.Config, store *catalog.Store, db *sql.DB, remote *backend.Client, logger *slog.Logger) error {
	var src catalog.Source
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		repo := catalog.NewProductRepository(db)
		existing, err := repo.Products(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			if err := repo.Upsert(ctx, catalog.SeedProducts()); err != nil {
				return err
			}
			logger.Info("seeded products table")
		}
		src = repo
	case config.CatalogBackend:
		src = remote
	default:
		return nil
	}

	n, err := store.Refresh(ctx, src)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "source", cfg.CatalogSource, "products", n)
	return nil
}

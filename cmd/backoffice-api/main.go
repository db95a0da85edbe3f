package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/storedesk/backoffice-api/docs"
	"github.com/storedesk/backoffice-api/internal/api"
	"github.com/storedesk/backoffice-api/internal/api/handlers"
	"github.com/storedesk/backoffice-api/internal/api/middleware"
	"github.com/storedesk/backoffice-api/internal/cache"
	"github.com/storedesk/backoffice-api/internal/config"
	"github.com/storedesk/backoffice-api/internal/health"
	"github.com/storedesk/backoffice-api/internal/metrics"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	service "github.com/storedesk/backoffice-api/internal/services"
	"github.com/storedesk/backoffice-api/internal/tracing"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Back-office API
//	@version					1.0
//	@description				Admin API for the catalog, customers and the sale lifecycle.
//	@host						localhost:8080
//	@BasePath					/api/v1/admin
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the admin token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	policy, err := models.ParseTransitionPolicy(cfg.Sales.TransitionPolicy)
	if err != nil {
		slog.Error("Invalid sales configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStartup()

	shutdownTracing, err := tracing.Init(startupCtx, &cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, err := repository.OpenDB(startupCtx, &cfg.Database)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("Error migrating the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := repository.New(db)

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(startupCtx, &cfg.RedisConnect)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)

	jwtKey := []byte(cfg.Security.JWTKey)

	authService := service.NewAuthService(repos.Admins, rateLimitRepo, redisCache, jwtKey, cfg.Security.JWTExpiry())
	saleService := service.NewSaleService(repos.Sales, repos.Customers, repos.Products, policy)
	productService := service.NewProductService(repos.Products, repos.Categories, repos.Brands, redisCache)
	categoryService := service.NewCategoryService(repos.Categories, redisCache)
	brandService := service.NewBrandService(repos.Brands, redisCache)
	customerService := service.NewCustomerService(repos.Customers)
	dashboardService := service.NewDashboardService(repos.Products, repos.Sales)

	healthChecker, err := health.NewHealthHandler(cfg, db)
	if err != nil {
		slog.Error("Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("version", health.Version),
		slog.String("transitionPolicy", string(policy)))

	// Setup router
	routerMux := http.NewServeMux()
	api.RegisterRoutes(routerMux, &api.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Sales:     handlers.NewSaleHandler(saleService),
		Products:  handlers.NewProductHandler(productService),
		Category:  handlers.NewCategoryHandler(categoryService),
		Brands:    handlers.NewBrandHandler(brandService),
		Customers: handlers.NewCustomerHandler(customerService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	}, middleware.NewAuthMiddleware(jwtKey))

	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Error flushing traces", slog.String("error", err.Error()))
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pleko-crm/pleko-crm/internal/accounts"
	"github.com/pleko-crm/pleko-crm/internal/activities"
	"github.com/pleko-crm/pleko-crm/internal/app"
	"github.com/pleko-crm/pleko-crm/internal/auth"
	"github.com/pleko-crm/pleko-crm/internal/dashboard"
	"github.com/pleko-crm/pleko-crm/internal/ledger"
	"github.com/pleko-crm/pleko-crm/internal/orders"
	"github.com/pleko-crm/pleko-crm/internal/payments"
	"github.com/pleko-crm/pleko-crm/internal/pipeline"
	"github.com/pleko-crm/pleko-crm/internal/platform/cache"
	"github.com/pleko-crm/pleko-crm/internal/platform/db"
	"github.com/pleko-crm/pleko-crm/internal/products"
	"github.com/pleko-crm/pleko-crm/internal/shared"
	"github.com/pleko-crm/pleko-crm/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "pleko_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	ledgerCache := ledger.NewCache(redisClient, cfg.SnapshotCacheTTL)
	ledgerRepo := ledger.NewRepository(pool)
	ledgerService := ledger.NewService(ledgerRepo, ledgerCache)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	accountRepo := accounts.NewRepository(pool)
	accountService := accounts.NewService(accountRepo)
	accountHandler := accounts.NewHandler(logger, accountService, ledgerService)

	productRepo := products.NewRepository(pool)
	productService := products.NewService(productRepo)
	productHandler := products.NewHandler(logger, productService)

	orderRepo := orders.NewRepository(pool)
	orderService := orders.NewService(orderRepo, accountRepo, productService, ledgerService)
	orderHandler := orders.NewHandler(logger, orderService, productService)

	paymentRepo := payments.NewRepository(pool)
	paymentService := payments.NewService(paymentRepo, accountRepo, ledgerService)
	paymentHandler := payments.NewHandler(logger, paymentService)

	pipelineRepo := pipeline.NewRepository(pool)
	pipelineService := pipeline.NewService(pipelineRepo)
	pipelineHandler := pipeline.NewHandler(logger, pipelineService)

	activityRepo := activities.NewRepository(pool)
	activityService := activities.NewService(activityRepo)
	activityHandler := activities.NewHandler(logger, activityService)

	nameLookup := accounts.NewNameLookup(pool)
	dashboardService := dashboard.NewService(ledgerService, activityService, pipelineService, nameLookup)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		AccountHandler:   accountHandler,
		OrderHandler:     orderHandler,
		PaymentHandler:   paymentHandler,
		ProductHandler:   productHandler,
		PipelineHandler:  pipelineHandler,
		ActivityHandler:  activityHandler,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

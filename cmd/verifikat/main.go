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

	"github.com/hibiken/asynq"

	"github.com/forzencookie/verifikat/internal/app"
	"github.com/forzencookie/verifikat/internal/balances"
	"github.com/forzencookie/verifikat/internal/bas"
	"github.com/forzencookie/verifikat/internal/filings"
	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/observability"
	"github.com/forzencookie/verifikat/internal/payroll"
	"github.com/forzencookie/verifikat/internal/periods"
	"github.com/forzencookie/verifikat/internal/platform/cache"
	"github.com/forzencookie/verifikat/internal/platform/db"
	"github.com/forzencookie/verifikat/jobs"
)

func main() {
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
		logger.Error("connect database", slog.Any("error", err))
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

	chart := bas.StandardChart()

	ledgerService := ledger.NewService(ledger.NewRepository(pool))
	balanceService := balances.NewService(ledgerService, chart)
	periodService := periods.NewService(periods.NewRepository(pool), cfg.Settings())
	filingService := filings.NewService(ledgerService, periodService, filings.NewRedisStore(redisClient))
	payrollService := payroll.NewService(ledgerService, payroll.DefaultRates())

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	exporter := filings.ExporterFunc(func(ctx context.Context, kind periods.Kind, periodID string) error {
		_, err := jobsClient.EnqueueExport(ctx, jobs.FilingExportPayload{Kind: kind, PeriodID: periodID})
		return err
	})

	router := app.NewRouter(app.RouterDeps{
		Logger:   logger,
		Config:   cfg,
		Metrics:  observability.NewMetrics(),
		Ledger:   ledger.NewHandler(logger, ledgerService),
		Balances: balances.NewHandler(logger, balanceService),
		Filings:  filings.NewHandler(logger, filingService, exporter),
		Payroll:  payroll.NewHandler(logger, payrollService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}

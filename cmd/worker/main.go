package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/forzencookie/verifikat/internal/app"
	"github.com/forzencookie/verifikat/internal/filings"
	jobmetrics "github.com/forzencookie/verifikat/internal/jobs"
	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/periods"
	"github.com/forzencookie/verifikat/internal/platform/cache"
	"github.com/forzencookie/verifikat/internal/platform/db"
	"github.com/forzencookie/verifikat/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	ledgerService := ledger.NewService(ledger.NewRepository(pool))
	periodService := periods.NewService(periods.NewRepository(pool), cfg.Settings())
	filingService := filings.NewService(ledgerService, periodService, filings.NewRedisStore(redisClient))

	filingJobs := jobs.NewFilingJobs(filingService, logger, jobmetrics.NewMetrics(nil), os.TempDir())

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskFilingRecompute, Handler: filingJobs.HandleRecompute},
			{Type: jobs.TaskFilingExport, Handler: filingJobs.HandleExport},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 2 * * *", Task: jobs.NewFilingRecomputeTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

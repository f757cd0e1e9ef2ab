package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stocktree-app/stocktree/internal/app"
	jobmetrics "github.com/stocktree-app/stocktree/internal/jobs"
	"github.com/stocktree-app/stocktree/internal/part"
	"github.com/stocktree-app/stocktree/internal/platform/db"
	"github.com/stocktree-app/stocktree/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	_ = godotenv.Load()

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

	partRepo := part.NewRepository(pool)
	partService := part.NewService(partRepo)

	metrics := jobmetrics.NewMetrics(prometheus.DefaultRegisterer)
	restockJob := jobs.NewRestockScanJob(partService, logger, metrics)

	restockTask, err := jobs.NewRestockScanTask(jobs.RestockScanPayload{})
	if err != nil {
		logger.Error("build restock task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskRestockScan, Handler: restockJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.RestockScanSchedule, Task: restockTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

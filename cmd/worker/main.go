package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"belutin-web/internal/config"
	"belutin-web/internal/notify"
	"belutin-web/internal/utils"
	"belutin-web/internal/worker"

	"github.com/hibiken/asynq"
)

func main() {
	log := utils.GetLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	utils.SetLogLevel(cfg.LogLevel)

	sender, err := notify.Direct(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up OTP delivery")
	}

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.WithError(err).WithField("task", task.Type()).Error("Task failed")
			}),
			Logger: log,
		},
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, sender, log)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down worker...")
		srv.Shutdown()
	}()

	// Start worker
	log.WithFields(map[string]interface{}{
		"concurrency": cfg.WorkerConcurrency,
		"sender":      sender.Name(),
	}).Info("Worker starting")
	if err := srv.Run(mux); err != nil {
		log.WithError(err).Fatal("Failed to start worker")
	}

	log.Info("Worker exited")
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"rackcity/config"
	"rackcity/di"
	"rackcity/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx)
}

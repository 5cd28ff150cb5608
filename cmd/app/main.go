package main

import (
	"rackcity/config"
	"rackcity/di"
	"rackcity/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}

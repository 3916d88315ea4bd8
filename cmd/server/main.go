package main

import (
	"context"
	"os"

	"iotracker/internal/app/server"
	"iotracker/internal/app/server/config"
	"iotracker/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel)

	ctx := context.Background()
	app, err := server.NewApp(ctx, conf, log)
	if err != nil {
		log.Error("failed to init app", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

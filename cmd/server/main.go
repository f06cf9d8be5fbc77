package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/campuslink/campuslink-backend/internal/config"
	"github.com/campuslink/campuslink-backend/internal/logger"
	"github.com/campuslink/campuslink-backend/internal/server"
)

func main() {
	// missing env files are fine, real environment variables take over
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	cfg := config.New()
	logger.InitFromConfig(cfg)

	srv, err := server.New(cfg)
	if err != nil {
		logger.Error("failed to start server", "err", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error("server run error", "err", err)
		os.Exit(1)
	}
}

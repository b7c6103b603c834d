package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"catalog-studio/app"
	"catalog-studio/config"
	"catalog-studio/db"
)

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	if cfg.LogFormat == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	zlog.Logger = logger
}

func main() {
	// .env is optional; variables may also come straight from the
	// environment.
	if err := godotenv.Load(); err != nil {
		zlog.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg)

	handler, err := app.Initialize(context.Background(), cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer db.CloseDB()

	addr := "0.0.0.0:" + cfg.Port
	zlog.Info().Str("addr", addr).Msg("🚀 Catalog studio listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		zlog.Fatal().Err(err).Msg("Server failed")
	}
}

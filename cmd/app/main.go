package main

import (
	"billiard/config"
	"billiard/di"
	"billiard/helper"
	"billiard/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Billiard API
// @version 1.0
// @description Billiard table reservations: tables, table occupations and the waiting list.
// @BasePath /
// @securityDefinitions.apikey APIKey
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}

package main

import (
	"errors"
	"os"

	"billiard/config"
	"billiard/helper"
	"billiard/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up/version) is required")
	}

	cfg := config.Get()

	direction := os.Args[1]

	err := helper.Runner(cfg, direction)
	if errors.Is(err, helper.ErrUnknownAction) {
		log.Fatal().Str("direction", direction).Msg("Invalid direction. Use 'up', 'down', 'drop', 'step-up' or 'version'")
	}

	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("Migration failed")
	}
}

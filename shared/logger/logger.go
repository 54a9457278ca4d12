package logger

import (
	"os"
	"time"

	"billiard/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	fieldOperation = "operation"
	fieldParams    = "params"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Operation starts an info event tagged with the operation name and its input parameters.
func Operation(operation string, params any) *zerolog.Event {
	return log.Info().Str(fieldOperation, operation).Interface(fieldParams, params)
}

// OperationError logs a failed operation together with the input that produced it.
func OperationError(err error, operation string, params any) {
	log.Error().Err(err).Str(fieldOperation, operation).Interface(fieldParams, params).Msg(operation + " failed")
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

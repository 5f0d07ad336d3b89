package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/pern-todo/internal/config"
)

// NewDefaultLogger returns the logger used until the config has been read.
func NewDefaultLogger() zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	logger.Info().Msg("initialized default logger")
	return logger
}

func MustInitApplicationLogger(logger zerolog.Logger, env string) zerolog.Logger {
	appLogger, err := newApplicationLogger(logger, env, os.Stdout)
	if err != nil {
		logger.Error().
			Err(err).
			Str("env", env).
			Msg("failed to init application logger")
		panic(err)
	}

	appLogger.Info().Msg("initialized application logger")
	return appLogger
}

// newApplicationLogger sets the global level for env and redirects logger
// to out. The local env gets human-readable console output.
func newApplicationLogger(logger zerolog.Logger, env string, out io.Writer) (zerolog.Logger, error) {
	w := out
	switch env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		w = consoleWriter
	default:
		return logger, fmt.Errorf("%w: %s", config.ErrUnknownEnv, env)
	}

	return logger.Output(w), nil
}

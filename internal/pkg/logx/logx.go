/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger, selects the output format (console for development,
JSON for production), and hands out per-component child loggers so that every log line
carries the component it originated from.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger initializes the global zerolog instance.
// Development: Debug level with a human-readable console writer.
// Production: Info level with standard JSON output.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// Info records a log message at the Info level on the global logger.
func Info(msg string) {
	Logger().Info().Msg(msg)
}

// Warn records a log message at the Warn level on the global logger.
func Warn(msg string) {
	Logger().Warn().Msg(msg)
}

// Error records an error and a message at the Error level on the global logger.
func Error(err error, msg string) {
	Logger().Error().Err(err).Msg(msg)
}

// Fatal records the error at the Fatal level and terminates the process.
func Fatal(err error, msg string) {
	Logger().Fatal().Err(err).Msg(msg)
}

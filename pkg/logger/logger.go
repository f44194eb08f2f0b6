// Package logger is a thin zerolog facade with per-component tagging.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Development mode gets a console writer
// with debug level, anything else gets level-filtered JSON on stderr.
func Init(environment string) {
	if strings.EqualFold(environment, "development") {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).
			With().Timestamp().Logger().
			Level(zerolog.DebugLevel)
		return
	}
	log.Logger = zerolog.New(os.Stderr).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}

// SetLevel overrides the global log level.
func SetLevel(level zerolog.Level) {
	log.Logger = log.Logger.Level(level)
}

func Debug(component string) *zerolog.Event {
	return log.Debug().Str("component", component)
}

func Info(component string) *zerolog.Event {
	return log.Info().Str("component", component)
}

func Warn(component string) *zerolog.Event {
	return log.Warn().Str("component", component)
}

func Error(component string) *zerolog.Event {
	return log.Error().Str("component", component)
}

func Fatal(component string) *zerolog.Event {
	return log.Fatal().Str("component", component)
}

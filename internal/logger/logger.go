package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Console format pretty-prints for local
// development; any other format emits JSON lines. Unrecognized levels fall
// back to info rather than failing startup.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stdout)
	if f := strings.ToLower(format); f == "console" || f == "text" {
		log = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	return log.Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

// NewNop creates a no-op logger for testing.
func NewNop() zerolog.Logger {
	return zerolog.Nop()
}

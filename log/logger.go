// Package log provides the single shared logger used across every
// component of the adapter.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

// Logger returns the package-level logger shared by every component.
func Logger() *zerolog.Logger {
	return &logger
}

// EnableDebugLogging turns on debug-level logging for the whole adapter.
func EnableDebugLogging() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// Package logging wires the zerolog console writer every ckc binary shares,
// the Go-idiomatic analogue of the tracing_subscriber setup the original
// implementation wires in its src/main.rs.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a console-pretty, leveled global logger. The level is read
// from the CKC_LOG environment variable ("debug", "info", "warn", "error"),
// defaulting to "info" when unset or unrecognized.
func Setup() {
	level := parseLevel(os.Getenv("CKC_LOG"))
	zerolog.SetGlobalLevel(level)

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "event-content-pipeline"

// New creates a zerolog logger configured from LOG_LEVEL, LOG_FORMAT and ENV
func New() zerolog.Logger {
	pretty := os.Getenv("LOG_FORMAT") == "pretty" || os.Getenv("ENV") == "development"
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), pretty)
}

// NewWithWriter builds the logger on an arbitrary writer
func NewWithWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	return zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Level       string
	Environment string
	Service     string
	Version     string
	Writer      io.Writer
}

// New builds the process logger and installs it as the zerolog global.
// Development gets human-readable console output, everything else JSON.
func New(opt Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opt.Level)
	if err != nil || opt.Level == "" {
		level = zerolog.InfoLevel
	}

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Environment == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).Level(level).With().
		Timestamp().
		Str("service", opt.Service).
		Str("version", opt.Version).
		Logger()

	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	return logger
}

// FromContext returns the request-scoped logger, or the global one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

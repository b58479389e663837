// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Debug bool
	// Console selects the human-readable writer instead of JSON lines.
	Console bool
	Output  io.Writer
}

// New builds the root logger and installs it as the zerolog default, so code
// holding a context without a logger still writes somewhere sensible.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Str("service", "suggestscore").Logger()

	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	return logger
}

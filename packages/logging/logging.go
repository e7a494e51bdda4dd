// Package logging constructs the zerolog loggers used across markpreview.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the given component name. Console
// output goes to stderr so renderer output on stdout stays clean.
func New(component, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).
		Level(lvl).
		With().
		Str("component", component).
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything. Embedding hosts that
// bring their own logging pass this to keep the resolver quiet.
func Nop() zerolog.Logger {
	return zerolog.New(io.Discard)
}

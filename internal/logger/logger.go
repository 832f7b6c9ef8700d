// Package logger provides the compiler's single global structured
// logger, grounded on joshuapare-hivekit's logger package: a
// discard-by-default log/slog instance that Init switches to a real
// handler once the CLI has parsed its verbosity flag.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger. It discards everything until Init is
// called, so packages may log freely during tests without configuring
// anything.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Verbose bool       // enables Debug-level output
	Level   slog.Level // overrides the default level when nonzero
}

// Init switches L to write to stderr at the configured level. Tau is
// a single-shot CLI, not a long-running service, so there is no log
// file rotation to manage here — everything goes to the invoking
// terminal, the way options.h's log-level option controls verbosity
// of messages printed during one compiler invocation.
func Init(opts Options) {
	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
		if opts.Verbose {
			level = slog.LevelDebug
		}
	}
	L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }

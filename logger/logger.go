package logger

import (
	"io"
	"log/slog"
	"os"
)

const appName = "swagger-codegen-bin"

var log = discard()

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger replaces the package logger; nil silences it again
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard()
	}
	log = l
}

// New returns a stderr logger, at debug level when verbose
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, verbose bool) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(h).With("app", appName)
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// With returns the current logger with extra attributes, e.g. the pipeline stage
func With(args ...any) *slog.Logger {
	return log.With(args...)
}

func Debug(msg string, args ...any) { log.Debug(msg, args...) }
func Info(msg string, args ...any)  { log.Info(msg, args...) }
func Warn(msg string, args ...any)  { log.Warn(msg, args...) }
func Error(msg string, args ...any) { log.Error(msg, args...) }

package ral

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/ral/backend"
	"github.com/gogpu/ral/config"
	"github.com/gogpu/ral/fence"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for ral and all its sub-packages.
// By default, ral produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ral:
//   - [slog.LevelDebug]: internal diagnostics (fence lifetime, adapter probing)
//   - [slog.LevelInfo]: lifecycle events (device opened), soft limit shortfalls
//   - [slog.LevelWarn]: rejected devices, failed submissions, missing settings file
//   - [slog.LevelError]: fence signal failures
//
// Example:
//
//	// Enable info-level logging to stderr:
//	ral.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	ral.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	fence.SetLogger(l)
	backend.SetLogger(l)
	config.SetLogger(l)
}

// Logger returns the current logger used by ral.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// levelHandler drops records below a minimum level before they reach the
// wrapped handler.
type levelHandler struct {
	level slog.Leveler
	h     slog.Handler
}

func newLevelHandler(level slog.Leveler, h slog.Handler) *levelHandler {
	if lh, ok := h.(*levelHandler); ok {
		h = lh.h
	}
	return &levelHandler{level: level, h: h}
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.h.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.h.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newLevelHandler(h.level, h.h.WithAttrs(attrs))
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return newLevelHandler(h.level, h.h.WithGroup(name))
}

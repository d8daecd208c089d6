package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogHandler implements slog.Handler by wrapping a namespaced Logger.
// This allows integration with libraries that expect an slog.Logger.
type SlogHandler struct {
	logger *Logger
}

// NewSlogHandler creates a new slog.Handler that wraps a Logger.
func NewSlogHandler(logger *Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// Enabled reports whether the handler handles records at the given level.
// All levels are enabled whenever the underlying logger is enabled.
func (h *SlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return h.logger.Enabled()
}

// Handle handles the Record. It is only called when Enabled returns true.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.logger.Enabled() {
		return nil
	}

	var msg strings.Builder
	msg.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		msg.WriteString(" " + a.Key + "=" + a.Value.String())
		return true
	})

	levelPrefix := ""
	switch r.Level {
	case slog.LevelDebug:
		levelPrefix = "[DEBUG] "
	case slog.LevelInfo:
		levelPrefix = "[INFO] "
	case slog.LevelWarn:
		levelPrefix = "[WARN] "
	case slog.LevelError:
		levelPrefix = "[ERROR] "
	default:
		levelPrefix = fmt.Sprintf("[%s] ", r.Level)
	}

	h.logger.Print(levelPrefix + msg.String())
	return nil
}

// WithAttrs returns the handler unchanged; attributes are not persisted.
func (h *SlogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup returns the handler unchanged; groups are not persisted.
func (h *SlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// NewSlogLogger creates a new slog.Logger backed by a namespaced Logger.
func NewSlogLogger(namespace string) *slog.Logger {
	return slog.New(NewSlogHandler(New(namespace)))
}

// Discard returns a slog.Logger that discards all output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

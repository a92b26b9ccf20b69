// Package logging configures the message-only log output used by the gate.
package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Verbosity levels accepted by --verbosity (10 debug ... 50 critical).
const (
	VerbosityDebug    = 10
	VerbosityInfo     = 20
	VerbosityWarning  = 30
	VerbosityError    = 40
	VerbosityCritical = 50
)

// LevelCritical sits above slog.LevelError.
const LevelCritical = slog.Level(12)

// LevelFromVerbosity maps a numeric verbosity onto the lowest slog level
// that is not below it. 10 maps to Debug, 20 to Info, 30 to Warn, 40 to Error
// and 50 to LevelCritical; 21 already drops Info records.
func LevelFromVerbosity(verbosity int) slog.Level {
	n := (verbosity - VerbosityInfo) * 4
	level := n / 10
	if n%10 > 0 {
		level++
	}
	return slog.Level(level)
}

// MessageHandler is a slog.Handler that writes the message text only,
// without timestamp, level or attributes.
type MessageHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
}

var _ slog.Handler = &MessageHandler{} // Compile-time check

// NewMessageHandler creates a handler writing to w for records at or above level.
func NewMessageHandler(w io.Writer, level slog.Leveler) *MessageHandler {
	return &MessageHandler{mu: &sync.Mutex{}, w: w, level: level}
}

// Enabled implements slog.Handler.
func (h *MessageHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *MessageHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, r.Message+"\n")
	return err
}

// WithAttrs implements slog.Handler. Attributes are never printed.
func (h *MessageHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler. Groups are never printed.
func (h *MessageHandler) WithGroup(_ string) slog.Handler {
	return h
}

// New returns a message-only logger for the given verbosity.
func New(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(NewMessageHandler(w, LevelFromVerbosity(verbosity)))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LineWriter forwards whatever is written to it into a logger, one record per line.
// Blank and whitespace-only lines are dropped. A trailing partial line is held
// until the next newline or Close.
type LineWriter struct {
	logger *slog.Logger
	level  slog.Level
	buf    bytes.Buffer
}

var _ io.WriteCloser = &LineWriter{} // Compile-time check

// NewLineWriter creates a LineWriter logging at level.
func NewLineWriter(logger *slog.Logger, level slog.Level) *LineWriter {
	return &LineWriter{logger: logger, level: level}
}

// Write implements io.Writer.
func (lw *LineWriter) Write(p []byte) (int, error) {
	lw.buf.Write(p)
	for {
		idx := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := string(lw.buf.Next(idx + 1))
		lw.emit(line)
	}
	return len(p), nil
}

// Close flushes any partial line.
func (lw *LineWriter) Close() error {
	if lw.buf.Len() > 0 {
		lw.emit(lw.buf.String())
		lw.buf.Reset()
	}
	return nil
}

func (lw *LineWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	lw.logger.Log(context.Background(), lw.level, line)
}

package logging

import (
	"bytes"
	"log/slog"
)

// Writer is an io.Writer that forwards each written line to a logger as a status record.
type Writer struct {
	logger *slog.Logger
	attrs  []any
}

// NewWriter constructs a Writer bound to logger; attrs are attached to every record.
func NewWriter(logger *slog.Logger, attrs ...any) *Writer {
	return &Writer{logger: logger, attrs: attrs}
}

// Write logs every non-empty line in p at info level.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range bytes.Split(p, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		w.logger.Info("status", append([]any{"line", string(line)}, w.attrs...)...)
	}
	return len(p), nil
}

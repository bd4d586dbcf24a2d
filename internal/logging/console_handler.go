package logging

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2026-03-01 14:05:09 INFO importer: import finished batch_id=... inserted=3
//
// The component attribute becomes the line prefix. Attributes added through
// With are rendered once and reused for every record.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	component string
	group     string
	fields    []byte
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	line := make([]byte, 0, 128+len(h.fields))
	line = append(line, formatTimestamp(ts)...)
	line = append(line, ' ')
	line = append(line, levelLabel(record.Level)...)
	line = append(line, ' ')
	if h.component != "" {
		line = append(line, h.component...)
		line = append(line, ": "...)
	}
	line = append(line, record.Message...)
	line = append(line, h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		line = appendField(line, h.group, attr)
		return true
	})
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.fields = append([]byte(nil), h.fields...)
	for _, attr := range attrs {
		if attr.Key == FieldComponent && h.group == "" {
			clone.component = attrString(attr.Value)
			continue
		}
		clone.fields = appendField(clone.fields, h.group, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

// appendField renders attr as " key=value"; group members get dotted keys.
func appendField(dst []byte, group string, attr slog.Attr) []byte {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			group += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			dst = appendField(dst, group, member)
		}
		return dst
	}
	dst = append(dst, ' ')
	dst = append(dst, group...)
	dst = append(dst, attr.Key...)
	dst = append(dst, '=')
	return append(dst, formatValue(attr.Value)...)
}

package logsink

import (
	"context"
	"log/slog"
)

// SlogSink adapts Records onto a slog.Logger, letting the engine plug
// into whatever slog.Handler(s) the host application already has wired
// up (text, JSON, or several fanned out via MultiHandler).
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink wraps logger as a Sink.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Log(rec Record) {
	s.logger.LogAttrs(context.Background(), toSlogLevel(rec.Level), rec.Message,
		slog.String("file", rec.File),
		slog.Int("line", rec.Line),
		slog.String("func", rec.Func),
	)
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	case Error, Fatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MultiHandler fans out slog records to every wrapped handler — the same
// shape the teacher's internal/ui package exercises in its tests
// (handler is Enabled if any sub-handler would accept the record;
// WithAttrs/WithGroup apply to every sub-handler).
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler wraps handlers for fan-out.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}

package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// NewConditionalSourceHandler wraps a handler so that source locations are
// attached only for the given levels. Keeps routine info/debug lines compact
// while warnings and errors stay traceable.
//
// The wrapped handler must be built with AddSource: false; this wrapper
// injects the source attribute itself.
func NewConditionalSourceHandler(handler slog.Handler, levels ...slog.Level) slog.Handler {
	sourceLevels := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		sourceLevels[level] = true
	}
	return &conditionalSourceHandler{
		inner:        handler,
		sourceLevels: sourceLevels,
	}
}

type conditionalSourceHandler struct {
	inner        slog.Handler
	sourceLevels map[slog.Level]bool
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.sourceLevels[r.Level] {
		// Skip Handle itself plus the slog frontend frames
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frame, _ := runtime.CallersFrames(pcs[:]).Next()

		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}),
		})
	}

	return h.inner.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{
		inner:        h.inner.WithAttrs(attrs),
		sourceLevels: h.sourceLevels,
	}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{
		inner:        h.inner.WithGroup(name),
		sourceLevels: h.sourceLevels,
	}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTextLogger(buf *bytes.Buffer, sourceLevels ...slog.Level) *slog.Logger {
	base := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	})
	return slog.New(NewConditionalSourceHandler(base, sourceLevels...))
}

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*slog.Logger)
		wantSource bool
	}{
		{
			name:       "info omits source",
			log:        func(l *slog.Logger) { l.Info("message") },
			wantSource: false,
		},
		{
			name:       "debug omits source",
			log:        func(l *slog.Logger) { l.Debug("message") },
			wantSource: false,
		},
		{
			name:       "warn carries source",
			log:        func(l *slog.Logger) { l.Warn("message") },
			wantSource: true,
		},
		{
			name:       "error carries source",
			log:        func(l *slog.Logger) { l.Error("message") },
			wantSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newTextLogger(&buf, slog.LevelWarn, slog.LevelError))

			if tt.wantSource {
				assert.Contains(t, buf.String(), "source=")
			} else {
				assert.NotContains(t, buf.String(), "source=")
			}
		})
	}
}

func TestConditionalSourceHandlerPreservesAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTextLogger(&buf, slog.LevelError).With("device_id", "dev_abc")

	log.Info("ping stored")

	assert.Contains(t, buf.String(), "device_id=dev_abc")
	assert.NotContains(t, buf.String(), "source=")
}

func TestConditionalSourceHandlerPreservesGroups(t *testing.T) {
	var buf bytes.Buffer
	log := newTextLogger(&buf, slog.LevelError).WithGroup("request")

	log.Info("handled", "path", "/api/location-events")

	assert.Contains(t, buf.String(), "path")
	assert.NotContains(t, buf.String(), "source=")
}

func TestConditionalSourceHandlerEnabledDelegates(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	handler := NewConditionalSourceHandler(base, slog.LevelError)

	ctx := context.Background()
	assert.True(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelError))
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug))
}

// Package logger configures the process-wide slog logger: tinted console
// output for local development, JSON for aggregated environments, and source
// locations attached only where they pay for themselves.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"fieldpulse/internal/shared/config"
)

var (
	root      *slog.Logger
	rootLevel *slog.LevelVar
)

// Init builds the process logger from configuration. In debug server mode
// every record carries its source location; otherwise only warnings and
// errors do.
func Init(cfg *config.LoggerConfig, serverMode string) error {
	rootLevel = new(slog.LevelVar)
	rootLevel.Set(parseLevel(cfg.Level))

	writer, err := openWriter(cfg.OutputPath)
	if err != nil {
		return err
	}

	sourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if serverMode == "debug" {
		sourceLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	}

	var base slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		base = slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: rootLevel,
		})
	} else {
		base = tint.NewHandler(writer, &tint.Options{
			Level:       rootLevel,
			TimeFormat:  time.DateTime,
			NoColor:     !isTerminal(writer),
			ReplaceAttr: tintErrorAttr,
		})
	}

	root = slog.New(NewConditionalSourceHandler(base, sourceLevels...))
	slog.SetDefault(root)

	return nil
}

// Get returns the process logger, building a console fallback when Init has
// not run (tests, early startup failures).
func Get() *slog.Logger {
	if root == nil {
		base := tint.NewHandler(os.Stdout, &tint.Options{
			Level:       slog.LevelInfo,
			TimeFormat:  time.DateTime,
			NoColor:     !isTerminal(os.Stdout),
			ReplaceAttr: tintErrorAttr,
		})
		root = slog.New(NewConditionalSourceHandler(base, slog.LevelWarn, slog.LevelError))
		slog.SetDefault(root)
	}
	return root
}

// SetLevel adjusts the minimum level at runtime.
func SetLevel(level slog.Level) {
	if rootLevel != nil {
		rootLevel.Set(level)
	}
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriter(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
}

// tintErrorAttr renders error values through tint so they stand out in
// console output.
func tintErrorAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

package logger

import "log/slog"

// Interface is the structured logger injected into use cases, repositories,
// and handlers. The w-suffixed methods take alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// NewLogger returns an Interface backed by the process-wide slog logger.
func NewLogger() Interface {
	return slogAdapter{s: Get()}
}

type slogAdapter struct {
	s *slog.Logger
}

func (a slogAdapter) Debug(msg string, args ...any) { a.s.Debug(msg, args...) }
func (a slogAdapter) Info(msg string, args ...any)  { a.s.Info(msg, args...) }
func (a slogAdapter) Warn(msg string, args ...any)  { a.s.Warn(msg, args...) }
func (a slogAdapter) Error(msg string, args ...any) { a.s.Error(msg, args...) }

func (a slogAdapter) With(args ...any) Interface {
	return slogAdapter{s: a.s.With(args...)}
}

func (a slogAdapter) Named(name string) Interface {
	return slogAdapter{s: a.s.With("logger", name)}
}

func (a slogAdapter) Debugw(msg string, keysAndValues ...any) { a.s.Debug(msg, keysAndValues...) }
func (a slogAdapter) Infow(msg string, keysAndValues ...any)  { a.s.Info(msg, keysAndValues...) }
func (a slogAdapter) Warnw(msg string, keysAndValues ...any)  { a.s.Warn(msg, keysAndValues...) }
func (a slogAdapter) Errorw(msg string, keysAndValues ...any) { a.s.Error(msg, keysAndValues...) }

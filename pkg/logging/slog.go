package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SlogLogger implements Logger on a slog handler.
type SlogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

type slogConfig struct {
	level slog.Level
	out   io.Writer
	json  bool
}

// LoggerOption configures NewSlogLogger.
type LoggerOption func(*slogConfig)

// WithLevel drops records below level.
func WithLevel(level slog.Level) LoggerOption {
	return func(c *slogConfig) { c.level = level }
}

// WithOutput sets the destination. Defaults to stderr.
func WithOutput(w io.Writer) LoggerOption {
	return func(c *slogConfig) { c.out = w }
}

// WithJSON switches from logfmt-style text to JSON lines.
func WithJSON() LoggerOption {
	return func(c *slogConfig) { c.json = true }
}

// NewSlogLogger creates a text logger at info level unless configured
// otherwise.
func NewSlogLogger(opts ...LoggerOption) *SlogLogger {
	cfg := slogConfig{level: slog.LevelInfo, out: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler = slog.NewTextHandler(cfg.out, hopts)
	if cfg.json {
		h = slog.NewJSONHandler(cfg.out, hopts)
	}
	return &SlogLogger{logger: slog.New(h), ctx: context.Background()}
}

func (l *SlogLogger) log(level slog.Level, msg string, fields []Field) {
	if !l.logger.Enabled(l.ctx, level) {
		return
	}
	l.logger.LogAttrs(l.ctx, level, msg, attrs(fields)...)
}

func (l *SlogLogger) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }
func (l *SlogLogger) Info(msg string, fields ...Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l *SlogLogger) Warn(msg string, fields ...Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l *SlogLogger) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

// With returns a logger that adds fields to every record.
func (l *SlogLogger) With(fields ...Field) Logger {
	a := attrs(fields)
	args := make([]any, len(a))
	for i := range a {
		args[i] = a[i]
	}
	return &SlogLogger{logger: l.logger.With(args...), ctx: l.ctx}
}

// WithContext returns a logger passing ctx to the handler.
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	return &SlogLogger{logger: l.logger, ctx: ctx}
}

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, len(fields))
	for i, f := range fields {
		out[i] = slog.Any(f.Key, f.Value)
	}
	return out
}

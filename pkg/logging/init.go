package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options describe the process the logger belongs to.
type Options struct {
	App     string
	Version string
}

// Init builds a logger from cfg (merged over DefaultConfig and the
// environment), installs it as the slog default and returns it together
// with a function that closes the underlying sink.
func Init(cfg Config, opts Options) (*slog.Logger, func() error, error) {
	if opts.App == "" {
		opts.App = "webdesk"
	}
	cfg = DefaultConfig().Merge(cfg).WithEnv()

	logger, closeFn, err := New(cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// New builds a logger from cfg without touching the slog default.
func New(cfg Config, opts Options) (*slog.Logger, func() error, error) {
	sink := Sink(lower(cfg.Sink, string(SinkStderr)))
	format := Format(lower(cfg.Format, string(FormatText)))

	writer, closeFn, err := resolveWriter(cfg, sink)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     ParseLevel(lower(cfg.Level, "info")),
		AddSource: cfg.AddSource != nil && *cfg.AddSource,
	}
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		closeFn()
		return nil, nil, fmt.Errorf("logging: unknown format %q", format)
	}

	logger := slog.New(handler).With(slog.String("app", opts.App))
	if opts.Version != "" {
		logger = logger.With(slog.String("version", opts.Version))
	}
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resolveWriter(cfg Config, sink Sink) (io.Writer, func() error, error) {
	switch sink {
	case SinkNone:
		return io.Discard, func() error { return nil }, nil
	case SinkStderr:
		return os.Stderr, func() error { return nil }, nil
	case SinkFile:
		path := DefaultFile
		if cfg.File != nil && strings.TrimSpace(*cfg.File) != "" {
			path = strings.TrimSpace(*cfg.File)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    derefInt(cfg.MaxSizeMB, 20),
			MaxBackups: derefInt(cfg.MaxBackups, 5),
			MaxAge:     derefInt(cfg.MaxAgeDays, 7),
			Compress:   cfg.Compress == nil || *cfg.Compress,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}
}

func lower(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.ToLower(strings.TrimSpace(*v))
}

func derefInt(v *int, fallback int) int {
	if v == nil || *v < 0 {
		return fallback
	}
	return *v
}

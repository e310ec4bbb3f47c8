package logging

import (
	"os"
	"strconv"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Sink selects where log records are written.
type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Environment variables that override the configured values.
const (
	EnvLogLevel      = "WEBDESK_LOG_LEVEL"
	EnvLogFormat     = "WEBDESK_LOG_FORMAT"
	EnvLogSink       = "WEBDESK_LOG_SINK"
	EnvLogFile       = "WEBDESK_LOG_FILE"
	EnvLogAddSource  = "WEBDESK_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = "WEBDESK_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "WEBDESK_LOG_MAX_BACKUPS"
)

// DefaultFile is the log file used by the file sink when none is configured.
const DefaultFile = "webdesk.log"

// Config describes the logger. Nil fields fall back to defaults so a
// partially filled config file can be merged over DefaultConfig.
type Config struct {
	Level     *string `yaml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

// DefaultConfig returns the logger settings used when nothing is configured.
func DefaultConfig() Config {
	level := "info"
	format := string(FormatText)
	sink := string(SinkStderr)
	addSource := false
	maxSizeMB := 20
	maxBackups := 5
	maxAgeDays := 7
	compress := true

	return Config{
		Level:      &level,
		Format:     &format,
		Sink:       &sink,
		AddSource:  &addSource,
		MaxSizeMB:  &maxSizeMB,
		MaxBackups: &maxBackups,
		MaxAgeDays: &maxAgeDays,
		Compress:   &compress,
	}
}

// Merge returns c with every non-nil field of override applied.
func (c Config) Merge(override Config) Config {
	out := c
	if override.Level != nil {
		out.Level = override.Level
	}
	if override.Format != nil {
		out.Format = override.Format
	}
	if override.Sink != nil {
		out.Sink = override.Sink
	}
	if override.File != nil {
		out.File = override.File
	}
	if override.AddSource != nil {
		out.AddSource = override.AddSource
	}
	if override.MaxSizeMB != nil {
		out.MaxSizeMB = override.MaxSizeMB
	}
	if override.MaxBackups != nil {
		out.MaxBackups = override.MaxBackups
	}
	if override.MaxAgeDays != nil {
		out.MaxAgeDays = override.MaxAgeDays
	}
	if override.Compress != nil {
		out.Compress = override.Compress
	}
	return out
}

// WithEnv applies the WEBDESK_LOG_* environment overrides.
func (c Config) WithEnv() Config {
	applyString := func(dst **string, env string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = &v
		}
	}
	applyInt := func(dst **int, env string) {
		n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(env)))
		if err != nil {
			return
		}
		*dst = &n
	}

	applyString(&c.Level, EnvLogLevel)
	applyString(&c.Format, EnvLogFormat)
	applyString(&c.Sink, EnvLogSink)
	applyString(&c.File, EnvLogFile)
	applyInt(&c.MaxSizeMB, EnvLogMaxSizeMB)
	applyInt(&c.MaxBackups, EnvLogMaxBackups)
	if raw := strings.TrimSpace(os.Getenv(EnvLogAddSource)); raw != "" {
		v := isEnabled(raw)
		c.AddSource = &v
	}
	return c
}

func isEnabled(raw string) bool {
	switch strings.ToLower(raw) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

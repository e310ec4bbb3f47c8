// Package config loads the webdesk configuration file.
//
// The file is YAML with three sections:
//
//	server:
//	  addr: ":8080"
//	  shutdown_timeout: 10s
//	desktop:
//	  reserved_top: 48
//	  default_size: {width: 600, height: 325}
//	  position_debounce: 100ms
//	log:
//	  level: debug
//
// Missing values take their defaults. WEBDESK_ADDR and WEBDESK_STATIC
// override the server address and static directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"webdesk/pkg/logging"
	"webdesk/pkg/wm"
)

// Environment variables that override the file.
const (
	EnvAddr   = "WEBDESK_ADDR"
	EnvStatic = "WEBDESK_STATIC"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Server  Server         `yaml:"server"`
	Desktop Desktop        `yaml:"desktop"`
	Log     logging.Config `yaml:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `yaml:"addr"`
	StaticDir       string        `yaml:"static_dir,omitempty"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// AllowedOrigins lists origins allowed to open the websocket. Empty
	// means same origin only; "*" allows any.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	// CertFile and KeyFile enable HTTPS when both are set.
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
}

// Desktop configures the window manager of every session.
type Desktop struct {
	ReservedTop      *int          `yaml:"reserved_top"`
	DefaultSize      wm.Size       `yaml:"default_size"`
	MinSize          wm.Size       `yaml:"min_size"`
	MaxSize          wm.Size       `yaml:"max_size"`
	PositionDebounce time.Duration `yaml:"position_debounce"`
	SizeDebounce     time.Duration `yaml:"size_debounce"`
	CloseSettle      time.Duration `yaml:"close_settle"`
	Icons            []wm.Icon     `yaml:"icons"`
}

// Top returns the height of the reserved top strip. Zero is a valid
// height; only a missing value falls back to the default.
func (d Desktop) Top() int {
	if d.ReservedTop == nil {
		return wm.DefaultReservedTop
	}
	return *d.ReservedTop
}

// Bounds returns the configured size bounds.
func (d Desktop) Bounds() wm.SizeBounds {
	return wm.SizeBounds{Min: d.MinSize, Max: d.MaxSize}
}

// Timings returns the configured delays.
func (d Desktop) Timings() wm.Timings {
	return wm.Timings{
		PositionDebounce: d.PositionDebounce,
		SizeDebounce:     d.SizeDebounce,
		CloseSettle:      d.CloseSettle,
	}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	t := wm.DefaultTimings()
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Desktop: Desktop{
			ReservedTop:      intPtr(wm.DefaultReservedTop),
			DefaultSize:      wm.DefaultSize,
			MinSize:          wm.MinSize,
			MaxSize:          wm.MaxSize,
			PositionDebounce: t.PositionDebounce,
			SizeDebounce:     t.SizeDebounce,
			CloseSettle:      t.CloseSettle,
			Icons:            wm.DefaultIcons(),
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg = cfg.WithEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.merge(file)
	return cfg, nil
}

func (c *Config) merge(f Config) {
	s := &c.Server
	setString(&s.Addr, f.Server.Addr)
	setString(&s.StaticDir, f.Server.StaticDir)
	setDuration(&s.ReadTimeout, f.Server.ReadTimeout)
	setDuration(&s.WriteTimeout, f.Server.WriteTimeout)
	setDuration(&s.IdleTimeout, f.Server.IdleTimeout)
	setDuration(&s.ShutdownTimeout, f.Server.ShutdownTimeout)
	setString(&s.CertFile, f.Server.CertFile)
	setString(&s.KeyFile, f.Server.KeyFile)
	if len(f.Server.AllowedOrigins) > 0 {
		s.AllowedOrigins = f.Server.AllowedOrigins
	}

	d := &c.Desktop
	if f.Desktop.ReservedTop != nil {
		d.ReservedTop = intPtr(*f.Desktop.ReservedTop)
	}
	setSize(&d.DefaultSize, f.Desktop.DefaultSize)
	setSize(&d.MinSize, f.Desktop.MinSize)
	setSize(&d.MaxSize, f.Desktop.MaxSize)
	setDuration(&d.PositionDebounce, f.Desktop.PositionDebounce)
	setDuration(&d.SizeDebounce, f.Desktop.SizeDebounce)
	setDuration(&d.CloseSettle, f.Desktop.CloseSettle)
	if f.Desktop.Icons != nil {
		d.Icons = f.Desktop.Icons
	}

	c.Log = c.Log.Merge(f.Log)
}

// WithEnv applies WEBDESK_ADDR and WEBDESK_STATIC.
func (c Config) WithEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStatic)); v != "" {
		c.Server.StaticDir = v
	}
	return c
}

// Validate reports inconsistent values. Every error wraps ErrInvalid.
func (c Config) Validate() error {
	d := c.Desktop
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	case (c.Server.CertFile == "") != (c.Server.KeyFile == ""):
		return fmt.Errorf("%w: server.cert_file and server.key_file must be set together", ErrInvalid)
	case d.Top() < 0:
		return fmt.Errorf("%w: desktop.reserved_top is negative", ErrInvalid)
	case d.MinSize.Width <= 0 || d.MinSize.Height <= 0:
		return fmt.Errorf("%w: desktop.min_size must be positive", ErrInvalid)
	case d.MinSize.Width > d.MaxSize.Width || d.MinSize.Height > d.MaxSize.Height:
		return fmt.Errorf("%w: desktop.min_size exceeds desktop.max_size", ErrInvalid)
	case d.DefaultSize.Width <= 0 || d.DefaultSize.Height <= 0:
		return fmt.Errorf("%w: desktop.default_size must be positive", ErrInvalid)
	case d.PositionDebounce < 0 || d.SizeDebounce < 0 || d.CloseSettle < 0:
		return fmt.Errorf("%w: desktop delays must not be negative", ErrInvalid)
	}

	seen := make(map[string]bool, len(d.Icons))
	for _, ic := range d.Icons {
		if ic.ID == "" || ic.Window == "" {
			return fmt.Errorf("%w: icon needs an id and a window", ErrInvalid)
		}
		if seen[ic.ID] {
			return fmt.Errorf("%w: duplicate icon %q", ErrInvalid, ic.ID)
		}
		seen[ic.ID] = true
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

func setSize(dst *wm.Size, v wm.Size) {
	if v != (wm.Size{}) {
		*dst = v
	}
}

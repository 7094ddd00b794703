// Package config loads roicalc settings from defaults, an optional YAML
// file, ROICALC_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/recorder"
)

// EnvPrefix prefixes environment overrides, e.g. ROICALC_SERVER_ADDRESS.
const EnvPrefix = "ROICALC"

// DefaultFile is read when no --config is given and it exists.
const DefaultFile = "roicalc.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Recorder RecorderConfig `mapstructure:"recorder" yaml:"recorder"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`

	// Theme is the skin served when the URL does not pick one.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// ServerConfig configures the HTTP and WebSocket server.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`

	// Timeouts names a preset: default, strict or relaxed. The explicit
	// durations below override it when non-zero.
	Timeouts        string        `mapstructure:"timeouts" yaml:"timeouts"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	AllowedOrigins  []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	InsecureDevMode bool     `mapstructure:"insecure_dev_mode" yaml:"insecure_dev_mode"`

	// Codec is the default wire codec, json or msgpack.
	Codec string `mapstructure:"codec" yaml:"codec"`

	MaxSessions int  `mapstructure:"max_sessions" yaml:"max_sessions"`
	Metrics     bool `mapstructure:"metrics" yaml:"metrics"`

	// MaxConnsPerIP caps live connections per client address; 0 disables.
	MaxConnsPerIP int `mapstructure:"max_conns_per_ip" yaml:"max_conns_per_ip"`
	// RateLimit is requests per second per client address; 0 disables.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// RecorderConfig selects where submissions go.
type RecorderConfig struct {
	Kind       string        `mapstructure:"kind" yaml:"kind"`
	URL        string        `mapstructure:"url" yaml:"url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries    int           `mapstructure:"retries" yaml:"retries"`
	Delay      time.Duration `mapstructure:"delay" yaml:"delay"`
	FailRate   float64       `mapstructure:"fail_rate" yaml:"fail_rate"`
	Path       string        `mapstructure:"path" yaml:"path"`
	MirrorPath string        `mapstructure:"mirror_path" yaml:"mirror_path"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	rc := recorder.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Address:       ":8080",
			Timeouts:      PresetDefault,
			Codec:         "json",
			MaxSessions:   10000,
			Metrics:       true,
			MaxConnsPerIP: 20,
			RateLimit:     20,
			RateBurst:     40,
		},
		Recorder: RecorderConfig{
			Kind:       rc.Kind,
			Timeout:    rc.Timeout,
			Delay:      rc.Delay,
			Path:       rc.Path,
			MirrorPath: rc.MirrorPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		Theme: "corporate",
	}
}

// Load reads the configuration. path may be empty, in which case
// DefaultFile is used if present. flags maps configuration keys such as
// "server.address" to command-line flags; only flags the user set
// override the other sources.
func Load(path string, flags map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, f := range flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.timeouts", d.Server.Timeouts)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.insecure_dev_mode", d.Server.InsecureDevMode)
	v.SetDefault("server.codec", d.Server.Codec)
	v.SetDefault("server.max_sessions", d.Server.MaxSessions)
	v.SetDefault("server.metrics", d.Server.Metrics)
	v.SetDefault("server.max_conns_per_ip", d.Server.MaxConnsPerIP)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_burst", d.Server.RateBurst)

	v.SetDefault("recorder.kind", d.Recorder.Kind)
	v.SetDefault("recorder.url", d.Recorder.URL)
	v.SetDefault("recorder.timeout", d.Recorder.Timeout)
	v.SetDefault("recorder.retries", d.Recorder.Retries)
	v.SetDefault("recorder.delay", d.Recorder.Delay)
	v.SetDefault("recorder.fail_rate", d.Recorder.FailRate)
	v.SetDefault("recorder.path", d.Recorder.Path)
	v.SetDefault("recorder.mirror_path", d.Recorder.MirrorPath)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("theme", d.Theme)
}

var (
	recorderKinds = []string{recorder.KindSimulated, recorder.KindHTTP, recorder.KindJournal, recorder.KindSQLite, recorder.KindTee}
	codecs        = []string{"json", "msgpack"}
	themes        = []string{"corporate", "cyberpunk"}
	formats       = []string{logging.FormatText, logging.FormatJSON, logging.FormatZap}
)

// Validate checks the configuration for values the server cannot use.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Server.Address == "" {
		bad("server.address is empty")
	}
	if _, ok := presets[c.Server.Timeouts]; !ok {
		bad("server.timeouts %q is not one of default, strict, relaxed", c.Server.Timeouts)
	}
	if !slices.Contains(codecs, c.Server.Codec) {
		bad("server.codec %q is not one of %v", c.Server.Codec, codecs)
	}
	if c.Server.MaxSessions < 0 {
		bad("server.max_sessions must not be negative")
	}
	if c.Server.MaxConnsPerIP < 0 {
		bad("server.max_conns_per_ip must not be negative")
	}
	if c.Server.RateLimit < 0 {
		bad("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		bad("server.rate_burst must be at least 1 when rate_limit is set")
	}

	if !slices.Contains(recorderKinds, strings.ToLower(c.Recorder.Kind)) {
		bad("recorder.kind %q is not one of %v", c.Recorder.Kind, recorderKinds)
	}
	if strings.EqualFold(c.Recorder.Kind, recorder.KindHTTP) && c.Recorder.URL == "" {
		bad("recorder.url is required for the http recorder")
	}
	if c.Recorder.FailRate < 0 || c.Recorder.FailRate > 1 {
		bad("recorder.fail_rate %v is outside [0, 1]", c.Recorder.FailRate)
	}
	if c.Recorder.Retries < 0 {
		bad("recorder.retries must not be negative")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		bad("logging.level %q", c.Logging.Level)
	}
	if !slices.Contains(formats, strings.ToLower(c.Logging.Format)) {
		bad("logging.format %q is not one of %v", c.Logging.Format, formats)
	}

	if !slices.Contains(themes, c.Theme) {
		bad("theme %q is not one of %v", c.Theme, themes)
	}
	return errors.Join(errs...)
}

// RecorderBackend converts the recorder section for recorder.New.
func (c *Config) RecorderBackend() recorder.Config {
	r := c.Recorder
	return recorder.Config{
		Kind:       r.Kind,
		URL:        r.URL,
		Timeout:    r.Timeout,
		Retries:    r.Retries,
		Delay:      r.Delay,
		FailRate:   r.FailRate,
		Path:       r.Path,
		MirrorPath: r.MirrorPath,
	}
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes cfg to path, refusing to overwrite unless force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

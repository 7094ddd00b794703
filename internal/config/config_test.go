package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Address != ":8080" || cfg.Recorder.Kind != "simulated" || cfg.Theme != "corporate" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Recorder.Delay != 1500*time.Millisecond {
		t.Errorf("delay = %v", cfg.Recorder.Delay)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roicalc.yaml")
	os.WriteFile(path, []byte(`
server:
  address: ":9000"
  codec: msgpack
recorder:
  kind: journal
  path: /tmp/entries.db
  delay: 250ms
theme: cyberpunk
`), 0o644)

	t.Setenv("ROICALC_LOGGING_LEVEL", "debug")
	t.Setenv("ROICALC_RECORDER_RETRIES", "3")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", "", "")
	fs.String("theme", "", "")
	fs.Parse([]string{"--addr", ":7000"})

	cfg, err := Load(path, map[string]*pflag.Flag{
		"server.address": fs.Lookup("addr"),
		"theme":          fs.Lookup("theme"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Address != ":7000" {
		t.Errorf("flag should win: address = %q", cfg.Server.Address)
	}
	if cfg.Theme != "cyberpunk" {
		t.Errorf("unset flag should not override the file: theme = %q", cfg.Theme)
	}
	if cfg.Server.Codec != "msgpack" || cfg.Recorder.Kind != "journal" || cfg.Recorder.Delay != 250*time.Millisecond {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Recorder.Retries != 3 {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.Recorder.Timeout != 10*time.Second {
		t.Errorf("default not kept: timeout = %v", cfg.Recorder.Timeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected an error for a missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"http without url", func(c *Config) { c.Recorder.Kind = "http" }, "recorder.url"},
		{"unknown kind", func(c *Config) { c.Recorder.Kind = "fax" }, "recorder.kind"},
		{"fail rate", func(c *Config) { c.Recorder.FailRate = 1.5 }, "fail_rate"},
		{"codec", func(c *Config) { c.Server.Codec = "phoenix" }, "server.codec"},
		{"theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"preset", func(c *Config) { c.Server.Timeouts = "lazy" }, "server.timeouts"},
		{"conns per ip", func(c *Config) { c.Server.MaxConnsPerIP = -1 }, "max_conns_per_ip"},
		{"rate burst", func(c *Config) { c.Server.RateBurst = 0 }, "rate_burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestResolveTimeouts(t *testing.T) {
	s := Default().Server
	if got := s.ResolveTimeouts(); got != presets[PresetDefault] {
		t.Errorf("default preset = %+v", got)
	}

	s.Timeouts = PresetStrict
	s.ShutdownTimeout = 3 * time.Second
	got := s.ResolveTimeouts()
	if got.WebSocketRead != 30*time.Second || got.Shutdown != 3*time.Second {
		t.Errorf("strict with override = %+v", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Default()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "delay: 1.5s") {
		t.Errorf("durations should be written as strings:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "roicalc.yaml")
	if err := WriteFile(path, Default(), false); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, Default(), false); !errors.Is(err, os.ErrExist) {
		t.Errorf("second write without force = %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Recorder.Delay != 1500*time.Millisecond || cfg.Server.MaxSessions != 10000 {
		t.Errorf("round trip lost values: %+v", cfg)
	}
}

func TestRecorderBackend(t *testing.T) {
	cfg := Default()
	cfg.Recorder.Kind = "tee"
	cfg.Recorder.URL = "https://example.com/exec"

	rc := cfg.RecorderBackend()
	if rc.Kind != "tee" || rc.URL != "https://example.com/exec" || rc.MirrorPath != cfg.Recorder.MirrorPath {
		t.Errorf("RecorderBackend() = %+v", rc)
	}
}

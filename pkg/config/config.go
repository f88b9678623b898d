// Package config loads slice server settings from YAML and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/layout"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/validation"
)

// Environment variables that override file settings.
const (
	EnvAddr           = "SLICE_ADDR"
	EnvProvisionerURL = "SLICE_PROVISIONER_URL"
	EnvLogLevel       = "LOG_LEVEL"
	EnvSessionsMax    = "SLICE_SESSIONS_MAX"
	EnvCORSOrigins    = "SLICE_CORS_ORIGINS"
)

// Config is the full server configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Provisioner ProvisionerConfig `yaml:"provisioner"`
	Log         LogConfig         `yaml:"log"`
	Sessions    SessionsConfig    `yaml:"sessions"`
	Layout      layout.Config     `yaml:"layout"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// ProvisionerConfig points at the slice provisioning endpoint.
type ProvisionerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SessionsConfig bounds the session table.
type SessionsConfig struct {
	Max           int           `yaml:"max"`
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Provisioner: ProvisionerConfig{
			URL:     "http://localhost:5000/create_slice",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Sessions: SessionsConfig{
			Max:           256,
			IdleTTL:       30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Layout: layout.DefaultConfig(),
	}
}

// Load builds a configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides, and validates
// the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return cfg, err
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode overlays YAML from r onto cfg. Keys absent from the document keep
// their current values; unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv applies environment overrides using lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvProvisionerURL); ok && v != "" {
		cfg.Provisioner.URL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvSessionsMax); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSessionsMax, err)
		}
		cfg.Sessions.Max = n
	}
	if v, ok := lookup(EnvCORSOrigins); ok && v != "" {
		cfg.Server.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
			}
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Server.Addr", c.Server.Addr).
		MinDuration("Server.ReadTimeout", c.Server.ReadTimeout, time.Second).
		MinDuration("Server.WriteTimeout", c.Server.WriteTimeout, time.Second).
		MinDuration("Server.IdleTimeout", c.Server.IdleTimeout, time.Second).
		MinDuration("Server.ShutdownTimeout", c.Server.ShutdownTimeout, time.Second).
		NonNegative("Server.MaxBodyBytes", c.Server.MaxBodyBytes).
		HTTPURL("Provisioner.URL", c.Provisioner.URL).
		MinDuration("Provisioner.Timeout", c.Provisioner.Timeout, 100*time.Millisecond).
		OneOf("Log.Level", c.Log.Level, logging.LevelNames).
		Positive("Sessions.Max", c.Sessions.Max).
		When(c.Sessions.IdleTTL > 0, func(v *validation.ConfigValidator) {
			v.MinDuration("Sessions.SweepInterval", c.Sessions.SweepInterval, time.Second)
		}).
		Custom("Layout", func() error {
			if c.Layout.RingRadius <= 0 || c.Layout.StarRadius <= 0 || c.Layout.GridPitch <= 0 {
				return errors.New("radii and grid pitch must be positive")
			}
			return nil
		}).
		Validate()
}

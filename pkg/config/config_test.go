package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader(`
server:
  addr: ":9090"
  read_timeout: 5s
provisioner:
  url: https://prov.example.com/slices
sessions:
  idle_ttl: 10m
layout:
  ring_radius: 200
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, "https://prov.example.com/slices", cfg.Provisioner.URL)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.IdleTTL)
	assert.Equal(t, float64(200), cfg.Layout.RingRadius)
	assert.Equal(t, float64(150), cfg.Layout.StarRadius)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode(strings.NewReader("server:\n  port: 80\n"), &cfg)
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(strings.NewReader(""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, lookupFrom(map[string]string{
		EnvAddr:           ":7000",
		EnvProvisionerURL: "http://10.0.0.5:5000/create_slice",
		EnvLogLevel:       "debug",
		EnvSessionsMax:    "12",
		EnvCORSOrigins:    " http://editor.local , ,http://other.local",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "http://10.0.0.5:5000/create_slice", cfg.Provisioner.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Sessions.Max)
	assert.Equal(t, []string{"http://editor.local", "http://other.local"}, cfg.Server.CORSOrigins)

	err = ApplyEnv(&cfg, lookupFrom(map[string]string{EnvSessionsMax: "many"}))
	assert.ErrorContains(t, err, EnvSessionsMax)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Provisioner.URL = "not a url"
	cfg.Log.Level = "chatty"
	cfg.Sessions.Max = 0
	cfg.Layout.RingRadius = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"Server.Addr", "Provisioner.URL", "Log.Level", "Sessions.Max", "Layout"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestSweepIntervalOnlyCheckedWithTTL(t *testing.T) {
	cfg := Default()
	cfg.Sessions.IdleTTL = 0
	cfg.Sessions.SweepInterval = 0
	assert.NoError(t, cfg.Validate())

	cfg.Sessions.IdleTTL = time.Minute
	assert.Error(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

	t.Setenv(EnvAddr, ":6060")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":6060", cfg.Server.Addr)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Server.Addr)
}

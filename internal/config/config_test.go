package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTempConfigHome points XDG_CONFIG_HOME at a temp dir so tests never
// touch the real config file.
func setTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Registered before Setenv so it runs after the env is restored
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	setTempConfigHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Service)
	assert.Empty(t, cfg.Backend)
	assert.Empty(t, cfg.DefaultOutput)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	setTempConfigHome(t)

	cfg := &Config{
		Service:       "myapp",
		Backend:       "file",
		DefaultOutput: "json",
	}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetKnownKeys(t *testing.T) {
	cfg := &Config{Service: "myapp", Backend: "keyring"}

	tests := []struct {
		key      string
		expected string
	}{
		{key: "service", expected: "myapp"},
		{key: "backend", expected: "keyring"},
		{key: "default_output", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			value, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestGetUnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Get("region")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestSetAndUnset(t *testing.T) {
	setTempConfigHome(t)

	cfg := &Config{}
	require.NoError(t, cfg.Set("backend", "file"))
	assert.Equal(t, "file", cfg.Backend)

	// Set persisted to disk
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file", loaded.Backend)

	require.NoError(t, cfg.Unset("backend"))
	assert.Empty(t, cfg.Backend)
}

func TestSetUnknownKey(t *testing.T) {
	setTempConfigHome(t)

	cfg := &Config{}
	assert.Error(t, cfg.Set("nope", "value"))
	assert.Error(t, cfg.Unset("nope"))
}

func TestConfigPathUsesXDG(t *testing.T) {
	dir := setTempConfigHome(t)

	path := ConfigPath()
	assert.True(t, strings.HasPrefix(path, dir), "config path %q should live under %q", path, dir)
	assert.Equal(t, filepath.Join(dir, "creds", "config.json5"), path)
}

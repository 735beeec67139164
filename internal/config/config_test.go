package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 5002, cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.GenerationInterval)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.UsesDevSecret())
	assert.False(t, cfg.GitHubEnabled())
	assert.Equal(t, "http://localhost:5002/auth/github/callback", cfg.CallbackURL())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "yoda.yaml", "port: 7000\nstore: sqlite\ngeneration_interval: 30s\n")
	t.Setenv("PORT", "8000")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://yoda.example.com")

	cfg, err := Load(New(), "", path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 30*time.Second, cfg.GenerationInterval)
	assert.Equal(t, []string{"http://localhost:3000", "https://yoda.example.com"}, cfg.Origins())
}

func TestLoad_DotEnv(t *testing.T) {
	t.Cleanup(func() { os.Unsetenv("GITHUB_CLIENT_ID"); os.Unsetenv("GITHUB_CLIENT_SECRET") })
	envFile := writeFile(t, ".env", "GITHUB_CLIENT_ID=abc\nGITHUB_CLIENT_SECRET=shh\n")

	cfg, err := Load(New(), envFile, "")
	require.NoError(t, err)

	assert.True(t, cfg.GitHubEnabled())
	assert.Equal(t, "abc", cfg.GitHubClientID)
}

func TestLoad_MissingFiles(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.env"), "")
	require.NoError(t, err, "a missing .env is not an error")

	_, err = Load(New(), "", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "an explicit config file must exist")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port: 5002, JWTSecret: DevJWTSecret, GenerationInterval: time.Minute,
			Store: StoreMemory, LogLevel: "info", LogFormat: "text",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Port = 0 }, "port"},
		{"secret", func(c *Config) { c.JWTSecret = "short" }, "jwt_secret"},
		{"interval", func(c *Config) { c.GenerationInterval = 0 }, "generation_interval"},
		{"store", func(c *Config) { c.Store = "postgres" }, "store"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "json handler expected: %q", out)
	assert.Contains(t, out, "shown")
}

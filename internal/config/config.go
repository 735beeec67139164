// Package config loads server settings from defaults, a .env file, an optional
// YAML config file, environment variables and command-line flags, in rising
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret is used when JWT_SECRET is unset. Fine for a laptop, never for
// a deployment.
const DevJWTSecret = "your-yoda-dev-secret-change-me"

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds every server setting. Keys match the env var names lowercased.
type Config struct {
	Port               int           `mapstructure:"port"`
	JWTSecret          string        `mapstructure:"jwt_secret"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	GenerationInterval time.Duration `mapstructure:"generation_interval"`
	Store              string        `mapstructure:"store"`
	DBPath             string        `mapstructure:"db_path"`
	SeedDemo           bool          `mapstructure:"seed_demo"`
	AllowedOrigins     string        `mapstructure:"allowed_origins"` // comma separated
	GitHubClientID     string        `mapstructure:"github_client_id"`
	GitHubClientSecret string        `mapstructure:"github_client_secret"`
	GitHubCallbackURL  string        `mapstructure:"github_callback_url"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
	BcryptCost         int           `mapstructure:"bcrypt_cost"`
}

// New returns a viper instance with defaults set and env lookup enabled.
// Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", 5002)
	v.SetDefault("jwt_secret", DevJWTSecret)
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("generation_interval", time.Minute)
	v.SetDefault("store", StoreMemory)
	v.SetDefault("db_path", ":memory:")
	v.SetDefault("seed_demo", true)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("github_client_id", "")
	v.SetDefault("github_client_secret", "")
	v.SetDefault("github_callback_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("bcrypt_cost", 10)

	v.AutomaticEnv()
	return v
}

// Load reads envFile (skipped when missing) and configFile (skipped when
// empty) into v and returns the validated result. Variables already in the
// environment win over the .env file.
func Load(v *viper.Viper, envFile, configFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server can't start with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("config: jwt_secret must be at least 16 characters")
	}
	if c.GenerationInterval <= 0 {
		return errors.New("config: generation_interval must be positive")
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown store %q (want memory or sqlite)", c.Store)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Origins splits AllowedOrigins into a list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// GitHubEnabled reports whether GitHub sign-in is configured.
func (c *Config) GitHubEnabled() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// CallbackURL returns the GitHub callback, defaulting to this server.
func (c *Config) CallbackURL() string {
	if c.GitHubCallbackURL != "" {
		return c.GitHubCallbackURL
	}
	return fmt.Sprintf("http://localhost:%d/auth/github/callback", c.Port)
}

// UsesDevSecret reports whether the built-in development JWT secret is in use.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log_level %q", s)
	}
	return level, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Values come from defaults,
// then the optional YAML file, then environment variables.
type Config struct {
	Server struct {
		Addr            string `yaml:"addr" env:"ADDR"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Path          string `yaml:"path" env:"DB_PATH"`
		BusyTimeoutMS int    `yaml:"busy_timeout_ms" env:"DB_BUSY_TIMEOUT_MS"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"` // json | pretty
	} `yaml:"logging"`

	App struct {
		Timezone     string `yaml:"timezone" env:"APP_TIMEZONE"`
		MinBirthYear int    `yaml:"min_birth_year" env:"APP_MIN_BIRTH_YEAR"`
	} `yaml:"app"`

	Security struct {
		HashPasswords bool   `yaml:"hash_passwords" env:"HASH_PASSWORDS"`
		AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
	} `yaml:"security"`

	CORS struct {
		AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ORIGIN"` // comma separated
	} `yaml:"cors"`

	Notify struct {
		TelegramToken  string `yaml:"telegram_token" env:"TG_BOT_TOKEN"`
		TelegramChatID int64  `yaml:"telegram_chat_id" env:"TG_ADMIN_CHAT_ID"`
		DigestAt       string `yaml:"digest_at" env:"TG_DIGEST_AT"` // "HH:MM" in app.timezone, empty = off
	} `yaml:"notify"`
}

// Load reads .env (if present), the YAML file at path (if present) and the
// process environment, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // ok if missing

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ShutdownTimeout = "5s"

	cfg.Database.Path = "students.db"
	cfg.Database.BusyTimeoutMS = 5000

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "pretty"

	cfg.App.Timezone = "Local"
	cfg.App.MinBirthYear = 1960

	cfg.Security.HashPasswords = true
	cfg.Security.AdminPassword = "admin123" // change in production: export ADMIN_PASSWORD=...

	cfg.CORS.AllowedOrigins = "*"
	return cfg
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Database.BusyTimeoutMS < 0 {
		return fmt.Errorf("database busy timeout must not be negative")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}
	if c.App.MinBirthYear <= 0 || c.App.MinBirthYear > time.Now().Year() {
		return fmt.Errorf("min birth year out of range: %d", c.App.MinBirthYear)
	}
	if c.Notify.DigestAt != "" {
		if _, err := time.Parse("15:04", c.Notify.DigestAt); err != nil {
			return fmt.Errorf("invalid digest time %q: want HH:MM", c.Notify.DigestAt)
		}
	}
	switch c.Logging.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Location resolves App.Timezone. "Local" and "" map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	switch c.App.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// ShutdownAfter returns the parsed shutdown timeout.
func (c *Config) ShutdownAfter() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// DSN builds the SQLite DSN with the pragmas the store relies on.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
		c.Database.Path, c.Database.BusyTimeoutMS)
}

// Origins splits CORS.AllowedOrigins into a trimmed list.
func (c *Config) Origins() []string {
	var out []string
	for _, p := range strings.Split(c.CORS.AllowedOrigins, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}

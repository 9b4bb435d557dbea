package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/logging"
)

// Config holds runtime settings for the campaignkeeper CLI.
//
// Fields:
//   - ServerBaseURL: origin of the campaign API; fixed for the process.
//   - CredentialsDSN: SQLite database keeping the persisted session.
//   - CredentialsKey: optional passphrase; when set, stored credentials are
//     encrypted with it. Read from the environment only.
//   - RequestTimeout: upper bound for one API call.
//   - LogLevel, LogFormat: slog level (debug|info|warn|error) and handler
//     (text|json).
type Config struct {
	ServerBaseURL  string        `env:"SERVER_URL"`
	CredentialsDSN string        `env:"CREDENTIALS_DSN"`
	CredentialsKey string        `env:"CREDENTIALS_KEY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.CredentialsDSN = "campaignkeeper.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q: want http(s)://host[:port]", c.ServerBaseURL)
	}
	if c.CredentialsDSN == "" {
		return fmt.Errorf("credentials dsn is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting for the bot. All values come from
// the environment; a .env file in the working directory is honoured when
// present.
type Config struct {
	DiscordToken  string        `env:"DISCORD_TOKEN,required,notEmpty"`
	AdminID       string        `env:"ADMIN_ID,required,notEmpty"`
	DatabaseDSN   string        `env:"DATABASE_DSN,required,notEmpty"`
	CheckInterval time.Duration `env:"CHECK_INTERVAL"                  envDefault:"60s"`
	WatchURLs     []string      `env:"WATCH_URLS,required"             envSeparator:","`
}

// Load reads the environment (and an optional .env file) into a validated
// Config.
func Load() (Config, error) {
	// Missing .env files are fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the parts of the configuration that struct tags cannot
// express.
func (c Config) Validate() error {
	if c.CheckInterval <= 0 {
		return fmt.Errorf("CHECK_INTERVAL must be a positive duration, got %s", c.CheckInterval)
	}

	urls := c.URLs()
	if len(urls) == 0 {
		return fmt.Errorf("WATCH_URLS must contain at least one URL")
	}

	for _, raw := range urls {
		parsed, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("WATCH_URLS entry %q is not a valid URL: %w", raw, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("WATCH_URLS entry %q must use http or https", raw)
		}
		if parsed.Host == "" {
			return fmt.Errorf("WATCH_URLS entry %q is missing a host", raw)
		}
	}

	return nil
}

// URLs returns the monitored URLs with surrounding whitespace stripped and
// empty entries removed.
func (c Config) URLs() []string {
	urls := make([]string, 0, len(c.WatchURLs))
	for _, raw := range c.WatchURLs {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		urls = append(urls, trimmed)
	}
	return urls
}

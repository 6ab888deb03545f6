package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewatch/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("ADMIN_ID", "123456789012345678")
	t.Setenv("DATABASE_DSN", "sqlite://sitewatch.db")
	t.Setenv("WATCH_URLS", "https://example.com,https://example.org/health")
}

func Test_Load(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "123456789012345678", cfg.AdminID)
	assert.Equal(t, "sqlite://sitewatch.db", cfg.DatabaseDSN)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Equal(t, []string{"https://example.com", "https://example.org/health"}, cfg.URLs())
}

func Test_Load_CustomInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CHECK_INTERVAL", "5s")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.CheckInterval)
}

func Test_Load_MissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DISCORD_TOKEN", "")

	_, err := config.Load()

	assert.Error(t, err)
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*config.Config) {},
		},
		{
			name: "zero interval",
			mutate: func(c *config.Config) {
				c.CheckInterval = 0
			},
			wantErr: true,
		},
		{
			name: "only blank urls",
			mutate: func(c *config.Config) {
				c.WatchURLs = []string{"", "   "}
			},
			wantErr: true,
		},
		{
			name: "unsupported scheme",
			mutate: func(c *config.Config) {
				c.WatchURLs = []string{"ftp://example.com"}
			},
			wantErr: true,
		},
		{
			name: "missing host",
			mutate: func(c *config.Config) {
				c.WatchURLs = []string{"https://"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{
				DiscordToken:  "token",
				AdminID:       "1",
				DatabaseDSN:   "sqlite://sitewatch.db",
				CheckInterval: time.Minute,
				WatchURLs:     []string{"https://example.com"},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_URLs_TrimsWhitespace(t *testing.T) {
	cfg := config.Config{WatchURLs: []string{" https://example.com ", "", "https://example.org"}}

	assert.Equal(t, []string{"https://example.com", "https://example.org"}, cfg.URLs())
}

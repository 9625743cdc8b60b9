package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tamilnews/internal/enrich"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFeedURL, cfg.App.FeedURL)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"address": ":9090"},
		"app": {"refresh_interval": "1m", "timezone": "Asia/Kolkata"},
		"publishers": {"unknown_logo": "http://logo/u", "list": [{"name": "A", "logo": "http://logo/a"}]}
	}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, time.Minute, cfg.RefreshEvery())
	assert.Equal(t, 30*time.Second, cfg.FetchTimeoutDuration())
	assert.Equal(t, DefaultFeedURL, cfg.App.FeedURL)
	require.NoError(t, cfg.Validate())

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, catalog.Names())
	assert.Equal(t, "http://logo/u", catalog.Logo(enrich.UnknownPublisher))
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server": `)
	cfg, err := Load(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"bad feed url", func(c *Config) { c.App.FeedURL = "not a url" }, "invalid app.feed_url"},
		{"bad interval", func(c *Config) { c.App.RefreshInterval = "soon" }, "invalid app.refresh_interval"},
		{"zero timeout", func(c *Config) { c.App.FetchTimeout = "0s" }, "app.fetch_timeout must be positive"},
		{"bad timezone", func(c *Config) { c.App.Timezone = "Mars/Olympus" }, "invalid app.timezone"},
		{"bad limit", func(c *Config) { c.App.DefaultNewsLimit = 0 }, "default_news_limit"},
		{"bad catalog", func(c *Config) { c.Publishers.UnknownLogo = "" }, "invalid publishers"},
		{"db without user", func(c *Config) { c.Database.Host = "localhost" }, "database username"},
		{"db without password", func(c *Config) {
			c.Database.Host = "localhost"
			c.Database.Username = "news"
		}, "database password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TAMILNEWS_FEED_URL", "http://localhost/rss")
	t.Setenv("TAMILNEWS_LOG_LEVEL", "debug")
	t.Setenv("TAMILNEWS_DB_HOST", "db")
	t.Setenv("TAMILNEWS_DB_PORT", "6543")

	cfg := New()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "http://localhost/rss", cfg.App.FeedURL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv("TAMILNEWS_DB_PORT", "abc")
	assert.Error(t, New().ApplyEnv())
}

func TestLoadEnvFile(t *testing.T) {
	os.Unsetenv("TAMILNEWS_TIMEZONE")
	t.Cleanup(func() { os.Unsetenv("TAMILNEWS_TIMEZONE") })
	path := writeFile(t, ".env", "TAMILNEWS_TIMEZONE=Asia/Kolkata\n")

	require.NoError(t, LoadEnvFile(path))
	cfg := New()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 5432, Username: "u", Password: "p@ss", DBName: "news", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@h:5432/news?sslmode=disable", db.DSN())
}

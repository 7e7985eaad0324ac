package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappin-app/mappin/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("MAPPIN_TEST_KEY", "secret-key")
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
  base_url: "https://map.example.com/"
  trigger_cooldown: 5m

ingest:
  strategy: llm
  mode: alien
  batch_size: 3
  max_items_per_feed: 7
  inter_item_delay: 2s

llm:
  api_key: ${MAPPIN_TEST_KEY}
  model: test-model
  retries: 2

feeds:
  - url: https://example.com/feed1.xml
    name: Feed1
    region: Lebanon
  - url: https://example.com/feed2.xml
    name: Feed2
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://map.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 5*time.Minute, cfg.Server.TriggerCooldown)

		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
		assert.Equal(t, "test-model", cfg.LLM.Model)
		assert.Equal(t, 2, cfg.LLM.Retries)

		assert.Equal(t, "alien", cfg.Ingest.Mode)
		assert.Equal(t, domain.BatchOptions{BatchSize: 3, MaxItemsPerFeed: 7, InterItemDelay: 2 * time.Second}, cfg.BatchOptions())

		require.Len(t, cfg.Feeds, 2)
		assert.Equal(t, []domain.Feed{
			{URL: "https://example.com/feed1.xml", Name: "Feed1", Region: "Lebanon"},
			{URL: "https://example.com/feed2.xml", Name: "Feed2"},
		}, cfg.DomainFeeds())
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, `
ingest:
  strategy: keyword
feeds:
  - url: https://example.com/feed.xml
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 10*time.Minute, cfg.Server.TriggerCooldown)
		assert.Contains(t, cfg.Database.DSN, "mappin.db")
		assert.True(t, cfg.Schedule.Enabled)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.Interval)

		assert.Equal(t, "news", cfg.Ingest.Mode)
		assert.Equal(t, "normalized", cfg.Ingest.Dedup)
		assert.Equal(t, 5, cfg.Ingest.BatchSize)
		assert.Equal(t, 10, cfg.Ingest.MaxItemsPerFeed)
		assert.Equal(t, 4*time.Second, cfg.Ingest.InterItemDelay)

		assert.Equal(t, 3, cfg.LLM.Retries)
		assert.Equal(t, 5*time.Second, cfg.LLM.RetryDelay)
		assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
		assert.True(t, cfg.Extraction.Enabled)
		assert.Equal(t, "mappin", cfg.Publish.Exchange)

		require.Len(t, cfg.Feeds, 1)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Feeds[0].Name) // name defaults to URL
	})

	t.Run("schedule disabled", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ingest:\n  strategy: keyword\nschedule:\n  enabled: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Schedule.Enabled)
	})

	t.Run("zero delay and retries kept", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ingest:\n  strategy: keyword\n  inter_item_delay: 0s\nllm:\n  retries: 0\n"))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), cfg.Ingest.InterItemDelay)
		assert.Equal(t, 0, cfg.LLM.Retries)
		assert.Equal(t, time.Duration(0), cfg.BatchOptions().InterItemDelay)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("llm strategy without key", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "ingest:\n  strategy: llm\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "llm.api_key is required")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Ingest.Strategy = "keyword"
		setDefaults(cfg)
		return cfg
	}

	require.NoError(t, validate(valid()))

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"bad strategy", func(c *Config) { c.Ingest.Strategy = "magic" }, "ingest.strategy"},
		{"bad mode", func(c *Config) { c.Ingest.Mode = "sports" }, "ingest.mode"},
		{"bad dedup", func(c *Config) { c.Ingest.Dedup = "fuzzy" }, "ingest.dedup"},
		{"zero batch", func(c *Config) { c.Ingest.BatchSize = -1 }, "ingest.batch_size"},
		{"zero items", func(c *Config) { c.Ingest.MaxItemsPerFeed = -1 }, "ingest.max_items_per_feed"},
		{"negative delay", func(c *Config) { c.Ingest.InterItemDelay = -time.Second }, "inter_item_delay"},
		{"temperature", func(c *Config) { c.LLM.Temperature = 3 }, "llm.temperature"},
		{"retries", func(c *Config) { c.LLM.Retries = -1 }, "llm.retries"},
		{"server timeout", func(c *Config) { c.Server.Timeout = time.Millisecond }, "server timeout"},
		{"feed without url", func(c *Config) { c.Feeds = []Feed{{Name: "x"}} }, "feeds[0].url is required"},
		{"duplicate feed", func(c *Config) {
			c.Feeds = []Feed{{URL: "https://a.example/rss"}, {URL: "https://a.example/rss"}}
		}, "duplicate url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":3000"
	cfg.Server.Timeout = 60 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":3000", listen)
	assert.Equal(t, 60*time.Second, timeout)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mappin-app/mappin/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen          string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL         string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
		TriggerCooldown time.Duration `yaml:"trigger_cooldown" json:"trigger_cooldown" jsonschema:"default=10m,description=Minimum time between on-demand batch runs"`
		AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins" jsonschema:"description=Browser origins allowed for the API and the live websocket (* allows any)"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:mappin.db?cache=shared&mode=rwc&_txlock=immediate&_time_format=sqlite,description=Database connection string (sqlite file or postgres URL)"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Run ingestion batches periodically"`
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Interval between scheduled batches"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Ingest IngestConfig `yaml:"ingest" json:"ingest" jsonschema:"description=Ingestion batch settings"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for event extraction and analysis"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article content extraction configuration"`

	Publish PublishConfig `yaml:"publish" json:"publish" jsonschema:"description=Event publishing configuration"`

	Feeds []Feed `yaml:"feeds" json:"feeds" jsonschema:"description=Curated list of feeds to ingest"`
}

// Feed is a configured feed source
type Feed struct {
	URL    string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Name   string `yaml:"name" json:"name" jsonschema:"description=Feed name (defaults to URL)"`
	Region string `yaml:"region" json:"region" jsonschema:"description=Region or country the feed covers, used as a location hint"`
}

// IngestConfig holds batch settings
type IngestConfig struct {
	Strategy        string        `yaml:"strategy" json:"strategy" jsonschema:"default=llm,enum=llm,enum=keyword,description=Primary extraction strategy"`
	Mode            string        `yaml:"mode" json:"mode" jsonschema:"default=news,enum=news,enum=alien,description=Category taxonomy"`
	Dedup           string        `yaml:"dedup" json:"dedup" jsonschema:"default=normalized,enum=exact,enum=normalized,description=Duplicate key strategy"`
	BatchSize       int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=5,minimum=1,description=Number of feeds sampled per batch"`
	MaxItemsPerFeed int           `yaml:"max_items_per_feed" json:"max_items_per_feed" jsonschema:"default=10,minimum=1,description=Maximum items taken from each feed"`
	InterItemDelay  time.Duration `yaml:"inter_item_delay" json:"inter_item_delay" jsonschema:"default=4s,description=Minimum spacing between extraction calls"`
	DroppedTTL      time.Duration `yaml:"dropped_ttl" json:"dropped_ttl" jsonschema:"default=6h,description=How long rejected links are remembered in memory"`
}

// LLMConfig holds LLM configuration
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://generativelanguage.googleapis.com/v1beta/openai,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gemini-2.0-flash,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UseJSONMode bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
	Retries     int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=0,description=Retries on rate limit responses"`
	RetryDelay  time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=5s,description=Base delay of the linear rate limit backoff"`
}

// ExtractionConfig holds article content extraction settings, used by on-demand analysis
type ExtractionConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Fetch article text for analysis"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed and article fetch timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	MaxChars  int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=4000,description=Maximum article characters passed to the LLM"`
}

// PublishConfig holds RabbitMQ settings, publishing is off when URL is empty
type PublishConfig struct {
	URL        string `yaml:"url" json:"url" jsonschema:"description=AMQP URL (can use environment variable)"`
	Exchange   string `yaml:"exchange" json:"exchange" jsonschema:"default=mappin,description=Direct exchange name"`
	RoutingKey string `yaml:"routing_key" json:"routing_key" jsonschema:"default=conflicts,description=Routing key for created events"`
}

// Load reads configuration from a YAML file. A .env file next to the working
// directory is loaded first so ${VAR} references can use it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// fields where zero is a valid setting get their defaults before parsing
	var cfg Config
	cfg.Schedule.Enabled = true
	cfg.Extraction.Enabled = true
	cfg.Ingest.InterItemDelay = 4 * time.Second
	cfg.LLM.Retries = 3
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")
	if cfg.Server.TriggerCooldown == 0 {
		cfg.Server.TriggerCooldown = 10 * time.Minute
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:mappin.db?cache=shared&mode=rwc&_txlock=immediate&_time_format=sqlite"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 30 * time.Minute
	}

	// ingest
	if cfg.Ingest.Strategy == "" {
		cfg.Ingest.Strategy = "llm"
	}
	if cfg.Ingest.Mode == "" {
		cfg.Ingest.Mode = "news"
	}
	if cfg.Ingest.Dedup == "" {
		cfg.Ingest.Dedup = "normalized"
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 5
	}
	if cfg.Ingest.MaxItemsPerFeed == 0 {
		cfg.Ingest.MaxItemsPerFeed = 10
	}
	if cfg.Ingest.DroppedTTL == 0 {
		cfg.Ingest.DroppedTTL = 6 * time.Hour
	}

	// llm
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://generativelanguage.googleapis.com/v1beta/openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.0-flash"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.RetryDelay == 0 {
		cfg.LLM.RetryDelay = 5 * time.Second
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.MaxChars == 0 {
		cfg.Extraction.MaxChars = 4000
	}

	// publish
	if cfg.Publish.Exchange == "" {
		cfg.Publish.Exchange = "mappin"
	}
	if cfg.Publish.RoutingKey == "" {
		cfg.Publish.RoutingKey = "conflicts"
	}

	// feeds
	for i := range cfg.Feeds {
		cfg.Feeds[i].URL = strings.TrimSpace(cfg.Feeds[i].URL)
		if cfg.Feeds[i].Name == "" {
			cfg.Feeds[i].Name = cfg.Feeds[i].URL
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	switch cfg.Ingest.Strategy {
	case "llm", "keyword":
	default:
		return fmt.Errorf("ingest.strategy must be llm or keyword, got %q", cfg.Ingest.Strategy)
	}
	switch cfg.Ingest.Mode {
	case "news", "alien":
	default:
		return fmt.Errorf("ingest.mode must be news or alien, got %q", cfg.Ingest.Mode)
	}
	switch cfg.Ingest.Dedup {
	case "exact", "normalized":
	default:
		return fmt.Errorf("ingest.dedup must be exact or normalized, got %q", cfg.Ingest.Dedup)
	}
	if cfg.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest.batch_size must be at least 1")
	}
	if cfg.Ingest.MaxItemsPerFeed < 1 {
		return fmt.Errorf("ingest.max_items_per_feed must be at least 1")
	}
	if cfg.Ingest.InterItemDelay < 0 {
		return fmt.Errorf("ingest.inter_item_delay must be non-negative")
	}

	// LLM settings matter only when it is the primary strategy
	if cfg.Ingest.Strategy == "llm" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for the llm strategy")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Retries < 0 {
		return fmt.Errorf("llm.retries must be non-negative")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
		if seen[f.URL] {
			return fmt.Errorf("feeds[%d]: duplicate url %s", i, f.URL)
		}
		seen[f.URL] = true
	}

	return nil
}

// DomainFeeds returns configured feeds as domain feeds
func (c *Config) DomainFeeds() []domain.Feed {
	res := make([]domain.Feed, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		res = append(res, domain.Feed{URL: f.URL, Name: f.Name, Region: f.Region})
	}
	return res
}

// BatchOptions returns ingestion batch options
func (c *Config) BatchOptions() domain.BatchOptions {
	return domain.BatchOptions{
		BatchSize:       c.Ingest.BatchSize,
		MaxItemsPerFeed: c.Ingest.MaxItemsPerFeed,
		InterItemDelay:  c.Ingest.InterItemDelay,
	}
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

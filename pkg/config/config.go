package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen         string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		RecommendLimit int           `yaml:"recommend_limit" json:"recommend_limit" jsonschema:"default=5,minimum=1,description=Default number of recommendations returned by the API"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdrop.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Delivery DeliveryConfig `yaml:"delivery" json:"delivery" jsonschema:"description=Delivery cycle configuration"`

	Decay struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=168h,description=How often preference scores are decayed"`
	} `yaml:"decay" json:"decay" jsonschema:"description=Preference decay configuration"`

	Feeds FeedsConfig `yaml:"feeds" json:"feeds" jsonschema:"description=RSS collection configuration"`

	Channels ChannelsConfig `yaml:"channels" json:"channels" jsonschema:"description=Delivery channels configuration"`
}

// DeliveryConfig holds delivery cycle settings
type DeliveryConfig struct {
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1m,description=Delivery cycle interval"`
	MaxWorkers  int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Users processed concurrently"`
	PerCategory int           `yaml:"per_category" json:"per_category" jsonschema:"default=3,minimum=1,description=Candidate articles fetched per subscribed category"`
	BatchSize   int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=3,minimum=1,description=Articles sent to a user per cycle"`
	SendTimeout time.Duration `yaml:"send_timeout" json:"send_timeout" jsonschema:"default=10s,description=Timeout of a single channel send"`
}

// FeedsConfig holds feed collection settings
type FeedsConfig struct {
	Enabled         bool                `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Collect articles from RSS feeds"`
	Interval        time.Duration       `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Feed collection interval"`
	CleanupInterval time.Duration       `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=24h,description=How often old articles are removed"`
	Retention       time.Duration       `yaml:"retention" json:"retention" jsonschema:"default=72h,description=How long collected articles are kept"`
	Timeout         time.Duration       `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	UserAgent       string              `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdrop/1.0,description=User agent for feed requests"`
	Concurrency     int                 `yaml:"concurrency" json:"concurrency" jsonschema:"default=4,minimum=1,description=Feeds fetched in parallel"`
	Categories      map[string][]string `yaml:"categories" json:"categories,omitempty" jsonschema:"description=Category to feed urls, built-in table is used if empty"`
}

// ChannelsConfig holds channel adapter settings. Disabled channels are logged instead of sent if DryRun is set.
type ChannelsConfig struct {
	DryRun   bool           `yaml:"dry_run" json:"dry_run" jsonschema:"default=false,description=Log messages for disabled channels instead of failing them"`
	Email    EmailConfig    `yaml:"email" json:"email" jsonschema:"description=SMTP email channel"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram bot channel"`
	SMS      GatewayConfig  `yaml:"sms" json:"sms" jsonschema:"description=SMS gateway channel"`
	WhatsApp GatewayConfig  `yaml:"whatsapp" json:"whatsapp" jsonschema:"description=WhatsApp gateway channel"`
	Push     PushConfig     `yaml:"push" json:"push" jsonschema:"description=In-app push channel published to kafka"`
}

// EmailConfig holds SMTP settings
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable email channel"`
	Host     string `yaml:"host" json:"host" jsonschema:"description=SMTP host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=25,description=SMTP port"`
	Username string `yaml:"username" json:"username" jsonschema:"description=SMTP user"`
	Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password (can use environment variable)"`
	From     string `yaml:"from" json:"from" jsonschema:"description=Sender address"`
	TLS      bool   `yaml:"tls" json:"tls" jsonschema:"default=false,description=Use TLS connection"`
	StartTLS bool   `yaml:"starttls" json:"starttls" jsonschema:"default=false,description=Use STARTTLS"`
}

// TelegramConfig holds bot settings
type TelegramConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable telegram channel"`
	Token   string  `yaml:"token" json:"token" jsonschema:"description=Bot token (can use environment variable)"`
	APIURL  string  `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.telegram.org,description=Bot API base url"`
	RPS     float64 `yaml:"rps" json:"rps" jsonschema:"default=25,description=Maximum messages per second"`
	// WebhookSecret is the secret_token given to setWebhook, empty accepts any webhook call
	WebhookSecret string `yaml:"webhook_secret" json:"webhook_secret" jsonschema:"description=Secret expected in X-Telegram-Bot-Api-Secret-Token of webhook calls"`
}

// GatewayConfig holds an HTTP messaging gateway settings
type GatewayConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the channel"`
	URL     string  `yaml:"url" json:"url" jsonschema:"description=Gateway send endpoint"`
	Token   string  `yaml:"token" json:"token" jsonschema:"description=Bearer token (can use environment variable)"`
	Sender  string  `yaml:"sender" json:"sender" jsonschema:"description=Sender id or number"`
	RPS     float64 `yaml:"rps" json:"rps" jsonschema:"default=10,description=Maximum messages per second"`
}

// PushConfig holds kafka settings of the in-app push channel
type PushConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable in-app push channel"`
	Brokers []string `yaml:"brokers" json:"brokers" jsonschema:"description=Kafka brokers"`
	Topic   string   `yaml:"topic" json:"topic" jsonschema:"default=notifications,description=Kafka topic"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{}
	cfg.Feeds.Enabled = true
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.RecommendLimit == 0 {
		c.Server.RecommendLimit = 5
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:newsdrop.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Delivery.Interval == 0 {
		c.Delivery.Interval = time.Minute
	}
	if c.Delivery.MaxWorkers == 0 {
		c.Delivery.MaxWorkers = 5
	}
	if c.Delivery.PerCategory == 0 {
		c.Delivery.PerCategory = 3
	}
	if c.Delivery.BatchSize == 0 {
		c.Delivery.BatchSize = 3
	}
	if c.Delivery.SendTimeout == 0 {
		c.Delivery.SendTimeout = 10 * time.Second
	}

	if c.Decay.Interval == 0 {
		c.Decay.Interval = 7 * 24 * time.Hour
	}

	if c.Feeds.Interval == 0 {
		c.Feeds.Interval = 30 * time.Minute
	}
	if c.Feeds.CleanupInterval == 0 {
		c.Feeds.CleanupInterval = 24 * time.Hour
	}
	if c.Feeds.Retention == 0 {
		c.Feeds.Retention = 72 * time.Hour
	}
	if c.Feeds.Timeout == 0 {
		c.Feeds.Timeout = 30 * time.Second
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = "Newsdrop/1.0"
	}
	if c.Feeds.Concurrency == 0 {
		c.Feeds.Concurrency = 4
	}

	if c.Channels.Email.Port == 0 {
		c.Channels.Email.Port = 25
	}
	if c.Channels.Telegram.APIURL == "" {
		c.Channels.Telegram.APIURL = "https://api.telegram.org"
	}
	if c.Channels.Telegram.RPS == 0 {
		c.Channels.Telegram.RPS = 25
	}
	if c.Channels.SMS.RPS == 0 {
		c.Channels.SMS.RPS = 10
	}
	if c.Channels.WhatsApp.RPS == 0 {
		c.Channels.WhatsApp.RPS = 10
	}
	if c.Channels.Push.Topic == "" {
		c.Channels.Push.Topic = "notifications"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.RecommendLimit < 1 {
		return fmt.Errorf("server.recommend_limit must be at least 1")
	}

	d := cfg.Delivery
	if d.Interval < time.Second {
		return fmt.Errorf("delivery.interval must be at least 1 second")
	}
	if d.MaxWorkers < 1 || d.PerCategory < 1 || d.BatchSize < 1 {
		return fmt.Errorf("delivery max_workers, per_category and batch_size must be positive")
	}
	if d.SendTimeout < 100*time.Millisecond {
		return fmt.Errorf("delivery.send_timeout must be at least 100ms")
	}
	if cfg.Decay.Interval < time.Minute {
		return fmt.Errorf("decay.interval must be at least 1 minute")
	}

	if cfg.Feeds.Enabled {
		if cfg.Feeds.Interval < time.Minute {
			return fmt.Errorf("feeds.interval must be at least 1 minute")
		}
		if cfg.Feeds.Retention < time.Hour {
			return fmt.Errorf("feeds.retention must be at least 1 hour")
		}
		for cat, urls := range cfg.Feeds.Categories {
			if strings.TrimSpace(cat) == "" {
				return fmt.Errorf("feeds.categories has an empty category name")
			}
			if len(urls) == 0 {
				return fmt.Errorf("feeds.categories.%s has no urls", cat)
			}
		}
	}

	return validateChannels(&cfg.Channels)
}

func validateChannels(ch *ChannelsConfig) error {
	if ch.Email.Enabled && (ch.Email.Host == "" || ch.Email.From == "") {
		return fmt.Errorf("channels.email requires host and from")
	}
	if ch.Telegram.Enabled && ch.Telegram.Token == "" {
		return fmt.Errorf("channels.telegram requires token")
	}
	if ch.SMS.Enabled && ch.SMS.URL == "" {
		return fmt.Errorf("channels.sms requires url")
	}
	if ch.WhatsApp.Enabled && ch.WhatsApp.URL == "" {
		return fmt.Errorf("channels.whatsapp requires url")
	}
	if ch.Push.Enabled && len(ch.Push.Brokers) == 0 {
		return fmt.Errorf("channels.push requires brokers")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

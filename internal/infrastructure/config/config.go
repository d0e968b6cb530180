package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Broker       BrokerConfig
	Redis        RedisConfig
	Confirmation ConfirmationConfig
	Catalog      CatalogConfig
	Telemetry    TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	TrustedProxies    []string
	StaticDir         string // storefront page; skipped when the directory is missing
}

// BrokerConfig holds the message broker connection used to reach the actuator
type BrokerConfig struct {
	Driver               string // mqtt, redis, none
	URL                  string
	ClientID             string
	Username             string
	Password             string
	Topic                string
	QoS                  int
	Retained             bool
	ConnectTimeout       time.Duration
	PublishTimeout       time.Duration
	KeepAlive            time.Duration
	ConnectRetryInterval time.Duration
	Debug                bool // forward the MQTT library's debug log
}

// RedisConfig holds Redis connection settings, used when broker.driver is "redis"
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ConfirmationConfig holds the messaging deep link settings
type ConfirmationConfig struct {
	BaseURL     string
	CountryCode string
}

// CatalogConfig optionally replaces the built-in product list
type CatalogConfig struct {
	Currency string
	Products []ProductConfig
}

// ProductConfig is one catalog entry
type ProductConfig struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Color    string `mapstructure:"color"`
	Price    string `mapstructure:"price"`
	Position int    `mapstructure:"position"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to export traces
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	LogsEnabled       bool
}

// Load reads config.toml from the working directory or /app, then applies LOJA_ env overrides
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file path, then applies LOJA_ env overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("LOJA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
			StaticDir:         v.GetString("http.static_dir"),
		},
		Broker: BrokerConfig{
			Driver:               v.GetString("broker.driver"),
			URL:                  v.GetString("broker.url"),
			ClientID:             v.GetString("broker.client_id"),
			Username:             v.GetString("broker.username"),
			Password:             v.GetString("broker.password"),
			Topic:                v.GetString("broker.topic"),
			QoS:                  v.GetInt("broker.qos"),
			Retained:             v.GetBool("broker.retained"),
			ConnectTimeout:       v.GetDuration("broker.connect_timeout"),
			PublishTimeout:       v.GetDuration("broker.publish_timeout"),
			KeepAlive:            v.GetDuration("broker.keep_alive"),
			ConnectRetryInterval: v.GetDuration("broker.connect_retry_interval"),
			Debug:                v.GetBool("broker.debug"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Confirmation: ConfirmationConfig{
			BaseURL:     v.GetString("confirmation.base_url"),
			CountryCode: v.GetString("confirmation.country_code"),
		},
		Catalog: CatalogConfig{
			Currency: v.GetString("catalog.currency"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
		},
	}

	if err := v.UnmarshalKey("catalog.products", &cfg.Catalog.Products); err != nil {
		return nil, fmt.Errorf("error reading catalog.products: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "loja-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10 // 64KB, orders are tiny
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 60
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// The storefront page may be served from anywhere
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}

	if cfg.HTTP.StaticDir == "" {
		cfg.HTTP.StaticDir = "public"
	}

	if cfg.Broker.Driver == "" {
		cfg.Broker.Driver = "mqtt"
	}
	if cfg.Broker.URL == "" {
		cfg.Broker.URL = "tcp://broker.hivemq.com:1883"
	}
	if cfg.Broker.Topic == "" {
		cfg.Broker.Topic = "loja/pedido"
	}
	if cfg.Broker.ConnectTimeout == 0 {
		cfg.Broker.ConnectTimeout = 10 * time.Second
	}
	if cfg.Broker.PublishTimeout == 0 {
		cfg.Broker.PublishTimeout = 5 * time.Second
	}
	if cfg.Broker.KeepAlive == 0 {
		cfg.Broker.KeepAlive = 60 * time.Second
	}
	if cfg.Broker.ConnectRetryInterval == 0 {
		cfg.Broker.ConnectRetryInterval = 5 * time.Second
	}

	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.Confirmation.BaseURL == "" {
		cfg.Confirmation.BaseURL = "https://wa.me/"
	}
	if cfg.Confirmation.CountryCode == "" {
		cfg.Confirmation.CountryCode = "55"
	}
	if cfg.Catalog.Currency == "" {
		cfg.Catalog.Currency = "BRL"
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

func (c *Config) validate() error {
	switch c.Broker.Driver {
	case "mqtt", "redis", "none":
	default:
		return fmt.Errorf("broker.driver must be one of mqtt, redis, none, got %q", c.Broker.Driver)
	}
	if c.Broker.Driver == "mqtt" {
		u, err := url.Parse(c.Broker.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("broker.url must be an absolute broker URL such as tcp://host:1883, got %q", c.Broker.URL)
		}
	}
	if c.Broker.QoS < 0 || c.Broker.QoS > 2 {
		return fmt.Errorf("broker.qos must be 0, 1 or 2, got %d", c.Broker.QoS)
	}
	if strings.TrimSpace(c.Broker.Topic) == "" {
		return fmt.Errorf("broker.topic cannot be empty")
	}
	if strings.ContainsAny(c.Broker.Topic, "+#") {
		return fmt.Errorf("broker.topic cannot contain wildcards, got %q", c.Broker.Topic)
	}

	if !isDigits(c.Confirmation.CountryCode) {
		return fmt.Errorf("confirmation.country_code must contain digits only, got %q", c.Confirmation.CountryCode)
	}
	if u, err := url.Parse(c.Confirmation.BaseURL); err != nil || u.Scheme == "" {
		return fmt.Errorf("confirmation.base_url must be an absolute URL, got %q", c.Confirmation.BaseURL)
	}

	if err := c.Catalog.validate(); err != nil {
		return err
	}

	if c.HTTP.RateLimitEnabled && c.HTTP.RateLimitRequests <= 0 {
		return fmt.Errorf("http.rate_limit_requests must be positive when rate limiting is enabled")
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	seen := make(map[string]struct{}, len(c.Products))
	for i, p := range c.Products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("catalog.products[%d].id cannot be empty", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("catalog.products[%d].id %q is duplicated", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("catalog.products[%d].price %q is not a number", i, p.Price)
		}
		if price.IsNegative() {
			return fmt.Errorf("catalog.products[%d].price cannot be negative", i)
		}
		if p.Position <= 0 {
			return fmt.Errorf("catalog.products[%d].position must be positive", i)
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Address returns the listen address for the HTTP server
func (a AppConfig) Address() string {
	return ":" + a.Port
}

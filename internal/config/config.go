// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Stream    StreamConfig    `mapstructure:"stream"`
	Console   ConsoleConfig   `mapstructure:"console"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// BackendConfig holds trading backend REST API configuration.
type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	StatsInterval  time.Duration `mapstructure:"stats_interval"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// StreamConfig holds realtime stream configuration.
type StreamConfig struct {
	URL           string        `mapstructure:"url"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	PingInterval  time.Duration `mapstructure:"ping_interval"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
}

// ConsoleConfig holds operator console settings.
type ConsoleConfig struct {
	SessionFile string `mapstructure:"session_file"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("CONSOLE")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "CONSOLE_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "CONSOLE_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "CONSOLE_LOG_LEVEL", "LOG_LEVEL")

	// Backend
	v.BindEnv("backend.base_url", "CONSOLE_BACKEND_URL", "BACKEND_URL")
	v.BindEnv("backend.timeout", "CONSOLE_BACKEND_TIMEOUT")
	v.BindEnv("backend.poll_interval", "CONSOLE_POLL_INTERVAL")

	// Stream
	v.BindEnv("stream.url", "CONSOLE_STREAM_URL", "STREAM_URL")
	v.BindEnv("stream.retry_interval", "CONSOLE_STREAM_RETRY_INTERVAL")
	v.BindEnv("stream.max_reconnects", "CONSOLE_STREAM_MAX_RECONNECTS")

	// Console
	v.BindEnv("console.session_file", "CONSOLE_SESSION_FILE")

	// Telemetry
	v.BindEnv("telemetry.enabled", "CONSOLE_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "CONSOLE_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "CONSOLE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "trade-console")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:3000/api")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.poll_interval", "30s")
	v.SetDefault("backend.stats_interval", "60s")
	v.SetDefault("backend.rate_limit_rps", 10)
	v.SetDefault("backend.rate_limit_burst", 20)

	// Stream defaults
	v.SetDefault("stream.url", "ws://localhost:3000/ws")
	v.SetDefault("stream.retry_interval", "3s")
	v.SetDefault("stream.max_reconnects", 5)
	v.SetDefault("stream.ping_interval", "30s")
	v.SetDefault("stream.read_timeout", "60s")
	v.SetDefault("stream.write_timeout", "10s")

	// Console defaults
	v.SetDefault("console.session_file", ".trade-console/session.json")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "trade-console")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("invalid backend.base_url: %w", err)
	}
	if c.Stream.URL == "" {
		return fmt.Errorf("stream.url is required")
	}
	u, err := url.Parse(c.Stream.URL)
	if err != nil {
		return fmt.Errorf("invalid stream.url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("stream.url must use ws or wss scheme, got %q", u.Scheme)
	}
	if c.Backend.PollInterval <= 0 {
		return fmt.Errorf("backend.poll_interval must be positive")
	}
	return nil
}

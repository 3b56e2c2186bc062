package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Remote analytics API consumed by the dashboard CLI.
	API APIConfig `mapstructure:"api"`

	// Collector endpoint tracked events are delivered to.
	Collector CollectorConfig `mapstructure:"collector"`

	// Relay agent daemon.
	Agent AgentConfig `mapstructure:"agent"`

	// Local durable storage (credentials, visitor markers).
	Storage StorageConfig `mapstructure:"storage"`

	// Redis, used by the relay rate limiter.
	Redis RedisConfig `mapstructure:"redis"`

	// Prometheus metrics exposure for the relay.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type CollectorConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type AgentConfig struct {
	ListenAddr       string `mapstructure:"listen_addr"`
	PublicBaseURL    string `mapstructure:"public_base_url"`
	RateLimitPerMin  int    `mapstructure:"rate_limit_per_min"`
	DisableRateLimit bool   `mapstructure:"disable_rate_limit"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

func Load() (*Config, error) {
	// Load local .env for development (ignored when missing).
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Search for config/config.yaml (plus root for overrides).
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Allow environment variables to override YAML entries.
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Preserve legacy env variable names.
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("collector.base_url", "http://localhost:8080/api")
	v.SetDefault("agent.listen_addr", ":9400")
	v.SetDefault("agent.public_base_url", "http://localhost:9400")
	v.SetDefault("agent.rate_limit_per_min", 600)
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("redis.port", 6379)
	v.SetDefault("metrics.port", 9401)
}

func bindEnvVars(v *viper.Viper) {
	// API + collector
	v.BindEnv("api.base_url", "API_URL")
	v.BindEnv("collector.base_url", "COLLECTOR_URL")

	// Relay agent
	v.BindEnv("agent.listen_addr", "AGENT_LISTEN_ADDR")
	v.BindEnv("agent.public_base_url", "AGENT_PUBLIC_URL")

	// Storage
	v.BindEnv("storage.path", "STORAGE_PATH")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// Metrics
	v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	v.BindEnv("metrics.port", "METRICS_PORT")
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webanalytics.db"
	}
	return filepath.Join(home, ".webanalytics", "webanalytics.db")
}

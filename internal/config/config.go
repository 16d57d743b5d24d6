package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Page     PageConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// UpstreamConfig holds configuration for the portfolio data source API
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PageConfig holds per-page presentation configuration
type PageConfig struct {
	// Subscriber is the opaque identifier the upstream API keys all
	// portfolio data by (resolved from the page's subdomain upstream).
	Subscriber string
	// RefreshInterval is how often the page re-fetches its snapshots.
	RefreshInterval time.Duration
	// FilterCurrencyPositions hides CUR:-prefixed holdings from the
	// holdings table. The portfolio total always includes them.
	FilterCurrencyPositions bool
	// DefaultSortColumn is the holdings column the page sorts by before
	// any user interaction.
	DefaultSortColumn string
}

// KafkaConfig holds Kafka configuration for trade notifications.
// An empty broker list disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RedisConfig holds snapshot cache configuration
type RedisConfig struct {
	Addr    string
	Enabled bool
	TTL     time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "https://api.withlaguna.com"),
			Timeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Page: PageConfig{
			Subscriber:              getEnv("PAGE_SUBSCRIBER", "parth"),
			RefreshInterval:         getDuration("REFRESH_INTERVAL", 5*time.Minute),
			FilterCurrencyPositions: getBool("FILTER_CURRENCY_POSITIONS", true),
			DefaultSortColumn:       getEnv("DEFAULT_SORT", "institution_value"),
		},
		Kafka: KafkaConfig{
			Brokers: getList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "trade-events"),
		},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled: getBool("CACHE_ENABLED", false),
			TTL:     getDuration("CACHE_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getBool("LOG_PRETTY", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/dispatch_console/internal/models"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Incident API
	IncidentAPIURL string        `env:"INCIDENT_API_URL" envDefault:"http://localhost:3000"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	// Polling
	AdminPollInterval  time.Duration `env:"ADMIN_POLL_INTERVAL" envDefault:"30s"`
	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"5s"`
	PublicPollInterval time.Duration `env:"PUBLIC_POLL_INTERVAL" envDefault:"30s"`
	ViewIdleTimeout    time.Duration `env:"VIEW_IDLE_TIMEOUT" envDefault:"10m"`

	// Geocoder
	GeocoderURL       string        `env:"GEOCODER_URL" envDefault:"https://nominatim.openstreetmap.org"`
	GeocoderUserAgent string        `env:"GEOCODER_USER_AGENT"`
	GeocodeCacheTTL   time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`

	// Map
	MapFallbackLat float64 `env:"MAP_FALLBACK_LAT" envDefault:"20.5937"`
	MapFallbackLon float64 `env:"MAP_FALLBACK_LON" envDefault:"78.9629"`

	// Журнал действий, пустая строка отключает журнал
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis Config, пустой адрес отключает кеш геокодера
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// API Keys for dispatch endpoints
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		IncidentAPIURL:     strings.TrimRight(getEnv("INCIDENT_API_URL", "http://localhost:3000"), "/"),
		APITimeout:         getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		AdminPollInterval:  getEnvAsDuration("ADMIN_POLL_INTERVAL", 30*time.Second),
		WorkerPollInterval: getEnvAsDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		PublicPollInterval: getEnvAsDuration("PUBLIC_POLL_INTERVAL", 30*time.Second),
		ViewIdleTimeout:    getEnvAsDuration("VIEW_IDLE_TIMEOUT", 10*time.Minute),
		GeocoderURL:        strings.TrimRight(getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocoderUserAgent:  getEnv("GEOCODER_USER_AGENT", "DispatchConsole/1.0"),
		GeocodeCacheTTL:    getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		MapFallbackLat:     getEnvAsFloat("MAP_FALLBACK_LAT", 20.5937),
		MapFallbackLon:     getEnvAsFloat("MAP_FALLBACK_LON", 78.9629),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
	}

	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		for _, key := range strings.Split(apiKeysStr, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.IncidentAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("INCIDENT_API_URL must be an absolute URL, got %q", c.IncidentAPIURL)
	}
	for name, d := range map[string]time.Duration{
		"ADMIN_POLL_INTERVAL":  c.AdminPollInterval,
		"WORKER_POLL_INTERVAL": c.WorkerPollInterval,
		"PUBLIC_POLL_INTERVAL": c.PublicPollInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// PollInterval возвращает период опроса для роли
func (c *Config) PollInterval(role models.Role) time.Duration {
	switch role {
	case models.RoleWorker:
		return c.WorkerPollInterval
	case models.RolePublic:
		return c.PublicPollInterval
	default:
		return c.AdminPollInterval
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

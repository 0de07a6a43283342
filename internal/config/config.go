package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Nearby / Heatmap Config
	NearbyDefaultRadius float64 `env:"NEARBY_DEFAULT_RADIUS" envDefault:"5000"`
	NearbyMaxAgeDays    int     `env:"NEARBY_MAX_AGE_DAYS" envDefault:"30"`
	HeatmapDefaultDays  int     `env:"HEATMAP_DEFAULT_DAYS" envDefault:"30"`

	// Scoring Config
	ScoreRecomputeCron     string `env:"SCORE_RECOMPUTE_CRON" envDefault:"0 3 * * *"`
	ScoreRecomputeParallel int    `env:"SCORE_RECOMPUTE_PARALLEL" envDefault:"4"`

	// Voting Config
	VoteMaxRetries int `env:"VOTE_MAX_RETRIES" envDefault:"3"`

	// Realtime Config
	AlertChannelPrefix string        `env:"ALERT_CHANNEL_PREFIX" envDefault:"incident_alerts"`
	ClientSendBuffer   int           `env:"CLIENT_SEND_BUFFER" envDefault:"16"`
	WSWriteTimeout     time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"5s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		NearbyDefaultRadius:    getEnvAsFloat("NEARBY_DEFAULT_RADIUS", 5000),
		NearbyMaxAgeDays:       getEnvAsInt("NEARBY_MAX_AGE_DAYS", 30),
		HeatmapDefaultDays:     getEnvAsInt("HEATMAP_DEFAULT_DAYS", 30),
		ScoreRecomputeCron:     getEnv("SCORE_RECOMPUTE_CRON", "0 3 * * *"),
		ScoreRecomputeParallel: getEnvAsInt("SCORE_RECOMPUTE_PARALLEL", 4),
		VoteMaxRetries:         getEnvAsInt("VOTE_MAX_RETRIES", 3),
		AlertChannelPrefix:     getEnv("ALERT_CHANNEL_PREFIX", "incident_alerts"),
		ClientSendBuffer:       getEnvAsInt("CLIENT_SEND_BUFFER", 16),
		WSWriteTimeout:         getEnvAsDuration("WS_WRITE_TIMEOUT", 5*time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
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

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
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

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (tokens are issued by the identity service, we only verify them)
	JWTSecret string

	// Server
	Port               string
	CORSOrigins        string
	RateLimitPerMinute int

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Observability
	AppEnv           string
	SentryDSN        string
	LogRetentionDays int
}

func Load() *Config {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "codearena_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 60),

		DefaultPageSize: getInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getInt("MAX_PAGE_SIZE", 100),

		AppEnv:           getEnv("APP_ENV", "development"),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		LogRetentionDays: getInt("LOG_RETENTION_DAYS", 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// LogRetention returns how long system logs are kept before cleanup.
func (c *Config) LogRetention() time.Duration {
	return time.Duration(c.LogRetentionDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

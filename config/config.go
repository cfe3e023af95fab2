package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	ServerPort  string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	JWTSecret   string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Civil zone used to interpret date-only strings and to delimit calendar days.
	Timezone     string
	StrictStatus bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RateCacheTTL  time.Duration

	SeedDemo bool

	// First admin account, created only while the admins table is empty.
	BootstrapAdminID       string
	BootstrapAdminPassword string
	BootstrapAdminName     string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		ServerPort:      getEnv("PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnvInt("DB_PORT", 5432),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "presence"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		Timezone:        getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"),
		StrictStatus:    getEnvBool("ATTENDANCE_STRICT_STATUS", false),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RateCacheTTL:    getEnvDuration("RATE_CACHE_TTL", 5*time.Minute),
		SeedDemo:        getEnvBool("SEED_DEMO", false),

		BootstrapAdminID:       getEnv("ADMIN_BOOTSTRAP_ID", ""),
		BootstrapAdminPassword: getEnv("ADMIN_BOOTSTRAP_PASSWORD", ""),
		BootstrapAdminName:     getEnv("ADMIN_BOOTSTRAP_NAME", "Administrator"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.DBPassword == "" && !cfg.IsDevelopment() {
		return nil, errors.New("DB_PASSWORD environment variable is required")
	}
	if cfg.BootstrapAdminID != "" && cfg.BootstrapAdminPassword == "" {
		return nil, errors.New("ADMIN_BOOTSTRAP_PASSWORD is required when ADMIN_BOOTSTRAP_ID is set")
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings such as "15m" or "24h".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

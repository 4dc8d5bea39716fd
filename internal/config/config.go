package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURL string
	CORSOrigins []string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnvWithDefault("PORT", "8080"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		CORSOrigins:   splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnvWithDefault("ADMIN_NAME", "Administrator"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	lifetimeMin, err := getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30)
	if err != nil {
		return nil, err
	}
	cfg.ConnMaxLifetime = time.Duration(lifetimeMin) * time.Minute
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.SessionTTL, err = time.ParseDuration(getEnvWithDefault("SESSION_TTL", "24h"))
	if err != nil || cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be a positive duration")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return i, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

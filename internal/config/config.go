package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config chứa toàn bộ application configuration.
// Struct này được populate từ environment variables.
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Membership MembershipConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

// MembershipConfig gom các tham số của lifecycle engine.
// Các giá trị mặc định khớp với business rules: renewal chạy trước expiry
// 3 ngày, grace period 7 ngày, reminder ở mốc 30/14/7 ngày.
type MembershipConfig struct {
	RenewalLeadDays  int
	GracePeriodDays  int
	ReminderDays     []int
	MaxRenewaltries  int
	PlanCacheTTLMins int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "GymAngel API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnvInt("PG_PORT", 5432),
			User:     getEnv("PG_USERNAME", "postgres"),
			Password: getEnv("PG_PASSWORD", "postgres"),
			Database: getEnv("PG_DBNAME", "gymangel"),
			SSLMode:  getEnv("PG_SSLMODE", "disable"),
			MaxConns: getEnvInt("PG_MAX_CONNS", 25),
			MinConns: getEnvInt("PG_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "no-reply@gymangel.vn"),
		},
		Membership: MembershipConfig{
			RenewalLeadDays:  getEnvInt("MEMBERSHIP_RENEWAL_LEAD_DAYS", 3),
			GracePeriodDays:  getEnvInt("MEMBERSHIP_GRACE_PERIOD_DAYS", 7),
			ReminderDays:     []int{30, 14, 7},
			MaxRenewaltries:  getEnvInt("MEMBERSHIP_MAX_RENEWAL_TRIES", 3),
			PlanCacheTTLMins: getEnvInt("PLAN_CACHE_TTL_MINS", 15),
		},
	}

	if cfg.App.Environment == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

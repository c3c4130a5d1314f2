package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port           string `toml:"port"`
	DatabaseDriver string `toml:"database_driver"` // mysql or sqlite
	DatabaseURL    string `toml:"database_url"`
	JWTSecret      string `toml:"jwt_secret"`
	Timezone       string `toml:"timezone"`

	// CORSOrigins lists the browser origins allowed to call the API; "*" allows any
	CORSOrigins []string `toml:"cors_origins"`

	// Rate limiting
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
	RateLimitBurst     int `toml:"rate_limit_burst"`

	// Email Configuration
	SMTPHost     string `toml:"smtp_host"`
	SMTPPort     int    `toml:"smtp_port"`
	SMTPUsername string `toml:"smtp_username"`
	SMTPPassword string `toml:"smtp_password"`
	FromEmail    string `toml:"from_email"`
	FromName     string `toml:"from_name"`

	// WeeklyReportInterval is how often the weekly goal email job runs; 0 disables it
	WeeklyReportInterval time.Duration `toml:"-"`
	WeeklyReportEvery    string        `toml:"weekly_report_interval"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		DatabaseDriver:     "mysql",
		DatabaseURL:        "user:password@tcp(localhost:3306)/gigtrack?charset=utf8mb4&parseTime=True&loc=Local",
		JWTSecret:          "your-secret-key",
		Timezone:           "Local",
		CORSOrigins:        []string{"*"},
		RateLimitPerMinute: 120,
		RateLimitBurst:     20,
		SMTPHost:           "localhost",
		SMTPPort:           2525,
		FromEmail:          "noreply@gigtrack.app",
		FromName:           "GigTrack",
		WeeklyReportEvery:  "168h",
	}
}

// Load builds the configuration from built-in defaults, then the TOML file
// named by CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseDriver = getEnv("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	// Email settings
	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.FromEmail = getEnv("FROM_EMAIL", cfg.FromEmail)
	cfg.FromName = getEnv("FROM_NAME", cfg.FromName)
	cfg.WeeklyReportEvery = getEnv("WEEKLY_REPORT_INTERVAL", cfg.WeeklyReportEvery)

	interval, err := time.ParseDuration(cfg.WeeklyReportEvery)
	if err != nil {
		return nil, fmt.Errorf("invalid weekly report interval %q: %w", cfg.WeeklyReportEvery, err)
	}
	cfg.WeeklyReportInterval = interval

	if cfg.DatabaseDriver != "mysql" && cfg.DatabaseDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit burst must be positive, got %d", cfg.RateLimitBurst)
	}

	return cfg, nil
}

// Location resolves the configured timezone used for calendar windows
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

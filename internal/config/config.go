package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Server    ServerConfig
	Audit     AuditConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
	LogLevel  string
	APIURL    string
}

type ServerConfig struct {
	Port            string
	Env             string
	StaticDir       string
	ShutdownTimeout time.Duration
}

type AuditConfig struct {
	Enabled       bool
	Brokers       []string
	Topic         string
	GroupID       string
	Workers       int
	BatchSize     int
	FlushInterval time.Duration
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

type AdminConfig struct {
	Username string
	Password string
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	loadEnvFile()

	var errs []string
	intVar := func(key string, def int) int {
		v, err := getEnvAsInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		v, err := getEnvAsDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	boolVar := func(key string, def bool) bool {
		v, err := getEnvAsBool(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Env:             getEnv("APP_ENV", EnvDevelopment),
			StaticDir:       getEnv("STATIC_DIR", filepath.Join("dist", "public")),
			ShutdownTimeout: durationVar("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Audit: AuditConfig{
			Enabled:       boolVar("AUDIT_ENABLED", true),
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:         getEnv("AUDIT_TOPIC", "audit_logs"),
			GroupID:       getEnv("AUDIT_GROUP_ID", "audit-log-consumer-group"),
			Workers:       intVar("AUDIT_WORKERS", 2),
			BatchSize:     intVar("AUDIT_BATCH_SIZE", 5),
			FlushInterval: durationVar("AUDIT_FLUSH_INTERVAL", 500*time.Millisecond),
		},
		RateLimit: RateLimitConfig{
			PerMinute: intVar("SUBMIT_RATE_PER_MINUTE", 10),
			Burst:     intVar("SUBMIT_BURST", 5),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIURL:   getEnv("API_URL", "http://localhost:5000"),
	}

	if cfg.Server.Env != EnvDevelopment && cfg.Server.Env != EnvProduction {
		errs = append(errs, fmt.Sprintf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Server.Env))
	}
	if cfg.Audit.Workers < 1 {
		errs = append(errs, "AUDIT_WORKERS must be at least 1")
	}
	if cfg.Audit.BatchSize < 1 {
		errs = append(errs, "AUDIT_BATCH_SIZE must be at least 1")
	}
	if cfg.RateLimit.PerMinute < 0 || cfg.RateLimit.Burst < 0 {
		errs = append(errs, "SUBMIT_RATE_PER_MINUTE and SUBMIT_BURST must not be negative")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func loadEnvFile() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		// Variables already set in the environment take precedence.
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not a duration", key, value)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	MetricsPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	KafkaBrokers []string
	AuditTopic   string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int

	AdminUsername string
	AdminPassword string

	// LegacyDriverAvailability keeps a driver marked busy after their last
	// active pickup completes, matching the old back office behavior. When
	// false the driver is returned to available as soon as their active
	// assignment count reaches zero.
	LegacyDriverAvailability bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("POSTGRES_USER", "postgres"),
		DBPassword: getEnv("POSTGRES_PASSWORD", ""),
		DBName:     getEnv("POSTGRES_DB", "agromarket"),

		KafkaBrokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
		AuditTopic:   getEnv("AUDIT_TOPIC", "pickup_audit"),

		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		OutboxBatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 20),
		OutboxMaxAttempts:  getEnvInt("OUTBOX_MAX_ATTEMPTS", 5),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		LegacyDriverAvailability: getEnvBool("LEGACY_DRIVER_AVAILABILITY", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

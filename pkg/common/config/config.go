package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers     []string
	KafkaGroupID     string
	AlertTopic       string
	ReminderDueTopic string

	// Rule tables (optional YAML overrides, built-in defaults otherwise)
	VitalRulesPath  string
	IntentRulesPath string

	// Reminder scheduling
	ReminderHorizon     time.Duration
	ReminderRunInterval time.Duration
	ReminderLockTTL     time.Duration
	AnalysisLookback    time.Duration
	RecentAnalysisFloor int
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "drcares"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "drcares123"),
		PostgresDB:       getEnv("POSTGRES_DB", "drcares"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:     getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "drcares-platform"),
		AlertTopic:       getEnv("ALERT_TOPIC", "monitoring-alerts"),
		ReminderDueTopic: getEnv("REMINDER_DUE_TOPIC", "reminders-due"),

		VitalRulesPath:  getEnv("VITAL_RULES_PATH", ""),
		IntentRulesPath: getEnv("INTENT_RULES_PATH", ""),

		ReminderHorizon:     getDuration("REMINDER_HORIZON", 7*24*time.Hour),
		ReminderRunInterval: getDuration("REMINDER_RUN_INTERVAL", 15*time.Minute),
		ReminderLockTTL:     getDuration("REMINDER_LOCK_TTL", 5*time.Minute),
		AnalysisLookback:    getDuration("ANALYSIS_LOOKBACK", 30*24*time.Hour),
		RecentAnalysisFloor: getIntEnv("RECENT_ANALYSIS_FLOOR", 2),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

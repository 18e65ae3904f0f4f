package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	// Empty DatabaseURL keeps the catalog in memory.
	DatabaseURL string
	CatalogFile string

	// Empty RedisURL keeps sessions in memory.
	RedisURL   string
	SessionTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ThinkDelayMin time.Duration
	ThinkDelayMax time.Duration

	OTelExporter string
	OTelEndpoint string
}

func Load() Config {
	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		GRPCPort:      getEnvInt("GRPC_PORT", 8081),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		CatalogFile:   getEnv("CATALOG_FILE", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 0),
		KafkaBrokers:  getEnvList("KAFKA_BROKERS"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "shopassist.events"),
		ThinkDelayMin: getEnvDuration("THINK_DELAY_MIN", time.Second),
		ThinkDelayMax: getEnvDuration("THINK_DELAY_MAX", 3*time.Second),
		OTelExporter:  getEnv("OTEL_EXPORTER", "none"),
		OTelEndpoint:  getEnv("OTEL_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

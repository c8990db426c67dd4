// Package config loads service configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	AdminToken    string
	JWTSigningKey string
}

// Database captures the persistence configuration. An empty URL selects the
// in-memory stores, which is the local development default.
type Database struct {
	URL string
}

// RedisConfig captures the rule-set cache configuration. An empty URL
// disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures the audit sink configuration. No brokers means audit events
// stay in the local store only.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Config is the full service configuration.
type Config struct {
	Server          Server
	Database        Database
	Redis           RedisConfig
	Kafka           Kafka
	RuleSetCacheTTL time.Duration
}

// FromEnv builds the configuration from SHIFTWISE_* environment variables.
func FromEnv() Config {
	addr := os.Getenv("SHIFTWISE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("SHIFTWISE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("SHIFTWISE_RULESET_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cacheTTL = parsed
		}
	}

	var brokers []string
	if raw := os.Getenv("SHIFTWISE_KAFKA_BROKERS"); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				brokers = append(brokers, broker)
			}
		}
	}
	topic := os.Getenv("SHIFTWISE_KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "shiftwise.audit"
	}

	return Config{
		Server: Server{
			Addr:          addr,
			AdminToken:    os.Getenv("SHIFTWISE_ADMIN_TOKEN"),
			JWTSigningKey: jwtSigningKey,
		},
		Database: Database{
			URL: os.Getenv("SHIFTWISE_DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("SHIFTWISE_REDIS_URL"),
			PoolSize:     envInt("SHIFTWISE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SHIFTWISE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers: brokers,
			Topic:   topic,
		},
		RuleSetCacheTTL: cacheTTL,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// RezdyConfig holds the upstream defaults. The API key and endpoint can also
// arrive per call inside the request token; these act as fallbacks.
type RezdyConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type KeysConfig struct {
	// Secret signs availability keys. Availability searches fail without it.
	Secret string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Rezdy   RezdyConfig
	Keys    KeysConfig
	Kafka   KafkaConfig
}

func Load() (*Config, error) {
	timeout, err := durationEnv("REZDY_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	return &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "json"),
			Directory: envOr("LOG_DIR", "./logs"),
		},
		Rezdy: RezdyConfig{
			Endpoint: os.Getenv("REZDY_ENDPOINT"),
			APIKey:   os.Getenv("REZDY_API_KEY"),
			Timeout:  timeout,
		},
		Keys: KeysConfig{
			Secret: os.Getenv("AVAILABILITY_KEY_SECRET"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_TOPIC", "rezdy.bookings"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

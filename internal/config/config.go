package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores the service settings.
type Config struct {
	Port    int
	DB      DB
	Auth    Auth
	Kafka   Kafka
	Uploads Uploads
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Auth stores token-signing settings. Rotating the secret invalidates every
// outstanding token.
type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

// Kafka stores event-producer settings. Empty brokers disable publishing.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Uploads stores photo-store settings.
type Uploads struct {
	Dir string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:    DefaultPort(),
		DB:      DefaultDB(),
		Auth:    DefaultAuth(),
		Kafka:   DefaultKafka(),
		Uploads: DefaultUploads(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	readEnv("POSTGRES_HOST", &cfg.DB.Host)
	readEnv("POSTGRES_PORT", &cfg.DB.Port)
	readEnv("POSTGRES_USER", &cfg.DB.User)
	readEnv("POSTGRES_PASSWORD", &cfg.DB.Pass)
	readEnv("POSTGRES_DB", &cfg.DB.Name)

	readEnv("AUTH_SECRET", &cfg.Auth.Secret)
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %q", v)
		}
		cfg.Auth.TokenTTL = ttl
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}
	readEnv("KAFKA_TOPIC", &cfg.Kafka.Topic)
	readEnv("UPLOAD_DIR", &cfg.Uploads.Dir)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.Secret == DefaultAuth().Secret {
		log.Printf("warning: AUTH_SECRET not set, using the insecure default")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return fmt.Errorf("invalid postgres port: %q", cfg.DB.Port)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("invalid token ttl: %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth secret must not be empty")
	}
	if strings.TrimSpace(cfg.Uploads.Dir) == "" {
		return fmt.Errorf("upload dir must not be empty")
	}
	return nil
}

func readEnv(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitBrokers(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`

	JaegerEndpoint string `yaml:"jaeger_endpoint"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN prefers an explicit URL over the discrete connection fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	NotificationTopic string   `yaml:"notification_topic"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	AdminTTL  time.Duration `yaml:"admin_token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	FrontendURL    string   `yaml:"frontend_url"`
}

func defaults() Config {
	return Config{
		AppEnv:   "production",
		Port:     "8000",
		LogLevel: "info",
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "car_rental",
		},
		Redis: RedisConfig{LockTTL: 10 * time.Second},
		Kafka: KafkaConfig{NotificationTopic: "car-rental.notifications"},
		Auth: AuthConfig{
			Issuer:   "car-rental-api",
			TokenTTL: 60 * time.Minute,
			AdminTTL: 480 * time.Minute,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables. Later sources win.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.AppEnv, "APP_ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setList(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Kafka.NotificationTopic, "KAFKA_NOTIFICATION_TOPIC")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "JWT_ISSUER")
	if err := setMinutes(&cfg.Auth.TokenTTL, "JWT_TTL_MINUTES"); err != nil {
		return err
	}
	if err := setMinutes(&cfg.Auth.AdminTTL, "ADMIN_JWT_TTL_MINUTES"); err != nil {
		return err
	}

	setList(&cfg.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")
	setString(&cfg.CORS.FrontendURL, "FRONTEND_URL")

	setString(&cfg.JaegerEndpoint, "JAEGER_ENDPOINT")

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func setMinutes(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive number of minutes, got %q", key, v)
	}
	*dst = time.Duration(n) * time.Minute

	return nil
}

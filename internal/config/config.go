package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`

	// Storage selects the kvstore backend: "memory", "sqlite" or "redis".
	Storage       string `yaml:"storage"`
	DatabasePath  string `yaml:"databasePath"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	AllowedOrigins string `yaml:"allowedOrigins"`

	// SessionDuration is parsed from the sessionDuration string ("168h").
	SessionDuration    time.Duration `yaml:"-"`
	SessionDurationRaw string        `yaml:"sessionDuration"`

	AdminUsername string `yaml:"adminUsername"`
	AdminEmail    string `yaml:"adminEmail"`
	AdminPassword string `yaml:"adminPassword"`

	// PaymentURL is the static payment-provider handoff link returned at
	// checkout. There is no callback verification.
	PaymentURL string `yaml:"paymentUrl"`

	MailgunDomain      string `yaml:"mailgunDomain"`
	MailgunAPIKey      string `yaml:"mailgunApiKey"`
	MailgunSenderEmail string `yaml:"mailgunSenderEmail"`
	MailgunSenderName  string `yaml:"mailgunSenderName"`
}

// Load reads the optional YAML file at path (skipped when absent), then
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:            "8080",
		Environment:     "production",
		LogLevel:        "INFO",
		Storage:         "sqlite",
		DatabasePath:    "otakumart.db",
		AllowedOrigins:  "http://localhost:3000",
		SessionDuration: 7 * 24 * time.Hour,
		AdminUsername:   "admin",
		AdminEmail:      "admin@example.com",
		AdminPassword:   "admin",
		PaymentURL:      "https://buy.stripe.com/test_placeholder",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Storage = getEnv("STORAGE_BACKEND", cfg.Storage)
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.AllowedOrigins = getEnv("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", cfg.AdminUsername)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	cfg.PaymentURL = getEnv("PAYMENT_URL", cfg.PaymentURL)
	cfg.MailgunDomain = getEnv("MAILGUN_DOMAIN", cfg.MailgunDomain)
	cfg.MailgunAPIKey = getEnv("MAILGUN_API_KEY", cfg.MailgunAPIKey)
	cfg.MailgunSenderEmail = getEnv("MAILGUN_SENDER_EMAIL", cfg.MailgunSenderEmail)
	cfg.MailgunSenderName = getEnv("MAILGUN_SENDER_NAME", cfg.MailgunSenderName)

	if v := getEnv("SESSION_DURATION", cfg.SessionDurationRaw); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid session duration %q: %w", v, err)
		}
		cfg.SessionDuration = d
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Storage {
	case "memory", "sqlite":
	case "redis":
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return fmt.Errorf("config: redisAddr is required for the redis backend")
		}
	default:
		return fmt.Errorf("config: unknown storage backend %q", cfg.Storage)
	}

	if cfg.SessionDuration <= 0 {
		return fmt.Errorf("config: sessionDuration must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Billing"`
		Port int    `envconfig:"PORT" default:"5001"`
	}

	DB struct {
		URL       string `envconfig:"SURREAL_URL" default:"ws://localhost:8000/rpc"`
		Namespace string `envconfig:"SURREAL_NAMESPACE" default:"billing"`
		Name      string `envconfig:"SURREAL_DATABASE" default:"billing"`
		User      string `envconfig:"SURREAL_USER" default:"root"`
		Password  string `envconfig:"SURREAL_PASSWORD" default:"root"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	Mail struct {
		Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
		Port     int    `envconfig:"SMTP_PORT" default:"465"`
		User     string `envconfig:"SMTP_USER"`
		Password string `envconfig:"SMTP_PASSWORD"`
		From     string `envconfig:"MAIL_FROM"`
		FromName string `envconfig:"MAIL_FROM_NAME" default:"Your Agency"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

// Sender returns the envelope-from address, falling back to the SMTP user
// since the relay credentials double as the sender identity.
func (c *Config) Sender() string {
	if c.Mail.From != "" {
		return c.Mail.From
	}

	return c.Mail.User
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

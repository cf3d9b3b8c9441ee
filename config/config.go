package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Environment Configuration
	Environment EnvironmentConfig

	// Database Configuration
	Postgres PostgresConfig

	// Outbound channel Configuration
	SMTP    SMTPConfig
	SMS     SMSConfig
	Push    PushConfig
	Webhook WebhookConfig

	// Background work Configuration
	Scheduler SchedulerConfig
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"HTTP_PORT" envDefault:"8080"`
	Mode string `env:"HTTP_MODE" envDefault:"release"`
}

// PostgresConfig is the configuration for PostgreSQL
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"escalation"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
}

// SMTPConfig is the configuration for the report and escalation mailer
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"alerts@spc-cpk.local"`
	SSL      bool   `env:"SMTP_SSL" envDefault:"false"`
}

// SMSConfig is the configuration for the Twilio SMS sender
type SMSConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
}

// PushConfig is the configuration for the FCM push sender
type PushConfig struct {
	ServerKey string `env:"FCM_SERVER_KEY"`
}

// WebhookConfig is the configuration for the outbound webhook sender
type WebhookConfig struct {
	Timeout   time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	UserAgent string        `env:"WEBHOOK_USER_AGENT" envDefault:"escalation-srv/1.0"`
}

// SchedulerConfig is the configuration for the background sweeps
type SchedulerConfig struct {
	ReportWorkers  int `env:"SCHEDULER_REPORT_WORKERS" envDefault:"4"`
	DispatchFanout int `env:"SCHEDULER_DISPATCH_FANOUT" envDefault:"8"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"true"`
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		fmt.Printf("Error loading configuration: %v", err)
		return nil, err
	}
	return cfg, nil
}

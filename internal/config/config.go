// Package config loads the CLI configuration.
package config

import (
	"fmt"
	"time"

	"github.com/Sternrassler/chute-client/pkg/client"
	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/Sternrassler/chute-client/pkg/receipt"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of all environment variables.
const Prefix = "chute"

// Config represents the application configuration structure
type Config struct {
	APIURL    string        `envconfig:"API_URL" default:"https://api.getchute.com/v2"`
	UserAgent string        `envconfig:"USER_AGENT" default:"chute-client/0.1.0"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`

	ReceiptBackend string `envconfig:"RECEIPT_BACKEND" default:"pebble"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	PebblePath     string `envconfig:"PEBBLE_PATH" default:".chute/receipts"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	config := new(Config)
	if err := envconfig.Process(Prefix, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("CHUTE_API_URL is required")
	}
	switch c.ReceiptBackend {
	case receipt.BackendMemory, receipt.BackendRedis, receipt.BackendPebble:
	default:
		return fmt.Errorf("CHUTE_RECEIPT_BACKEND must be memory, redis or pebble (got %q)", c.ReceiptBackend)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("CHUTE_LOG_LEVEL: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("CHUTE_TIMEOUT must not be negative (got %s)", c.Timeout)
	}
	return nil
}

// Client returns the API client configuration.
func (c *Config) Client() client.Config {
	cfg := client.DefaultConfig(c.APIURL)
	cfg.UserAgent = c.UserAgent
	cfg.Timeout = c.Timeout
	return cfg
}

// Receipts returns the receipt store options.
func (c *Config) Receipts() receipt.Options {
	return receipt.Options{
		Backend:    c.ReceiptBackend,
		RedisAddr:  c.RedisAddr,
		RedisDB:    c.RedisDB,
		PebblePath: c.PebblePath,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level, _ = logging.ParseLevel(c.LogLevel)
	cfg.Pretty = c.LogPretty
	return cfg
}

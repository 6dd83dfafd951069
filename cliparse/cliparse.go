package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost:3318"`
	AdminKeySalt string `env:"ADMIN_KEY_SALT"`

	// Chat relay
	RelayURL      string        `env:"RELAY_URL"`
	RelayKey      string        `env:"RELAY_KEY"`
	SendInterval  time.Duration `env:"SEND_INTERVAL" envDefault:"1s"`
	SendTimeout   time.Duration `env:"SEND_TIMEOUT" envDefault:"12s"`
	MaxMessageLen int           `env:"MAX_MESSAGE_LEN" envDefault:"2000"`

	// Discord interactions
	DiscordPublicKey string `env:"DISCORD_PUBLIC_KEY"`

	// Background work
	Workers   int `env:"WORKERS" envDefault:"2"`
	QueueSize int `env:"QUEUE_SIZE" envDefault:"16"`
}

// ParseFlags loads an optional .env file, reads the environment, then
// applies command line flags on top. Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("scrim-pick", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL used in links")

	fs.StringVar(&cfg.RelayURL, "relay", cfg.RelayURL, "Chat relay URL")
	fs.DurationVar(&cfg.SendInterval, "send-interval", cfg.SendInterval, "Minimum time between relay sends")
	fs.DurationVar(&cfg.SendTimeout, "send-timeout", cfg.SendTimeout, "Relay request timeout")
	fs.IntVar(&cfg.MaxMessageLen, "max-message-len", cfg.MaxMessageLen, "Longest single chat message in characters")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Background worker count")
	fs.IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "Background queue capacity")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", cfg.AdminKeySalt, "Admin key salt (prefer env)")
	fs.StringVar(&cfg.RelayKey, "relay-key", cfg.RelayKey, "Chat relay key (prefer env)")
	fs.StringVar(&cfg.DiscordPublicKey, "discord-key", cfg.DiscordPublicKey, "Discord application public key (hex)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != "sqlite" && c.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.AdminKeySalt == "" {
		return errors.New("ADMIN_KEY_SALT required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SendInterval <= 0 || c.SendTimeout <= 0 {
		return errors.New("send interval and timeout must be positive")
	}
	if c.MaxMessageLen <= 0 {
		return errors.New("max message length must be positive")
	}
	if c.Workers <= 0 || c.QueueSize <= 0 {
		return errors.New("workers and queue size must be positive")
	}
	return nil
}

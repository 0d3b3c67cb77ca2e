// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server needs to run. Flags on the serve
// subcommand override individual fields after parsing.
type Config struct {
	Addr      string `env:"RALLEBOLA_ADDR" envDefault:":8080"`
	DBPath    string `env:"RALLEBOLA_DB" envDefault:"rallebola.db"`
	JWTSecret string `env:"RALLEBOLA_JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	SMTP SMTP `envPrefix:"RALLEBOLA_SMTP_"`
}

// SMTP configures the outgoing mail server. A missing host disables
// mail notifications entirely.
type SMTP struct {
	Host        string `env:"HOST"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	FromAddress string `env:"FROM_ADDRESS" envDefault:"noreply@rallebola.app"`
	FromName    string `env:"FROM_NAME" envDefault:"Rallebola"`
}

// Enabled reports whether mail delivery is configured.
func (s SMTP) Enabled() bool { return s.Host != "" }

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

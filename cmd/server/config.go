package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process environment. The signing key has no default; the
// process refuses to start without one.
type Config struct {
	SigningKey      string   `env:"AUTH_SIGNING_KEY,required"`
	TokenExpiration int      `env:"AUTH_TOKEN_EXPIRATION" envDefault:"1"`
	Issuer          string   `env:"AUTH_ISSUER" envDefault:"auth-docs-service"`
	Audience        []string `env:"AUTH_AUDIENCE" envSeparator:","`
	DatabaseDSN     string   `env:"AUTH_DB_DSN" envDefault:"file:auth.db?cache=shared"`
	HTTPAddr        string   `env:"AUTH_HTTP_ADDR" envDefault:":9876"`
	Debug           bool     `env:"AUTH_DEBUG"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}
	return cfg, nil
}

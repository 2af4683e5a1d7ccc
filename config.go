package auth

import (
	"os"
	"strconv"
)

// SimpleConfig is a plain struct Config implementation for callers that do
// not carry their own configuration layer.
type SimpleConfig struct {
	SigningKey      string
	TokenExpiration int
	AuthScheme      string
	ContextKey      string
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return int(DefaultTokenTTL.Hours())
	}
	return c.TokenExpiration
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return "Bearer"
	}
	return c.AuthScheme
}

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

// NewConfigFromEnv builds a SimpleConfig from process environment:
// JWT_SECRET for the signing key and AUTH_TOKEN_EXPIRATION (hours) for the
// session lifetime.
func NewConfigFromEnv() SimpleConfig {
	cfg := SimpleConfig{
		SigningKey: os.Getenv("JWT_SECRET"),
	}

	if raw := os.Getenv("AUTH_TOKEN_EXPIRATION"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil {
			cfg.TokenExpiration = hours
		}
	}

	return cfg
}

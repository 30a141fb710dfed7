package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthSecret   = "AUTH_SECRET"
	EnvAuthTokenTTL = "AUTH_TOKEN_TTL"
	EnvAuthIssuer   = "AUTH_ISSUER"
)

// AuthConfig contains token signing configuration.
type AuthConfig struct {
	Secret   string `toml:"secret"`
	TokenTTL string `toml:"token_ttl"`
	Issuer   string `toml:"issuer"`
}

func (c *AuthConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "180m"
	}
	if c.Issuer == "" {
		c.Issuer = "pdf-chat"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Secret == "" {
		return errors.New("secret required")
	}
	ttl, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if ttl <= 0 {
		return errors.New("token_ttl must be positive")
	}
	return nil
}

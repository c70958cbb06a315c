// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig holds configuration for validating bearer tokens minted by the document store.
type JWTConfig struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER (optional) and JWT_LEEWAY_SECONDS (default: 30).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	leewayStr := os.Getenv("JWT_LEEWAY_SECONDS")
	if leewayStr == "" {
		leewayStr = "30" // default
	}

	leewaySeconds, err := strconv.Atoi(leewayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LEEWAY_SECONDS: %v", err)
	}

	config := &JWTConfig{
		Secret: secret,
		Issuer: os.Getenv("JWT_ISSUER"),
		Leeway: time.Duration(leewaySeconds) * time.Second,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.Leeway < 0 {
		return fmt.Errorf("JWT_LEEWAY_SECONDS must not be negative, got: %v", c.Leeway)
	}
	return nil
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
)

// SessionConfig holds configuration for signing session cookies.
type SessionConfig struct {
	Secret   string
	TTLHours int
	// Generated is true when no SESSION_SECRET was provided.
	Generated bool
}

// NewSessionConfig reads SESSION_SECRET from the environment. When it is
// unset a random secret is generated, so sessions do not survive a restart.
func NewSessionConfig(ttlHours int) (*SessionConfig, error) {
	config := &SessionConfig{
		Secret:   os.Getenv("SESSION_SECRET"),
		TTLHours: ttlHours,
	}

	if config.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		config.Secret = secret
		config.Generated = true
		log.Printf("[session] SESSION_SECRET not set; using a random secret, sessions will not survive a restart")
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *SessionConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters, got: %d", len(c.Secret))
	}
	if c.TTLHours < 1 {
		return fmt.Errorf("session TTL must be at least 1 hour, got: %d", c.TTLHours)
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionConfig_FromEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-long-enough-test-secret")

	cfg, err := NewSessionConfig(24)
	require.NoError(t, err)
	assert.Equal(t, "a-long-enough-test-secret", cfg.Secret)
	assert.Equal(t, 24, cfg.TTLHours)
	assert.False(t, cfg.Generated)
}

func TestNewSessionConfig_GeneratesSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	a, err := NewSessionConfig(1)
	require.NoError(t, err)
	b, err := NewSessionConfig(1)
	require.NoError(t, err)

	assert.True(t, a.Generated)
	assert.Len(t, a.Secret, 64)
	assert.NotEqual(t, a.Secret, b.Secret)
}

func TestNewSessionConfig_ShortSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "short")

	_, err := NewSessionConfig(24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 characters")
}

func TestNewSessionConfig_InvalidTTL(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-long-enough-test-secret")

	_, err := NewSessionConfig(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 hour")
}

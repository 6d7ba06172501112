package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig builds the limiter config from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled: true,
		Default: Rule{
			Limit:  env.int("RATE_LIMIT_DEFAULT_LIMIT", 1000),
			Window: env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		},
		Rules:         WizardRules(),
		Allow:         clientSet(getenv("RATE_LIMIT_ALLOW")),
		Deny:          clientSet(getenv("RATE_LIMIT_DENY")),
		IdleTTL:       env.duration("RATE_LIMIT_IDLE_TTL", time.Hour),
		SweepInterval: env.duration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
	}
}

type envReader func(string) string

func (e envReader) int(key string, def int) int {
	if n, err := strconv.Atoi(e(key)); err == nil {
		return n
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if b, err := strconv.ParseBool(e(key)); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e(key)); err == nil {
		return d
	}
	return def
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[addr] = true
		}
	}
	return set
}

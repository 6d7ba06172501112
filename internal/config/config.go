// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/internship-finder/internal/listings"
	"github.com/jonathan/internship-finder/internal/schemas"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultPort                = 8080
	DefaultCatalogPath         = "./job_listings.csv"
	DefaultUploadDir           = "uploads"
	DefaultApplicationsDir     = "applications"
	DefaultFetchTimeoutSeconds = 15
	DefaultSessionTTLHours     = 24
	DefaultMaxUploadMB         = 10
)

// Config is the application configuration. It is built once at startup and
// passed by pointer to the server and commands.
type Config struct {
	Port            int    `json:"port,omitempty"`
	CatalogPath     string `json:"catalog_path,omitempty"`     // CSV job catalog
	UploadDir       string `json:"upload_dir,omitempty"`       // Scratch space for uploaded resumes
	ApplicationsDir string `json:"applications_dir,omitempty"` // Created at startup, never written

	ListingSources      []string `json:"listing_sources,omitempty"`
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds,omitempty"`
	UseBrowser          bool     `json:"use_browser,omitempty"` // Render listing pages with headless Chrome

	DatabaseURL     string `json:"database_url,omitempty"` // Empty keeps sessions in memory
	SessionTTLHours int    `json:"session_ttl_hours,omitempty"`
	MaxUploadMB     int    `json:"max_upload_mb,omitempty"`
}

// Defaults returns a Config populated with built-in defaults.
func Defaults() Config {
	return Config{
		Port:                DefaultPort,
		CatalogPath:         DefaultCatalogPath,
		UploadDir:           DefaultUploadDir,
		ApplicationsDir:     DefaultApplicationsDir,
		ListingSources:      []string{listings.SourceInternshala},
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
		SessionTTLHours:     DefaultSessionTTLHours,
		MaxUploadMB:         DefaultMaxUploadMB,
	}
}

// LoadConfig loads configuration from a JSON file after checking it against
// the config schema. Returns an error if the file cannot be read, violates
// the schema, or cannot be parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("config file %s is invalid: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file
// at path, then environment overrides. CLI flags are applied by the caller.
func Load(path string) (*Config, error) {
	base := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		base = fileCfg
	}

	merged := base.MergeWithDefaults(Defaults())
	merged.ApplyEnv()
	return &merged, nil
}

// ApplyEnv overrides fields from PORT, CATALOG_PATH and DATABASE_URL when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	// Validate numeric ranges
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.SessionTTLHours < 0 {
		return fmt.Errorf("config error: 'session_ttl_hours' must be non-negative")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}

	for _, name := range c.ListingSources {
		if _, err := listings.Lookup(name, ""); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("config error: 'upload_dir' must not be empty")
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("config error: 'catalog_path' must not be empty")
	}
	if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
		return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if result.ApplicationsDir == "" {
		result.ApplicationsDir = defaults.ApplicationsDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.ListingSources) == 0 {
		result.ListingSources = append([]string(nil), defaults.ListingSources...)
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.SessionTTLHours == 0 {
		result.SessionTTLHours = defaults.SessionTTLHours
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FetchTimeout returns the listing fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Sources resolves the configured listing source names to their definitions.
func (c *Config) Sources() ([]listings.Source, error) {
	sources := make([]listings.Source, 0, len(c.ListingSources))
	for _, name := range c.ListingSources {
		src, err := listings.Lookup(name, "")
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

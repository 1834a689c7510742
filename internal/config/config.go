// Package config loads governance engine configuration.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/truai/governor/internal/model"
	"github.com/truai/governor/internal/routing"
)

// ProviderAPI holds credentials for the host-side inference client.
type ProviderAPI struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// Config holds all configurable engine parameters.
type Config struct {
	// AdminID is the single trusted administrator identity override
	// requests are compared against.
	AdminID string `yaml:"admin_id"`

	// AuditLogPath, when set, mirrors the trail to a hash-chained
	// JSONL file. AuditDBPath mirrors it to SQLite instead (or as
	// well).
	AuditLogPath string `yaml:"audit_log"`
	AuditDBPath  string `yaml:"audit_db"`

	// Providers overrides the static tier→provider table.
	Providers map[model.Tier]routing.Provider `yaml:"providers"`

	API ProviderAPI `yaml:"api"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		AdminID:   "admin",
		Providers: routing.DefaultProviders(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "truai-config.yaml")
	}
	return filepath.Join(home, ".truai", "config.yaml")
}

// Load reads configuration from a YAML file. Empty path falls back to
// the default location. A missing file returns defaults; invalid YAML
// returns an error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads configuration and returns the SHA-256 of the raw
// YAML bytes on disk. When no file exists (defaults used), the hash is
// the SHA-256 of empty input. The hash ends up in status snapshots so
// audit readers can tell which config governed a decision.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return DefaultConfig(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("config: read %s: %w", path, err)
	}

	// Start with defaults, YAML overwrites only specified fields.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.AdminID == "" {
		return nil, "", fmt.Errorf("config: admin_id must not be empty")
	}

	h := sha256.Sum256(data)
	return cfg, "sha256:" + hex.EncodeToString(h[:]), nil
}

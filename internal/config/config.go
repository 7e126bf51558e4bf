// Package config provides configuration management for gasnet.
//
// Config file locations (priority order):
//  1. $GASNET_CONFIG
//  2. ./gasnet.yaml
//  3. $XDG_CONFIG_HOME/gasnet/config.yaml
//  4. ~/.config/gasnet/config.yaml
//  5. /etc/gasnet/config.yaml
//
// Missing keys fall back to DefaultConfig. Command-line flags are applied on
// top by the caller.
package config

import (
	"fmt"
	"os"
	"slices"

	"gasnet/internal/domain"

	"gopkg.in/yaml.v3"
)

// Default values
const (
	DefaultDir        = "."
	DefaultSQLitePath = "./gasnet.db"
	DefaultAuditPath  = "logs.txt"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{Audit: AuditConfig{Path: DefaultAuditPath}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Backend:    BackendText,
			Dir:        DefaultDir,
			SQLitePath: DefaultSQLitePath,
		},
		Audit: AuditConfig{Path: DefaultAuditPath, Format: "text"},
		Log:   LogConfig{Level: "info", Format: "text"},
		Network: NetworkConfig{
			Diameters:         slices.Clone(domain.StandardDiametres),
			DefaultPipeLength: 1,
		},
	}
}

// applyDefaults fills in missing values with defaults. An explicitly empty
// audit path is kept: it disables the audit file.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	c.Storage.Backend = ParseBackend(string(c.Storage.Backend))
	if c.Storage.Dir == "" {
		c.Storage.Dir = DefaultDir
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = DefaultSQLitePath
	}
	if c.Audit.Format == "" {
		c.Audit.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if len(c.Network.Diameters) == 0 {
		c.Network.Diameters = slices.Clone(domain.StandardDiametres)
	}
	if c.Network.DefaultPipeLength == 0 {
		c.Network.DefaultPipeLength = 1
	}
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if !c.Storage.Backend.Valid() {
		return domain.NewValidationError("storage.backend", string(c.Storage.Backend), domain.ErrInvalidInput)
	}
	if c.Storage.KeepSnapshots < 0 {
		return domain.NewValidationError("storage.keep_snapshots", fmt.Sprint(c.Storage.KeepSnapshots), domain.ErrInvalidInput)
	}
	if !formats[c.Audit.Format] {
		return domain.NewValidationError("audit.format", c.Audit.Format, domain.ErrInvalidInput)
	}
	if !logLevels[c.Log.Level] {
		return domain.NewValidationError("log.level", c.Log.Level, domain.ErrInvalidInput)
	}
	if !formats[c.Log.Format] {
		return domain.NewValidationError("log.format", c.Log.Format, domain.ErrInvalidInput)
	}
	for _, d := range c.Network.Diameters {
		if d <= 0 {
			return domain.NewValidationError("network.diameters", fmt.Sprint(d), domain.ErrInvalidInput)
		}
	}
	if c.Network.DefaultPipeLength <= 0 {
		return domain.NewValidationError("network.default_pipe_length", fmt.Sprint(c.Network.DefaultPipeLength), domain.ErrInvalidInput)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Storage: %s", c.Storage.Backend)
	switch c.Storage.Backend {
	case BackendSQLite:
		summary += fmt.Sprintf(" (%s)", c.Storage.SQLitePath)
	default:
		summary += fmt.Sprintf(" (%s)", c.Storage.Dir)
	}
	if c.Audit.Path == "" {
		summary += ", audit: off"
	} else {
		summary += fmt.Sprintf(", audit: %s", c.Audit.Path)
	}
	summary += fmt.Sprintf(", log: %s/%s", c.Log.Level, c.Log.Format)
	return summary
}

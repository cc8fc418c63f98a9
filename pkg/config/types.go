package config

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Config represents the persistent inkwell configuration stored as
// config.toml in the .inkwell/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version  int            `toml:"version"`
	Backend  BackendConfig  `toml:"backend"`
	Web      WebConfig      `toml:"web"`
	Ask      AskConfig      `toml:"ask"`
	Registry RegistryConfig `toml:"registry"`
	Storage  StorageConfig  `toml:"storage"`
}

// BackendConfig points at the search/ask backend.
type BackendConfig struct {
	Target string `toml:"target,omitempty"`
}

// WebConfig holds settings for the browser skin served by "inkwell serve".
type WebConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// AskConfig holds defaults for AI questions.
type AskConfig struct {
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
	Limit    int    `toml:"limit,omitempty"`
	Stream   bool   `toml:"stream"`
}

// RegistryConfig points at the feed and model registry files. Empty paths
// resolve to feeds.yaml and models.yaml inside the .inkwell/ directory.
type RegistryConfig struct {
	FeedsPath  string `toml:"feeds_path,omitempty"`
	ModelsPath string `toml:"models_path,omitempty"`
}

// StorageConfig holds local storage settings.
type StorageConfig struct {
	SQLitePath string `toml:"sqlite_path,omitempty"`
}

// FeedsPath resolves the feed registry path against the .inkwell/ dir.
func (c *Config) FeedsPath(dotdirTarget string) string {
	if c.Registry.FeedsPath != "" {
		return c.Registry.FeedsPath
	}
	return filepath.Join(dotdirTarget, "feeds.yaml")
}

// ModelsPath resolves the model registry path against the .inkwell/ dir.
func (c *Config) ModelsPath(dotdirTarget string) string {
	if c.Registry.ModelsPath != "" {
		return c.Registry.ModelsPath
	}
	return filepath.Join(dotdirTarget, "models.yaml")
}

// HistoryPath resolves the ask history database path against the .inkwell/
// dir.
func (c *Config) HistoryPath(dotdirTarget string) string {
	if c.Storage.SQLitePath != "" {
		return c.Storage.SQLitePath
	}
	return filepath.Join(dotdirTarget, "history.db")
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter
// on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"backend.target": {
		get: func(c *Config) string { return c.Backend.Target },
		set: func(c *Config, v string) error { c.Backend.Target = v; return nil },
	},
	"web.listen": {
		get: func(c *Config) string { return c.Web.Listen },
		set: func(c *Config, v string) error { c.Web.Listen = v; return nil },
	},
	"ask.provider": {
		get: func(c *Config) string { return c.Ask.Provider },
		set: func(c *Config, v string) error { c.Ask.Provider = v; return nil },
	},
	"ask.model": {
		get: func(c *Config) string { return c.Ask.Model },
		set: func(c *Config, v string) error { c.Ask.Model = v; return nil },
	},
	"ask.limit": {
		get: func(c *Config) string {
			if c.Ask.Limit == 0 {
				return ""
			}
			return strconv.Itoa(c.Ask.Limit)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for ask.limit: %w", err)
			}
			if n <= 0 {
				return fmt.Errorf("ask.limit must be positive, got %d", n)
			}
			c.Ask.Limit = n
			return nil
		},
	},
	"ask.stream": {
		get: func(c *Config) string { return strconv.FormatBool(c.Ask.Stream) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for ask.stream: %w", err)
			}
			c.Ask.Stream = b
			return nil
		},
	},
	"registry.feeds_path": {
		get: func(c *Config) string { return c.Registry.FeedsPath },
		set: func(c *Config, v string) error { c.Registry.FeedsPath = v; return nil },
	},
	"registry.models_path": {
		get: func(c *Config) string { return c.Registry.ModelsPath },
		set: func(c *Config, v string) error { c.Registry.ModelsPath = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
}

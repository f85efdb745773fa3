// Package config loads the memo app's settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Default values for settings absent from the config file
	defaultSeedData      = true
	defaultAutoSave      = true
	defaultFetchOnSelect = true
	defaultWatch         = false
)

// Config holds the application settings.
type Config struct {
	// SeedData fills an empty collection with fixture memos on startup.
	SeedData bool `yaml:"seed_data"`

	// AutoSave persists the content buffer to the selected memo after
	// every edit.
	AutoSave bool `yaml:"auto_save"`

	// FetchOnSelect loads a memo's stored body after it is selected.
	FetchOnSelect bool `yaml:"fetch_on_select"`

	// Store configures where memos are kept.
	Store StoreConfig `yaml:"store"`
}

// StoreConfig configures memo persistence.
type StoreConfig struct {
	// Path to the JSON memo file. Empty keeps memos in memory only.
	Path string `yaml:"path"`

	// Watch reloads the collection when the file changes on disk.
	Watch bool `yaml:"watch"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SeedData:      defaultSeedData,
		AutoSave:      defaultAutoSave,
		FetchOnSelect: defaultFetchOnSelect,
		Store: StoreConfig{
			Watch: defaultWatch,
		},
	}
}

// DefaultPath returns ~/.memo/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".memo", "config.yaml"), nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Store.Watch && c.Store.Path == "" {
		return fmt.Errorf("store.watch requires store.path to be set")
	}

	if c.Store.Path != "" {
		info, err := os.Stat(c.Store.Path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store path error: %w", err)
		}
		if err == nil && info.IsDir() {
			return fmt.Errorf("store path '%s' is a directory", c.Store.Path)
		}
	}

	return nil
}

// Package config handles configuration loading and validation for redline.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/redline/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	TUI     TUIConfig     `yaml:"tui"`
	Align   AlignConfig   `yaml:"align"`
	History HistoryConfig `yaml:"history"`
	Keys    KeysConfig    `yaml:"keys"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// HideUnchanged collapses runs of SAME words in the detail pane.
	HideUnchanged bool `yaml:"hide_unchanged"`
}

// AlignConfig bounds the cost of word alignment.
type AlignConfig struct {
	MaxTokens int `yaml:"max_tokens"` // per text; 0 disables the cap
	MemoSize  int `yaml:"memo_size"`
}

// HistoryConfig controls the imported report history.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// KeysConfig overrides the triage navigation keys.
type KeysConfig struct {
	Next     []string `yaml:"next"`
	Previous []string `yaml:"previous"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
		Align: AlignConfig{
			MaxTokens: 2000,
			MemoSize:  256,
		},
		History: HistoryConfig{
			MaxEntries: 50,
		},
		Keys: KeysConfig{
			Next:     []string{"alt+down"},
			Previous: []string{"alt+up"},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Align.MemoSize == 0 {
		c.Align.MemoSize = defaults.Align.MemoSize
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
	if len(c.Keys.Next) == 0 {
		c.Keys.Next = defaults.Keys.Next
	}
	if len(c.Keys.Previous) == 0 {
		c.Keys.Previous = defaults.Keys.Previous
	}
}

// HistoryFile returns the path to the report history JSON file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.json")
}

// Package config loads SHJI host configuration.
//
// Sources are layered with koanf. From lowest to highest precedence:
// built-in defaults, shji.yaml, SHJI_* environment variables, and flags that
// were set explicitly on the command line.
package config

import (
	"fmt"
	"time"

	"github.com/janelang/shji/internal/cli/output"
)

// Default configuration values.
const (
	DefaultPrompt         = "jn> "
	DefaultContinuePrompt = "..> "
	DefaultColor          = output.ColorAuto
	DefaultWatchDebounce  = 100 * time.Millisecond
	DefaultHistoryName    = ".shji_history"
	EnvPrefix             = "SHJI_"
)

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"shji.yaml", "shji.yml"}

// Config holds all host configuration options.
type Config struct {
	Prompt         string           `koanf:"prompt"`
	ContinuePrompt string           `koanf:"continue_prompt"`
	Debug          bool             `koanf:"debug"`
	Color          output.ColorMode `koanf:"color"`
	HistoryFile    string           `koanf:"history_file"`
	// Transcript is the SQLite path evaluations are recorded to; empty disables it.
	Transcript    string        `koanf:"transcript"`
	Verbose       bool          `koanf:"verbose"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:         DefaultPrompt,
		ContinuePrompt: DefaultContinuePrompt,
		Color:          DefaultColor,
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// Validate checks values that decoding alone cannot reject.
func (c *Config) Validate() error {
	if c.Prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if c.ContinuePrompt == "" {
		return fmt.Errorf("continue_prompt must not be empty")
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// TranscriptEnabled reports whether evaluations should be recorded.
func (c *Config) TranscriptEnabled() bool {
	return c.Transcript != ""
}

// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kestrelworks/parley/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parley configuration.
type Config struct {
	// Version of the config schema.
	Version string `toml:"version" json:"version"`

	// DataDir is where chat snapshots are stored (default: ~/.parley).
	DataDir string `toml:"data_dir" json:"data_dir"`

	// Assistant holds the remote text-generation endpoint settings.
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui" json:"ui"`
}

// AssistantConfig contains the remote AI endpoint configuration.
type AssistantConfig struct {
	// Endpoint is the text-generation inference URL. Empty means the
	// assistant is not configured; sends to AI chats then produce a fixed
	// error message instead of a network call.
	Endpoint string `toml:"endpoint" json:"endpoint"`

	// Token is the bearer credential for the endpoint.
	Token string `toml:"token" json:"token"`

	// TimeoutSecs bounds each generation request. An unbounded call could
	// leave a chat's typing indicator stuck forever.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// MaxNewTokens caps the generated completion length.
	MaxNewTokens int `toml:"max_new_tokens" json:"max_new_tokens"`

	// Temperature is the sampling temperature.
	Temperature float64 `toml:"temperature" json:"temperature"`

	// TypingDelay enables the paced reveal of replies (30ms per character,
	// capped at 2s). Disabled in tests.
	TypingDelay bool `toml:"typing_delay" json:"typing_delay"`

	// RequestsPerMinute limits outbound generation calls. Zero disables the
	// limiter.
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`

	// SidebarWidth is the chat list width in columns.
	SidebarWidth int `toml:"sidebar_width" json:"sidebar_width"`

	// RenderMarkdown renders assistant replies through a terminal markdown
	// renderer instead of plain text.
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown"`
}

// Timeout returns the assistant request timeout as a duration.
func (a AssistantConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// Configured reports whether both the endpoint and the credential are set.
// Checked before any network call is attempted.
func (a AssistantConfig) Configured() bool {
	return a.Endpoint != "" && a.Token != ""
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Assistant: AssistantConfig{
			Endpoint:          "",
			Token:             "",
			TimeoutSecs:       30,
			MaxNewTokens:      200,
			Temperature:       0.7,
			TypingDelay:       true,
			RequestsPerMinute: 30,
		},

		UI: UIConfig{
			Theme:          "dark",
			SidebarWidth:   32,
			RenderMarkdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the parley configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".parley"), nil
}

// PathTOML returns the path to the TOML config file.
func PathTOML() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path to the JSON config file.
func PathJSON() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults. Environment
// overrides are applied last. A broken config file is reported but never
// fatal; the defaults still come back usable.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if path, err := PathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if path, err := PathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadJSON(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finish applies env overrides, defaults and validation to a loaded config.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. JSON when the path ends in .json, TOML otherwise.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions;
// the file carries the bearer token.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# parley configuration file")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns the first error found.
func (c *Config) Validate() error {
	if c.Assistant.Endpoint != "" {
		u, err := url.Parse(c.Assistant.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{
				Field:   "assistant.endpoint",
				Message: fmt.Sprintf("invalid URL %q", c.Assistant.Endpoint),
			}
		}
	}

	if c.Assistant.TimeoutSecs < 0 {
		return ValidationError{Field: "assistant.timeout_secs", Message: "must be non-negative"}
	}
	if c.Assistant.MaxNewTokens < 0 {
		return ValidationError{Field: "assistant.max_new_tokens", Message: "must be non-negative"}
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return ValidationError{Field: "assistant.temperature", Message: "must be between 0.0 and 2.0"}
	}
	if c.Assistant.RequestsPerMinute < 0 {
		return ValidationError{Field: "assistant.requests_per_minute", Message: "must be non-negative"}
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light":
	default:
		return ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: dark, light", c.UI.Theme),
		}
	}

	return nil
}

// SetDefaults fills in any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.DataDir == "" {
		if dir, err := Dir(); err == nil {
			c.DataDir = dir
		}
	}
	if c.Assistant.TimeoutSecs == 0 {
		c.Assistant.TimeoutSecs = defaults.Assistant.TimeoutSecs
	}
	if c.Assistant.MaxNewTokens == 0 {
		c.Assistant.MaxNewTokens = defaults.Assistant.MaxNewTokens
	}
	if c.Assistant.Temperature == 0 {
		c.Assistant.Temperature = defaults.Assistant.Temperature
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PARLEY_ENDPOINT: overrides assistant.endpoint
//   - PARLEY_TOKEN: overrides assistant.token
//   - PARLEY_DATA_DIR: overrides data_dir
//   - PARLEY_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("PARLEY_ENDPOINT"); endpoint != "" {
		c.Assistant.Endpoint = endpoint
	}
	if token := os.Getenv("PARLEY_TOKEN"); token != "" {
		c.Assistant.Token = token
	}
	if dir := os.Getenv("PARLEY_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if theme := os.Getenv("PARLEY_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// String returns a representation of the config for debugging with the
// bearer token redacted.
func (c *Config) String() string {
	safe := *c
	if safe.Assistant.Token != "" {
		safe.Assistant.Token = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(&safe, "", "  ")
	return string(data)
}

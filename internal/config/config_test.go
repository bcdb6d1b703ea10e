// Copyright (c) 2025 Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30, cfg.Assistant.TimeoutSecs)
	assert.Equal(t, 200, cfg.Assistant.MaxNewTokens)
	assert.InDelta(t, 0.7, cfg.Assistant.Temperature, 0.001)
	assert.True(t, cfg.Assistant.TypingDelay)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.False(t, cfg.Assistant.Configured(), "defaults should not be configured")
}

func TestAssistantConfig_Configured(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		token    string
		want     bool
	}{
		{"both set", "https://example.com/generate", "hf_abc", true},
		{"missing token", "https://example.com/generate", "", false},
		{"missing endpoint", "", "hf_abc", false},
		{"neither", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := AssistantConfig{Endpoint: tc.endpoint, Token: tc.token}
			assert.Equal(t, tc.want, a.Configured())
		})
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1.0.0"

[assistant]
endpoint = "https://api.example.com/models/test"
token = "hf_testtoken"
timeout_secs = 10

[ui]
theme = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/models/test", cfg.Assistant.Endpoint)
	assert.Equal(t, "hf_testtoken", cfg.Assistant.Token)
	assert.Equal(t, 10, cfg.Assistant.TimeoutSecs)
	assert.Equal(t, "light", cfg.UI.Theme)
	// Unset fields are filled from defaults.
	assert.Equal(t, 200, cfg.Assistant.MaxNewTokens)
	assert.True(t, cfg.Assistant.Configured())
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"assistant": {"endpoint": "https://api.example.com/gen", "token": "tok"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/gen", cfg.Assistant.Endpoint)
}

func TestLoadFromPath_InvalidTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"sepia\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestValidate_BadEndpoint(t *testing.T) {
	cfg := Default()
	cfg.SetDefaults()
	cfg.Assistant.Endpoint = "not a url"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant.endpoint")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_ENDPOINT", "https://env.example.com/generate")
	t.Setenv("PARLEY_TOKEN", "env-token")
	t.Setenv("PARLEY_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://env.example.com/generate", cfg.Assistant.Endpoint)
	assert.Equal(t, "env-token", cfg.Assistant.Token)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Assistant.Endpoint = "https://api.example.com/generate"
	cfg.Assistant.Token = "secret"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file carries the token")

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Assistant.Endpoint, loaded.Assistant.Endpoint)
	assert.Equal(t, cfg.Assistant.Token, loaded.Assistant.Token)
}

func TestString_RedactsToken(t *testing.T) {
	cfg := Default()
	cfg.Assistant.Token = "very-secret-token"

	s := cfg.String()
	assert.NotContains(t, s, "very-secret-token")
	assert.Contains(t, s, "[REDACTED]")
}

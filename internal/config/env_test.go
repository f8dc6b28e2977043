// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownEnvVars = []string{
	"CONFIG",
	"APP_ENV", "APP_ENCRYPTION_KEY", "APP_KEY_DERIVATION", "APP_SENSITIVE_FIELDS",
	"APP_LOG_LEVEL", "APP_LOG_FILE",
	"ADAPTER_ADDRESS", "ADAPTER_SITE_ORIGIN", "ADAPTER_REQUEST_TIMEOUT", "ADAPTER_SEND_CREDENTIALS",
	"STORAGE_DRIVER", "STORAGE_DSN",
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.toml",

		"APP_ENV":              "production",
		"APP_ENCRYPTION_KEY":   "shared-secret",
		"APP_KEY_DERIVATION":   "hkdf",
		"APP_SENSITIVE_FIELDS": "password,phone",
		"APP_LOG_LEVEL":        "warn",
		"APP_LOG_FILE":         "/var/log/campus.log",

		"ADAPTER_ADDRESS":          "https://api.example.ac.id/api",
		"ADAPTER_SITE_ORIGIN":      "https://archive.example.ac.id",
		"ADAPTER_REQUEST_TIMEOUT":  "45s",
		"ADAPTER_SEND_CREDENTIALS": "false",

		"STORAGE_DRIVER": "bolt",
		"STORAGE_DSN":    "/tmp/session.bolt",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.toml", cfg.FilePath)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "shared-secret", cfg.App.EncryptionKey)
	assert.Equal(t, "hkdf", cfg.App.KeyDerivation)
	assert.Equal(t, []string{"password", "phone"}, cfg.App.SensitiveFields)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "/var/log/campus.log", cfg.App.LogFile)

	assert.Equal(t, "https://api.example.ac.id/api", cfg.Adapter.Address)
	assert.Equal(t, "https://archive.example.ac.id", cfg.Adapter.SiteOrigin)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	require.NotNil(t, cfg.Adapter.SendCredentials)
	assert.False(t, *cfg.Adapter.SendCredentials)

	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/session.bolt", cfg.Storage.DSN)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "", cfg.FilePath)
	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Adapter{}, cfg.Adapter)
	assert.Equal(t, Storage{}, cfg.Storage)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "invalid_duration"})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"minutes", "2m", 2 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"milliseconds", "1500ms", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": tt.envValue})

			cfg := &StructuredConfig{}
			require.NoError(t, parseEnv(cfg))
			assert.Equal(t, tt.expected, cfg.Adapter.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range knownEnvVars {
		// t.Setenv registers the restore, Unsetenv removes it for the test
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBaseURL_Set tests the Set method of BaseURL
func TestBaseURL_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		errorMsg    string
		expected    string
	}{
		{
			name:     "development url",
			input:    "http://localhost:8000/api",
			expected: "http://localhost:8000/api",
		},
		{
			name:     "trailing slash trimmed",
			input:    "https://archive.example.ac.id/api/",
			expected: "https://archive.example.ac.id/api",
		},
		{
			name:        "host:port without scheme",
			input:       "localhost:8000",
			expectError: true,
			errorMsg:    "need an absolute http:// or https:// URL",
		},
		{
			name:        "unsupported scheme",
			input:       "ftp://archive.example.ac.id",
			expectError: true,
			errorMsg:    "need an absolute http:// or https:// URL",
		},
		{
			name:        "no host",
			input:       "http:///api",
			expectError: true,
			errorMsg:    "url has no host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &BaseURL{}
			err := u.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u.String())
			assert.Equal(t, "url", u.Type())
		})
	}
}

// TestParseFlags tests the parseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-c", "/path/to/config.json",
				"--env", "production",
				"-a", "https://api.example.ac.id/api",
				"--site-origin", "https://archive.example.ac.id",
				"--request-timeout", "10s",
				"--send-credentials=false",
				"--encryption-key", "shared-secret",
				"--key-derivation", "hkdf",
				"--sensitive-fields", "password,student_id",
				"--log-level", "info",
				"--log-file", "/tmp/campus.log",
				"--storage-driver", "memory",
				"-d", "/tmp/session.db",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.FilePath)
				assert.Equal(t, "production", cfg.App.Env)
				assert.Equal(t, "https://api.example.ac.id/api", cfg.Adapter.Address)
				assert.Equal(t, "https://archive.example.ac.id", cfg.Adapter.SiteOrigin)
				assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
				require.NotNil(t, cfg.Adapter.SendCredentials)
				assert.False(t, *cfg.Adapter.SendCredentials)
				assert.Equal(t, "shared-secret", cfg.App.EncryptionKey)
				assert.Equal(t, "hkdf", cfg.App.KeyDerivation)
				assert.Equal(t, []string{"password", "student_id"}, cfg.App.SensitiveFields)
				assert.Equal(t, "info", cfg.App.LogLevel)
				assert.Equal(t, "/tmp/campus.log", cfg.App.LogFile)
				assert.Equal(t, "memory", cfg.Storage.Driver)
				assert.Equal(t, "/tmp/session.db", cfg.Storage.DSN)
			},
		},
		{
			name: "config long flag",
			args: []string{"--config", "/path/to/config.toml"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.toml", cfg.FilePath)
			},
		},
		{
			name: "no flags leaves defaults out",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newTestFlagSet(t, tt.args...))
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestRegisterFlags_RejectsInvalidAddress verifies that the address flag
// validates its value at parse time.
func TestRegisterFlags_RejectsInvalidAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)

	err := fs.Parse([]string{"-a", "localhost:8000"})
	assert.Error(t, err)
}

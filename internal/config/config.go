// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the raw configuration container populated from each
// source before defaults are applied.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: environment, encryption and
	// logging.
	App App `envPrefix:"APP_"`

	// Adapter holds settings of the outbound API transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage selects the local storage backend that keeps the session.
	Storage Storage `envPrefix:"STORAGE_"`

	// FilePath is the optional path to a JSON or TOML configuration file.
	// Populated via the CONFIG environment variable or the -c / --config
	// flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Env is "development" or "production" and selects the default API
	// base URL.
	// Env: APP_ENV
	Env string `env:"ENV"`

	// EncryptionKey is the secret shared with the backend for field-level
	// encryption of sensitive request fields.
	// Env: APP_ENCRYPTION_KEY
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	// KeyDerivation is "legacy" (default) or "hkdf".
	// Env: APP_KEY_DERIVATION
	KeyDerivation string `env:"KEY_DERIVATION"`

	// SensitiveFields overrides the list of top-level JSON fields that are
	// encrypted before sending.
	// Env: APP_SENSITIVE_FIELDS (comma separated)
	SensitiveFields []string `env:"SENSITIVE_FIELDS" envSeparator:","`

	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds configuration of the API transport.
type Adapter struct {
	// Address is the full API base URL (e.g. "https://archive.example.ac.id/api").
	// When set it overrides the environment-derived default.
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// SiteOrigin is the origin the production deployment is served from.
	// The production base URL is SiteOrigin + "/api".
	// Env: ADAPTER_SITE_ORIGIN
	SiteOrigin string `env:"SITE_ORIGIN"`

	// RequestTimeout is the deadline of a single API call (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SendCredentials enables the cookie jar so cookies set by the backend
	// are sent back on later calls. Nil means unset.
	// Env: ADAPTER_SEND_CREDENTIALS
	SendCredentials *bool `env:"SEND_CREDENTIALS"`
}

// Storage selects the backend of the local session storage.
type Storage struct {
	// Driver is "sqlite" (default), "bolt" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the database file path for the sqlite and bolt drivers.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// GetStructuredConfig loads and merges the raw configuration from flags
// (when fs is not nil), environment variables and the optional config file.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs).
		withEnv().
		withFile().
		build()
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/campus-archive/internal/crypto"
)

// Application environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

const (
	// DevelopmentBaseURL is the API base URL used in development.
	DevelopmentBaseURL = "http://localhost:8000/api"

	// APIPath is appended to the site origin in production.
	APIPath = "/api"

	// DefaultRequestTimeout is the per-call timeout when none is configured.
	DefaultRequestTimeout = 30 * time.Second

	// FallbackEncryptionKey is used when no encryption secret is configured.
	// It matches the backend's built-in default and must not be relied on
	// outside development.
	FallbackEncryptionKey = "campus-archive-secret-key-2024"

	appDirName = "campus-archive"
)

// ClientApp holds resolved application settings.
type ClientApp struct {
	// Env is EnvDevelopment or EnvProduction.
	Env string
	// EncryptionKey is the shared secret for field encryption.
	EncryptionKey string
	// UsesFallbackKey reports that EncryptionKey is FallbackEncryptionKey
	// because nothing was configured.
	UsesFallbackKey bool
	// KeyDerivation selects how EncryptionKey becomes the AES key.
	KeyDerivation crypto.KeyDerivation
	// SensitiveFields are the top-level JSON fields encrypted before sending.
	SensitiveFields []string
	LogLevel        string
	LogFile         string
}

// ClientAdapter holds resolved transport settings.
type ClientAdapter struct {
	// BaseURL is the absolute API base URL, without a trailing slash.
	BaseURL string
	// RequestTimeout is the deadline of each API call.
	RequestTimeout time.Duration
	// SendCredentials enables the cookie jar.
	SendCredentials bool
}

// ClientStorage holds resolved local storage settings.
type ClientStorage struct {
	// Driver is one of DriverSQLite, DriverBolt or DriverMemory.
	Driver string
	// DSN is the database file path. Empty for DriverMemory.
	DSN string
}

// ClientConfig is the resolved configuration of the client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
}

// GetClientConfig loads the raw configuration (flags from fs, which may be
// nil, then environment, then config file), applies defaults and validates
// the result.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig resolves cfg into a validated ClientConfig.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Env:             strings.ToLower(cfg.App.Env),
			EncryptionKey:   cfg.App.EncryptionKey,
			KeyDerivation:   crypto.KeyDerivation(strings.ToLower(cfg.App.KeyDerivation)),
			SensitiveFields: cfg.App.SensitiveFields,
			LogLevel:        cfg.App.LogLevel,
			LogFile:         cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			RequestTimeout:  cfg.Adapter.RequestTimeout,
			SendCredentials: true,
		},
		Storage: ClientStorage{
			Driver: strings.ToLower(cfg.Storage.Driver),
			DSN:    cfg.Storage.DSN,
		},
	}

	app := &clientCfg.App
	if app.Env == "" {
		app.Env = EnvDevelopment
	}
	if app.EncryptionKey == "" {
		app.EncryptionKey = FallbackEncryptionKey
		app.UsesFallbackKey = true
	}
	if app.KeyDerivation == "" {
		app.KeyDerivation = crypto.KeyDerivationLegacy
	}
	if len(app.SensitiveFields) == 0 {
		app.SensitiveFields = append([]string(nil), crypto.DefaultSensitiveFields...)
	}

	adapter := &clientCfg.Adapter
	adapter.BaseURL = resolveBaseURL(app.Env, cfg.Adapter)
	if adapter.RequestTimeout == 0 {
		adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.SendCredentials != nil {
		adapter.SendCredentials = *cfg.Adapter.SendCredentials
	}

	storage := &clientCfg.Storage
	if storage.Driver == "" {
		storage.Driver = DriverSQLite
	}
	if storage.DSN == "" && storage.Driver != DriverMemory {
		storage.DSN = defaultDSN(storage.Driver)
	}

	return clientCfg, clientCfg.validate()
}

// resolveBaseURL picks the explicit address, or the development URL, or
// the production site origin joined with APIPath.
func resolveBaseURL(env string, adapter Adapter) string {
	if adapter.Address != "" {
		return strings.TrimRight(adapter.Address, "/")
	}

	switch env {
	case EnvDevelopment:
		return DevelopmentBaseURL
	case EnvProduction:
		if adapter.SiteOrigin == "" {
			return ""
		}
		return strings.TrimRight(adapter.SiteOrigin, "/") + APIPath
	}

	return ""
}

func defaultDSN(driver string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	name := "session.db"
	if driver == DriverBolt {
		name = "session.bolt"
	}

	return filepath.Join(dir, appDirName, name)
}

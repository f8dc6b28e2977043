package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig          = "config"
	FlagEnv             = "env"
	FlagAddress         = "address"
	FlagSiteOrigin      = "site-origin"
	FlagRequestTimeout  = "request-timeout"
	FlagSendCredentials = "send-credentials"
	FlagEncryptionKey   = "encryption-key"
	FlagKeyDerivation   = "key-derivation"
	FlagSensitiveFields = "sensitive-fields"
	FlagLogLevel        = "log-level"
	FlagLogFile         = "log-file"
	FlagStorageDriver   = "storage-driver"
	FlagStorageDSN      = "dsn"
)

// BaseURL is an absolute http(s) URL. It implements the pflag.Value
// interface.
type BaseURL struct {
	raw string
}

// String returns the URL as given to Set, without a trailing slash.
func (u *BaseURL) String() string {
	return u.raw
}

// Set validates s as an absolute http or https URL.
func (u *BaseURL) Set(s string) error {
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("need an absolute http:// or https:// URL")
	}
	if parsed.Host == "" {
		return errors.New("url has no host")
	}

	u.raw = strings.TrimRight(s, "/")
	return nil
}

// Type implements pflag.Value.
func (u *BaseURL) Type() string {
	return "url"
}

// RegisterFlags adds the configuration flags to fs. They are read back by
// GetClientConfig.
//
// Flags:
//
//	-c/--config          config file path (JSON or TOML)
//	--env                development or production
//	-a/--address         API base URL, overrides the environment default
//	--site-origin        origin of the production deployment
//	--request-timeout    per-call timeout (e.g. "30s")
//	--send-credentials   keep and resend cookies
//	--encryption-key     shared secret for field encryption
//	--key-derivation     legacy or hkdf
//	--sensitive-fields   fields encrypted before sending
//	--log-level          zerolog level
//	--log-file           log file path
//	--storage-driver     sqlite, bolt or memory
//	-d/--dsn             local storage file path
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "config file path (JSON or TOML)")
	fs.String(FlagEnv, "", "application environment: development or production")
	fs.VarP(&BaseURL{}, FlagAddress, "a", "API base URL, overrides the environment default")
	fs.Var(&BaseURL{}, FlagSiteOrigin, "origin of the production deployment")
	fs.Duration(FlagRequestTimeout, 0, "per-call request timeout (e.g. 30s)")
	fs.Bool(FlagSendCredentials, true, "keep cookies set by the backend and send them back")
	fs.String(FlagEncryptionKey, "", "secret shared with the backend for field encryption")
	fs.String(FlagKeyDerivation, "", "key derivation: legacy or hkdf")
	fs.StringSlice(FlagSensitiveFields, nil, "JSON fields encrypted before sending")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(FlagLogFile, "", "log file path")
	fs.String(FlagStorageDriver, "", "local storage driver: sqlite, bolt or memory")
	fs.StringP(FlagStorageDSN, "d", "", "local storage file path")
}

// parseFlags converts the flags of fs that were set explicitly into a
// StructuredConfig. Flags left at their defaults do not contribute, so that
// lower-priority sources can still fill them.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var errs []error

	str := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	str(FlagConfig, &cfg.FilePath)
	str(FlagEnv, &cfg.App.Env)
	str(FlagEncryptionKey, &cfg.App.EncryptionKey)
	str(FlagKeyDerivation, &cfg.App.KeyDerivation)
	str(FlagLogLevel, &cfg.App.LogLevel)
	str(FlagLogFile, &cfg.App.LogFile)
	str(FlagAddress, &cfg.Adapter.Address)
	str(FlagSiteOrigin, &cfg.Adapter.SiteOrigin)
	str(FlagStorageDriver, &cfg.Storage.Driver)
	str(FlagStorageDSN, &cfg.Storage.DSN)

	if f := fs.Lookup(FlagRequestTimeout); f != nil && f.Changed {
		timeout, err := fs.GetDuration(FlagRequestTimeout)
		errs = append(errs, err)
		cfg.Adapter.RequestTimeout = timeout
	}
	if f := fs.Lookup(FlagSendCredentials); f != nil && f.Changed {
		send, err := fs.GetBool(FlagSendCredentials)
		errs = append(errs, err)
		cfg.Adapter.SendCredentials = &send
	}
	if f := fs.Lookup(FlagSensitiveFields); f != nil && f.Changed {
		fields, err := fs.GetStringSlice(FlagSensitiveFields)
		errs = append(errs, err)
		cfg.App.SensitiveFields = fields
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return cfg, nil
}

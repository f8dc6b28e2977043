// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/campus-archive/internal/crypto"
)

// validate checks the raw merged [StructuredConfig]. Only values that no
// later default can repair are rejected here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.App.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Env)
	}

	switch cfg.App.KeyDerivation {
	case crypto.KeyDerivationLegacy, crypto.KeyDerivationHKDF:
	default:
		return fmt.Errorf("%w: unknown key derivation %q", ErrInvalidAppConfigs, cfg.App.KeyDerivation)
	}

	if cfg.Adapter.BaseURL == "" {
		return fmt.Errorf("%w: no API address (set ADAPTER_ADDRESS or ADAPTER_SITE_ORIGIN)", ErrInvalidAdapterConfigs)
	}
	u, err := url.Parse(cfg.Adapter.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: invalid API address %q", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverBolt:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	return nil
}

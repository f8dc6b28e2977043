package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// StructuredFileConfig is the on-disk layout of a config file. The same
// layout is accepted as JSON and TOML.
type StructuredFileConfig struct {
	App struct {
		Env             string   `json:"env" toml:"env"`
		EncryptionKey   string   `json:"encryption_key" toml:"encryption_key"`
		KeyDerivation   string   `json:"key_derivation" toml:"key_derivation"`
		SensitiveFields []string `json:"sensitive_fields" toml:"sensitive_fields"`
		LogLevel        string   `json:"log_level" toml:"log_level"`
		LogFile         string   `json:"log_file" toml:"log_file"`
	} `json:"app,omitempty" toml:"app"`

	Adapter struct {
		Address         string   `json:"address" toml:"address"`
		SiteOrigin      string   `json:"site_origin" toml:"site_origin"`
		RequestTimeout  Duration `json:"request_timeout" toml:"request_timeout"`
		SendCredentials *bool    `json:"send_credentials" toml:"send_credentials"`
	} `json:"adapter,omitempty" toml:"adapter"`

	Storage struct {
		Driver string `json:"driver" toml:"driver"`
		DSN    string `json:"dsn" toml:"dsn"`
	} `json:"storage,omitempty" toml:"storage"`
}

func parseFile(path string) (*StructuredConfig, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(path)
	}
	return parseJSON(path)
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var fileCfg StructuredFileConfig
	if err := json.NewDecoder(jsonFile).Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fileCfg.toStructured(), nil
}

func parseTOML(tomlFilePath string) (*StructuredConfig, error) {
	var fileCfg StructuredFileConfig
	if _, err := toml.DecodeFile(tomlFilePath, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding toml configs: %w", err)
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:             f.App.Env,
			EncryptionKey:   f.App.EncryptionKey,
			KeyDerivation:   f.App.KeyDerivation,
			SensitiveFields: f.App.SensitiveFields,
			LogLevel:        f.App.LogLevel,
			LogFile:         f.App.LogFile,
		},
		Adapter: Adapter{
			Address:         f.Adapter.Address,
			SiteOrigin:      f.Adapter.SiteOrigin,
			RequestTimeout:  time.Duration(f.Adapter.RequestTimeout),
			SendCredentials: f.Adapter.SendCredentials,
		},
		Storage: Storage{
			Driver: f.Storage.Driver,
			DSN:    f.Storage.DSN,
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and TOML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

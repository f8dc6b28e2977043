// Package config provides configuration loading, merging, and validation
// facilities for the campus archive client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for fields they set):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (JSON, or TOML when the file ends in ".toml")
//
// The main entry point is [GetClientConfig], which resolves defaults
// (API base URL, timeouts, storage location, encryption secret) and returns
// a validated [ClientConfig].
package config

package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newTestFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a field set by an earlier source
// is not overwritten by a later one, while unset fields are filled.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Env: EnvProduction}},
		&StructuredConfig{App: App{Env: EnvDevelopment, EncryptionKey: "from-file"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.Equal(t, "from-file", cfg.App.EncryptionKey)
}

// TestBuild_KeepsExplicitFalse verifies that an explicit false for
// SendCredentials survives merging.
func TestBuild_KeepsExplicitFalse(t *testing.T) {
	off, on := false, true
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{SendCredentials: &off}},
		&StructuredConfig{Adapter: Adapter{SendCredentials: &on}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	require.NotNil(t, cfg.Adapter.SendCredentials)
	assert.False(t, *cfg.Adapter.SendCredentials)
}

// TestBuild_RejectsNegativeTimeout verifies raw validation.
func TestBuild_RejectsNegativeTimeout(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RequestTimeout: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ADAPTER_SITE_ORIGIN", "https://archive.example.ac.id")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "production", b.configs[0].App.Env)
	assert.Equal(t, "https://archive.example.ac.id", b.configs[0].Adapter.SiteOrigin)
}

// TestWithEnv_SetsErrorOnBadValue verifies that an unparsable variable
// is recorded on the builder.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_NilFlagSet verifies that a nil flag set is skipped.
func TestWithFlags_NilFlagSet(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Empty(t, b.configs)
}

// TestWithFlags_AppendsOneConfig verifies that parsed flags are appended.
func TestWithFlags_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags(newTestFlagSet(t, "--env", "production"))

	require.Len(t, b.configs, 1)
	assert.Equal(t, "production", b.configs[0].App.Env)
}

// ── withFile ──────────────────────────────────────────────────────────────────

// TestWithFile_NoOp_WhenNoPathSet verifies that withFile does nothing when
// no config names a file.
func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithFile_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithFile_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredFileConfig{}
	payload.App.Env = "production"
	payload.Storage.Driver = "bolt"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "production", b.configs[1].App.Env)
	assert.Equal(t, "bolt", b.configs[1].Storage.Driver)
}

// TestWithFile_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{FilePath: "/nonexistent/config.json"})
	b.withFile()

	assert.Error(t, b.err)
}

// TestWithFile_UsesFirstPath verifies that the highest-priority source
// naming a file wins.
func TestWithFile_UsesFirstPath(t *testing.T) {
	first := StructuredFileConfig{}
	first.App.LogLevel = "warn"
	second := StructuredFileConfig{}
	second.App.LogLevel = "debug"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{FilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{FilePath: writeTempJSONConfig(t, second)},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "warn", b.configs[2].App.LogLevel)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_FlagsOverrideEnvAndFile verifies the full
// priority chain.
func TestGetStructuredConfig_FlagsOverrideEnvAndFile(t *testing.T) {
	clearEnvVars(t)

	payload := StructuredFileConfig{}
	payload.App.Env = "development"
	payload.App.LogLevel = "error"
	payload.Storage.Driver = "bolt"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("APP_LOG_LEVEL", "info")
	t.Setenv("CONFIG", path)

	cfg, err := GetStructuredConfig(newTestFlagSet(t, "--env", "production"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
}

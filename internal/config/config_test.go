package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/pagination"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts", cfg.API.BaseURL)
	assert.Equal(t, pagination.DefaultPageSize, cfg.API.PageSize)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, config.DefaultScrollThreshold, cfg.View.ScrollThreshold)
	assert.False(t, cfg.View.ResetOnLoad)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "empty base url", mutate: func(c *config.Config) { c.API.BaseURL = " " }, wantErr: config.ErrEmptyBaseURL},
		{name: "relative base url", mutate: func(c *config.Config) { c.API.BaseURL = "/posts" }, wantErr: config.ErrBadBaseURL},
		{name: "ftp base url", mutate: func(c *config.Config) { c.API.BaseURL = "ftp://x/posts" }, wantErr: config.ErrBadBaseURL},
		{name: "zero page size", mutate: func(c *config.Config) { c.API.PageSize = 0 }, wantErr: pagination.ErrInvalidPageSize},
		{name: "negative rate", mutate: func(c *config.Config) { c.API.RateLimit = -1 }, wantErr: config.ErrNegativeRateLimit},
		{name: "negative threshold", mutate: func(c *config.Config) { c.View.ScrollThreshold = -1 }, wantErr: config.ErrNegativeThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvBaseURL:   "http://localhost:8080/items",
		config.EnvPageSize:  "33",
		config.EnvLogLevel:  "debug",
		config.EnvLogFormat: "json",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "http://localhost:8080/items", cfg.API.BaseURL)
	assert.Equal(t, 33, cfg.API.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	env[config.EnvPageSize] = "many"
	cfg.ApplyEnv(lookup)
	assert.Equal(t, 33, cfg.API.PageSize, "unparseable page size is ignored")
}

func TestConfig_SaveAndLoad(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.API.PageSize = 20
	cfg.View.ResetOnLoad = true
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.API.PageSize)
	assert.True(t, loaded.View.ResetOnLoad)
	assert.Equal(t, path, loaded.Path())
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_GetSet(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		key   string
		value string
	}{
		{key: "api.base_url", value: "http://localhost/items"},
		{key: "api.page_size", value: "15"},
		{key: "api.rate_limit", value: "1.5"},
		{key: "api.user_agent", value: "ua"},
		{key: "view.scroll_threshold", value: "9"},
		{key: "view.reset_on_load", value: "true"},
		{key: "logging.level", value: "warn"},
		{key: "logging.format", value: "json"},
		{key: "logging.file", value: "/tmp/pagefeed.log"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}

	assert.ErrorIs(t, cfg.Set("api.page_size", "ten"), config.ErrInvalidConfigValue)
	assert.ErrorIs(t, cfg.Set("view.reset_on_load", "maybe"), config.ErrInvalidConfigValue)
	assert.ErrorIs(t, cfg.Set("output.format", "json"), config.ErrUnknownConfigKey)

	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownConfigKey)
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, config.GetGlobalConfig())
	assert.Equal(t, "info", config.GetLogLevel())
	assert.Empty(t, config.GetLogFile())

	replacement := config.Default()
	replacement.Logging.Level = "error"
	config.SetGlobalConfig(replacement)
	assert.Equal(t, "error", config.GetLogLevel())
}

func TestNew_ReadsHomeConfig(t *testing.T) {
	isolateHome(t)
	home := os.Getenv("PAGEFEED_HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("api:\n  page_size: 12\n"), 0o600))

	cfg := config.New()
	assert.Equal(t, 12, cfg.API.PageSize)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "debug", got.Level)

	lc.File = "/tmp/x.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/x.log", got.File)
}

func TestEnsureLogDir(t *testing.T) {
	isolateHome(t)
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "deep", "logs", "pagefeed.log")
	config.SetGlobalConfig(cfg)

	require.NoError(t, config.EnsureLogDir())
	_, err := os.Stat(filepath.Dir(cfg.Logging.File))
	assert.NoError(t, err)
}

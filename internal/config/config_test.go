package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "outputs", cfg.Output.Dir)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XLSDOC_OUTPUT_DIR", "/tmp/out")
	t.Setenv("XLSDOC_WORKERS", "8")
	t.Setenv("XLSDOC_LOG_LEVEL", "debug")
	t.Setenv("XLSDOC_LOG_FORMAT", "json")
	t.Setenv("XLSDOC_POSTGRES_DSN", "postgres://localhost/xlsdoc")
	t.Setenv("XLSDOC_LLM_KEY", "secret")
	t.Setenv("XLSDOC_LLM_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "postgres://localhost/xlsdoc", cfg.Postgres.DSN)
	assert.Equal(t, "secret", cfg.LLM.Key)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
}

func TestLoadClampsWorkers(t *testing.T) {
	t.Setenv("XLSDOC_WORKERS", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "international", cfg.Phone.Style)
	assert.Equal(t, 1, cfg.Generator.Count)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "brdocs", cfg.Metrics.MeterName)
	assert.False(t, cfg.CPF.Mask)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "config.yaml", `
environment: production
log_level: warn
generator:
  seed: 7
  count: 3
  formatted: true
phone:
  style: national
cpf:
  mask: true
`)

	t.Setenv("BRDOCS_GENERATOR_COUNT", "10")
	t.Setenv("BRDOCS_LOG_LEVEL", "debug")
	t.Setenv("BRDOCS_METRICS_METER_NAME", "custom")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(7), cfg.Generator.Seed)
	assert.Equal(t, 10, cfg.Generator.Count)
	assert.True(t, cfg.Generator.Formatted)
	assert.Equal(t, "national", cfg.Phone.Style)
	assert.True(t, cfg.CPF.Mask)
	assert.Equal(t, "custom", cfg.Metrics.MeterName)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "BRDOCS_BATCH_CONCURRENCY=2\n")
	t.Cleanup(func() { os.Unsetenv("BRDOCS_BATCH_CONCURRENCY") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load("does-not-exist.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid phone style", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BRDOCS_PHONE_STYLE", "e164")

		_, err := Load("")
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("zero concurrency", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("BRDOCS_BATCH_CONCURRENCY", "0")

		_, err := Load("")
		assert.ErrorContains(t, err, "Concurrency")
	})
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BRDOCS_LOG_LEVEL":          "log_level",
		"BRDOCS_ENVIRONMENT":        "environment",
		"BRDOCS_GENERATOR_SEED":     "generator.seed",
		"BRDOCS_METRICS_METER_NAME": "metrics.meter_name",
		"BRDOCS_CPF_MASK":           "cpf.mask",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

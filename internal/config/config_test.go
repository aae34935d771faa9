package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "outputs", cfg.Output.Dir)
	assert.Equal(t, 1.5, cfg.QA.IQRMultiplier)
	assert.NotEmpty(t, cfg.QA.MissingTokens)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), *cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte("logging:\n  level: debug\n  format: text\nqa:\n  iqr_multiplier: 3.0\n")
		require.NoError(t, os.WriteFile(path, content, 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.Equal(t, 3.0, cfg.QA.IQRMultiplier)
		// Untouched sections keep their defaults.
		assert.Equal(t, "outputs", cfg.Output.Dir)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))
		t.Setenv("EHRQA_LOGGING_LEVEL", "warn")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		t.Setenv("EHRQA_LOGGING_LEVEL", "loud")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("non-positive multiplier rejected", func(t *testing.T) {
		t.Setenv("EHRQA_QA_IQR_MULTIPLIER", "0")
		_, err := Load("")
		assert.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 8, cfg.MaxHops)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 500, cfg.RetryBackoffMS)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_key: file-key\nprovider: anthropic\nmax_hops: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 4, cfg.MaxHops)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestValidate(t *testing.T) {
	valid := Config{APIKey: "k", Provider: "openai", MaxHops: 8}
	assert.NoError(t, valid.Validate())

	badProvider := valid
	badProvider.Provider = "other"
	assert.Error(t, badProvider.Validate())

	badHops := valid
	badHops.MaxHops = 0
	assert.Error(t, badHops.Validate())

	badRetries := valid
	badRetries.MaxRetries = -1
	assert.Error(t, badRetries.Validate())
}

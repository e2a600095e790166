package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes keys for the duration of the test. godotenv never overrides a
// variable that is already set, even to the empty string.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetEnv(t, "GITHUB_API_URL", "SERVER_PORT", "CHARTJS_URL", "LOG_FORMAT")

	cfg, err := LoadConfig()

	assert.Error(t, err, "no .env file in an empty directory")
	assert.Equal(t, Config{
		GitHubAPIURL: "https://api.github.com/",
		ServerPort:   "8080",
		ChartJSURL:   "https://cdn.jsdelivr.net/npm/chart.js",
		LogFormat:    "text",
	}, cfg)
}

func TestLoadConfig_DotEnvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nLOG_FORMAT=json\n"), 0o600))
	unsetEnv(t, "SERVER_PORT", "LOG_FORMAT")
	t.Setenv("GITHUB_API_URL", "http://localhost:3000/")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "http://localhost:3000/", cfg.GitHubAPIURL)
}

// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/view"
)

type Config struct {
	GitHubAPIURL string
	ServerPort   string
	ChartJSURL   string
	LogFormat    string
}

// LoadConfig reads the configuration. The returned error only reports a missing
// or unreadable .env file; the Config is usable either way.
func LoadConfig() (Config, error) {
	err := godotenv.Load()

	return Config{
		GitHubAPIURL: getEnv("GITHUB_API_URL", gateway.DefaultBaseURL),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ChartJSURL:   getEnv("CHARTJS_URL", view.DefaultChartJSURL),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	DataDir       string
	StorageType   string
	RedisURL      string
	ResolvePolicy string
	Output        string
	Verbose       bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		DataDir:       getEnvOrDefault("LEAGUERANK_DATA", "league-data"),
		StorageType:   getEnvOrDefault("LEAGUERANK_STORAGE", "file"),
		RedisURL:      getEnvOrDefault("LEAGUERANK_REDIS", "redis://localhost:6379"),
		ResolvePolicy: getEnvOrDefault("LEAGUERANK_RESOLVE", "fail"),
		Output:        "text",
		Verbose:       false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

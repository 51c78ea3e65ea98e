package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	StorageType string
	StorageDir  string
	RedisURL    string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("PADEL_SERVER", "http://localhost:1337"),
		StorageType: getEnvOrDefault("PADEL_STORAGE", "file"),
		StorageDir:  getEnvOrDefault("PADEL_STORAGE_DIR", defaultStorageDir()),
		RedisURL:    os.Getenv("PADEL_REDIS_URL"),
		Output:      "text",
		Verbose:     false,
	}
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".padelctl"
	}
	return filepath.Join(home, ".padelctl")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

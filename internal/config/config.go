package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Password        string
	PluginDirectory string
	PluginSuffix    string
	PluginPolicy    string        // fail-fast, warn-and-continue or empty for the shell default
	MaxUploadSize   int64         // Maximum uploaded image size in MB
	SessionTTL      time.Duration // Idle time after which a browser session is dropped
	StaticDirectory string
	LogDirectory    string
	HistoryDatabase string // Empty disables detection history
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		Password:        getEnv("PASSWORD", ""),
		PluginDirectory: getEnv("PLUGIN_DIR", filepath.Join(appDirectory(), "plugins")),
		PluginSuffix:    getEnv("PLUGIN_SUFFIX", ".toml"),
		PluginPolicy:    getEnv("PLUGIN_DIR_POLICY", ""),
		MaxUploadSize:   getEnvAsInt64("MAX_UPLOAD_MB", 200),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		StaticDirectory: getEnv("STATIC_DIR", filepath.Join(".", "static")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
		HistoryDatabase: getEnv("HISTORY_DB", ""),
	}
}

// MaxUploadBytes converts MaxUploadSize to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadSize << 20
}

// appDirectory returns the directory of the running executable, falling back to the working directory.
func appDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

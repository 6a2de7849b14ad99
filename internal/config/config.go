// Package config provides runtime configuration from the environment.
package config

import (
	"os"

	"github.com/edgard/platformbridge/internal/osinfo"
)

// Application name, used as the environment variable prefix
const AppName = "platformbridge"

// Default configuration
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "auto"
)

// Config holds runtime configuration.
type Config struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // auto, text, json

	// OSFamily and OSVersion replace the queried OS values when both are set.
	OSFamily  string
	OSVersion string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:  getEnv("PLATFORMBRIDGE_LOG_LEVEL", DefaultLogLevel),
		LogFormat: getEnv("PLATFORMBRIDGE_LOG_FORMAT", DefaultLogFormat),
		OSFamily:  getEnv("PLATFORMBRIDGE_OS_FAMILY", ""),
		OSVersion: getEnv("PLATFORMBRIDGE_OS_VERSION", ""),
	}
}

// OSProvider returns the version provider selected by the configuration.
func (c *Config) OSProvider() osinfo.Provider {
	if c.OSFamily != "" && c.OSVersion != "" {
		return osinfo.Static{FamilyName: c.OSFamily, VersionString: c.OSVersion}
	}
	return osinfo.System()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Package config provides plain environment lookups shared by the command
// line and the configuration loader.
package config

import (
	"os"
	"strings"
)

// GetEnvString returns the value of an environment variable or the default value if not set.
//
// Example:
//
//	file := GetEnvString("REPORT_CONFIG_FILE", "")
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvStringList returns a comma-separated list of strings from an environment variable.
//
// The values are trimmed of whitespace. Empty values are filtered out.
// If the variable is unset or holds no values, defaultValue is returned.
//
// Example:
//
//	// REPORT_LANGUAGES="Chinese, English ,Hindi"
//	langs := GetEnvStringList("REPORT_LANGUAGES", nil)
//	// Result: ["Chinese", "English", "Hindi"]
func GetEnvStringList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

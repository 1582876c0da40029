package env

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

// GetOrDefault returns the environment variable value or the default if not set
func GetOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	debug.Debug("%s not set, using default: %s", key, defaultValue)
	return defaultValue
}

// FirstOf returns the first non-empty value among keys, or defaultValue.
func FirstOf(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

// GetBool returns the environment variable as a boolean.
// Only "true", "1", "yes" and "y" (any case) count as true.
func GetBool(key string) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes", "y", "TRUE", "YES", "Y", "True", "Yes":
		return true
	default:
		return false
	}
}

// GetBoolOrDefault returns the environment variable as a boolean or the default value if not set
func GetBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return GetBool(key)
	}
	return defaultValue
}

// GetIntOrDefault parses the variable as an int, falling back on absence or parse failure.
func GetIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		debug.Warning("Invalid integer for %s (%q), using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// GetDurationOrDefault parses the variable with time.ParseDuration.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		debug.Warning("Invalid duration for %s (%q), using default: %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// GetList splits a comma separated variable, dropping blank entries.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

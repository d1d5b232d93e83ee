package config

import (
	"os"
	"strconv"
)

// GetEnv reads a string environment variable, falling back when it is unset
// or empty.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvAsInt reads an integer environment variable, falling back when it is
// unset or not a valid integer.
func GetEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

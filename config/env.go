package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvString reads a string environment variable, reporting whether it was set.
func EnvString(name string) (string, bool) {
	value := os.Getenv(name)
	if value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable, reporting whether it was set.
func EnvInt(name string) (int, bool, error) {
	value := os.Getenv(name)
	if value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return parsed, true, nil
}

package os

import "os"

// GetEnvWithFallback returns the value of the named environment variable,
// or fallback when it is unset or empty.
func GetEnvWithFallback(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

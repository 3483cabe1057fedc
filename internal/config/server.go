// Package config provides environment configuration helpers for go-rover
// commands. File-backed engine parameters live in pkg/brain.
package config

import "os"

// Default server configuration.
const (
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
)

// Port returns the HTTP port from the ROVER_PORT env var, falling back to the
// provided default, then DefaultPort.
func Port(defaultPort string) string {
	if p := os.Getenv("ROVER_PORT"); p != "" {
		return p
	}
	if defaultPort != "" {
		return defaultPort
	}
	return DefaultPort
}

// LogLevel returns the log level from ROVER_LOG_LEVEL or the default.
func LogLevel(defaultLevel string) string {
	if l := os.Getenv("ROVER_LOG_LEVEL"); l != "" {
		return l
	}
	if defaultLevel != "" {
		return defaultLevel
	}
	return DefaultLogLevel
}

// JournalPath returns the SQLite journal path from ROVER_JOURNAL.
// Empty means the flight recorder is disabled.
func JournalPath(defaultPath string) string {
	if p := os.Getenv("ROVER_JOURNAL"); p != "" {
		return p
	}
	return defaultPath
}

// BrainConfigPath returns the engine parameter file from ROVER_CONFIG.
// Empty means built-in defaults.
func BrainConfigPath(defaultPath string) string {
	if p := os.Getenv("ROVER_CONFIG"); p != "" {
		return p
	}
	return defaultPath
}

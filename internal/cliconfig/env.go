// Package cliconfig resolves CLI-facing settings from the environment.
//
// Precedence (highest to lowest):
//
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (FAULTD_* prefix)
//  3. Default values
package cliconfig

import (
	"fmt"
	"os"

	"github.com/faultd/faultd/pkg/config"
)

// Environment variable names
const (
	EnvAddr    = "FAULTD_ADDR"
	EnvConfig  = "FAULTD_CONFIG"
	EnvVerbose = "FAULTD_VERBOSE"
)

// GetControlURL returns the base URL of the control API. It checks
// FAULTD_ADDR first and falls back to the default listen port.
func GetControlURL() string {
	if v := os.Getenv(EnvAddr); v != "" {
		return v
	}
	return fmt.Sprintf("http://localhost:%d", config.DefaultPort)
}

// GetConfigFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func GetConfigFromEnv() string {
	return os.Getenv(EnvConfig)
}

// GetVerboseFromEnv reports whether verbose output is requested via
// the environment.
func GetVerboseFromEnv() bool {
	v := os.Getenv(EnvVerbose)
	return v == "true" || v == "1" || v == "yes"
}

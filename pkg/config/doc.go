// Package config loads and validates the faultd configuration file.
//
// Configuration is read from YAML or JSON, auto-detected by file extension.
// Everything has a default; a missing config file is not an error for the
// daemon, which then runs with DefaultConfig.
package config

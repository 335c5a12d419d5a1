package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError is a single config validation failure.
type ValidationError struct {
	Path    string // config path, e.g. "server.port"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult collects all validation failures for a Config.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validFormats = map[string]bool{"text": true, "json": true}

// Validate checks the Config and returns every problem found.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		result.addError("server.port", fmt.Sprintf("must be between 1 and 65535, got %d", cfg.Server.Port))
	}

	if cfg.Control.Enabled {
		if cfg.Control.Path == "" {
			result.addError("control.path", "required when control is enabled")
		} else if !filepath.IsAbs(cfg.Control.Path) {
			result.addError("control.path", fmt.Sprintf("must be absolute, got %q", cfg.Control.Path))
		}
	}

	if cfg.Events.Buffer < 0 {
		result.addError("events.buffer", fmt.Sprintf("must be >= 0, got %d", cfg.Events.Buffer))
	}

	if !validLevels[cfg.Logging.Level] {
		result.addError("logging.level", fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level))
	}
	if !validFormats[cfg.Logging.Format] {
		result.addError("logging.format", fmt.Sprintf("must be text or json, got %q", cfg.Logging.Format))
	}

	return result
}

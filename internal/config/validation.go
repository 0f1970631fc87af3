package config

import (
	"fmt"
	"path/filepath"

	"brtoolchain/internal/logx"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate checks the configuration and returns structured results.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	if c.Version != CurrentVersion {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("unsupported config version %d", c.Version),
		})
	}
	if _, err := c.Policy(); err != nil {
		results = append(results, ValidationResult{Level: "error", Message: err.Error()})
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		results = append(results, ValidationResult{Level: "error", Message: err.Error()})
	}
	results = append(results, c.validatePaths()...)
	return results
}

func (c Config) validatePaths() []ValidationResult {
	var results []ValidationResult
	fields := []struct {
		name  string
		value string
	}{
		{"registry_file", c.RegistryFile},
		{"state_dir", c.StateDir},
		{"output_dir", c.OutputDir},
		{"log.file", c.Log.File},
	}
	for _, f := range fields {
		if f.value == "" || filepath.IsAbs(f.value) || isHomeRelative(f.value) {
			continue
		}
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("%s %q is relative and depends on the working directory", f.name, f.value),
		})
	}
	return results
}

func isHomeRelative(path string) bool {
	return path == "~" || (len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator))
}

// HasErrors reports whether any result is an error.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level == "error" {
			return true
		}
	}
	return false
}

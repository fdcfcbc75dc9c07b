package config

import (
	"fmt"
	"os"
	"time"
)

// ValidationError represents a validation error with details.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

var (
	knownModes      = map[string]bool{"": true, "solo": true, "shell": true, "unified": true}
	knownStrategies = map[string]bool{"": true, "subsequence": true, "editdistance": true, "external": true}
	knownFamilies   = map[string]bool{"": true, "generic": true, "bash": true, "zsh": true}
)

// Validate validates a config file: syntax, schema, then semantic
// checks the schema cannot express.
func Validate(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not readable: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	fail := func(field, message string) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: field, Message: message})
	}

	if !knownModes[cfg.History.Mode] {
		fail("history/mode", fmt.Sprintf("Unknown history mode: %q", cfg.History.Mode))
	}
	if !knownStrategies[cfg.Fuzzy.Strategy] {
		fail("fuzzy/strategy", fmt.Sprintf("Unknown fuzzy strategy: %q", cfg.Fuzzy.Strategy))
	}
	if !knownFamilies[cfg.Shell.Family] {
		fail("shell/family", fmt.Sprintf("Unknown shell family: %q", cfg.Shell.Family))
	}
	if cfg.Fuzzy.Strategy == "external" && cfg.Fuzzy.Helper == "" {
		fail("fuzzy/helper", "External strategy requires a helper command")
	}

	for field, value := range map[string]string{
		"cache/ttl":            cfg.Cache.TTL,
		"history/flush_window": cfg.History.FlushWindow,
		"fuzzy/helper_timeout": cfg.Fuzzy.HelperTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			fail(field, fmt.Sprintf("Invalid duration: %q", value))
		}
	}

	return result, nil
}

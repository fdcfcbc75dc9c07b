package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/tabwise/tabwise/internal/config"
)

// Validate validates a Tabwise configuration file. An empty path looks
// in the user config directory.
func Validate(w io.Writer, configPath string) error {
	if configPath == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}
		configPath = config.FindConfig(dir)
		if configPath == "" {
			return fmt.Errorf("no config file found in %s", dir)
		}
	}

	fmt.Fprintf(w, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(w, "✅ Configuration is valid!")
		return nil
	}

	fmt.Fprintln(w, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}

// Schema writes the configuration JSON Schema, for editor integration.
func Schema(w io.Writer) error {
	_, err := fmt.Fprintln(w, config.GetSchemaJSON())
	return err
}

// InitConfig writes a starter config file to dir, refusing to clobber
// an existing one.
func InitConfig(w io.Writer, dir string) error {
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}
	}

	if existing := config.FindConfig(dir); existing != "" {
		return fmt.Errorf("config already exists: %s", existing)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := dir + "/config.yml"
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}

// starterConfig documents the knobs a new install usually touches.
const starterConfig = `# Tabwise configuration.
log:
  level: warn

cache:
  ttl: 5s

suggestions:
  max: 50

fuzzy:
  enabled: true
  # subsequence, editdistance or external
  strategy: subsequence
  helper: fzf

history:
  # solo, shell or unified
  mode: unified
  path: "{{ .HOME }}/.local/share/tabwise/history.jsonl"
  max_entries: 10000
  providers:
    bash:
      enabled: true
    zsh:
      enabled: true
    fish:
      enabled: true

# Uncomment to force a backend instead of detecting from $SHELL.
# shell:
#   family: zsh
`

package shell

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed registry.yml
var registryData []byte

// Registry is the static per-command completion knowledge compiled into
// the binary: recognized subcommand sets and common options, keyed by
// command name.
type Registry struct {
	Version  string                  `koanf:"version"`
	Commands map[string]RegistryTool `koanf:"commands"`
}

// RegistryTool describes one command's static completions.
type RegistryTool struct {
	Description string          `koanf:"description"`
	Subcommands []RegistryEntry `koanf:"subcommands"`
	Options     []RegistryEntry `koanf:"options"`
}

// RegistryEntry is one subcommand or option with its help text.
type RegistryEntry struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
}

var (
	registryOnce sync.Once
	registry     *Registry
	registryErr  error
)

// loadRegistry parses the embedded registry exactly once.
func loadRegistry() (*Registry, error) {
	registryOnce.Do(func() {
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider(registryData), yaml.Parser()); err != nil {
			registryErr = fmt.Errorf("parse embedded command registry: %w", err)
			return
		}
		var r Registry
		if err := k.Unmarshal("", &r); err != nil {
			registryErr = fmt.Errorf("decode embedded command registry: %w", err)
			return
		}
		registry = &r
	})
	return registry, registryErr
}

// Lookup returns the registry record for a command name.
func (r *Registry) Lookup(command string) (RegistryTool, bool) {
	tool, ok := r.Commands[command]
	return tool, ok
}

// Package config handles loading and parsing of Tabwise configuration
// files. The completion core consumes an immutable snapshot built here
// at startup; nothing below this package reads configuration ad hoc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames contains supported configuration file names, in
// order of preference.
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// LogConfig tunes diagnostic output.
type LogConfig struct {
	Level string `koanf:"level" json:"level,omitempty"`
}

// CacheConfig tunes the completion result cache.
type CacheConfig struct {
	TTL string `koanf:"ttl" json:"ttl,omitempty"`
}

// SuggestionsConfig bounds result lists.
type SuggestionsConfig struct {
	Max int `koanf:"max" json:"max,omitempty"`
}

// FuzzyConfig selects and tunes the ranking strategy.
type FuzzyConfig struct {
	Enabled       bool   `koanf:"enabled" json:"enabled,omitempty"`
	Strategy      string `koanf:"strategy" json:"strategy,omitempty"`
	MaxDistance   int    `koanf:"max_distance" json:"max_distance,omitempty"`
	Helper        string `koanf:"helper" json:"helper,omitempty"`
	HelperTimeout string `koanf:"helper_timeout" json:"helper_timeout,omitempty"`
}

// ProviderConfig enables one shell-native history source and optionally
// overrides its file location.
type ProviderConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled,omitempty"`
	Path    string `koanf:"path" json:"path,omitempty"`
}

// HistoryConfig tunes the owned store and provider composition.
type HistoryConfig struct {
	Mode        string                    `koanf:"mode" json:"mode,omitempty"`
	Path        string                    `koanf:"path" json:"path,omitempty"`
	MaxEntries  int                       `koanf:"max_entries" json:"max_entries,omitempty"`
	FlushWindow string                    `koanf:"flush_window" json:"flush_window,omitempty"`
	Providers   map[string]ProviderConfig `koanf:"providers" json:"providers,omitempty"`
}

// ShellConfig names the detected or forced shell family.
type ShellConfig struct {
	Family string `koanf:"family" json:"family,omitempty"`
}

// Config is a Tabwise configuration snapshot.
type Config struct {
	Log         LogConfig         `koanf:"log" json:"log,omitempty"`
	Cache       CacheConfig       `koanf:"cache" json:"cache,omitempty"`
	Suggestions SuggestionsConfig `koanf:"suggestions" json:"suggestions,omitempty"`
	Fuzzy       FuzzyConfig       `koanf:"fuzzy" json:"fuzzy,omitempty"`
	History     HistoryConfig     `koanf:"history" json:"history,omitempty"`
	Shell       ShellConfig       `koanf:"shell" json:"shell,omitempty"`

	// ConfigDir is the directory the config was loaded from, used for
	// template expansion. Not itself configurable.
	ConfigDir string `koanf:"-" json:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:         LogConfig{Level: "warn"},
		Cache:       CacheConfig{TTL: "5s"},
		Suggestions: SuggestionsConfig{Max: 50},
		Fuzzy: FuzzyConfig{
			Enabled:       true,
			Strategy:      "subsequence",
			MaxDistance:   2,
			Helper:        "fzf",
			HelperTimeout: "2s",
		},
		History: HistoryConfig{
			Mode:        "unified",
			Path:        "{{ .HOME }}/.local/share/tabwise/history.jsonl",
			MaxEntries:  10000,
			FlushWindow: "200ms",
			Providers: map[string]ProviderConfig{
				"bash": {Enabled: true},
				"zsh":  {Enabled: true},
				"fish": {Enabled: true},
			},
		},
	}
}

// DefaultDir returns the user's Tabwise configuration directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tabwise"), nil
}

// FindConfig returns the first supported config file in dir, or empty
// when none exists.
func FindConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Loader handles loading and parsing configuration files.
type Loader struct {
	// Cache of parsed configs keyed by path.
	parsed map[string]*Config
}

// New creates a new config loader.
func New() *Loader {
	return &Loader{parsed: make(map[string]*Config)}
}

// Load reads and parses a configuration file, merging it over the
// built-in defaults. Templated string values are expanded after
// parsing.
func (l *Loader) Load(path string) (*Config, error) {
	if cfg, ok := l.parsed[path]; ok {
		return cfg, nil
	}

	k := koanf.New(".")

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ConfigDir = filepath.Dir(path)
	cfg.Expand()

	l.parsed[path] = cfg
	return cfg, nil
}

// Expand renders the templated string values in place. Load calls it
// automatically; callers that start from Default must call it
// themselves.
func (c *Config) Expand() {
	c.History.Path = c.expandTemplate(c.History.Path)
	c.Fuzzy.Helper = c.expandTemplate(c.Fuzzy.Helper)
	for name, p := range c.History.Providers {
		p.Path = c.expandTemplate(p.Path)
		c.History.Providers[name] = p
	}
}

// CacheTTL returns the parsed cache TTL, falling back to the default
// when unset or unparseable.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 5*time.Second)
}

// FlushWindow returns the owned store's debounce window.
func (c *Config) FlushWindow() time.Duration {
	return parseDuration(c.History.FlushWindow, 200*time.Millisecond)
}

// HelperTimeout returns the external ranking helper's timeout.
func (c *Config) HelperTimeout() time.Duration {
	return parseDuration(c.Fuzzy.HelperTimeout, 2*time.Second)
}

// ProviderEnabled reports whether a named history provider is enabled.
// Providers absent from the config default to enabled.
func (c *Config) ProviderEnabled(name string) bool {
	p, ok := c.History.Providers[name]
	if !ok {
		return true
	}
	return p.Enabled
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

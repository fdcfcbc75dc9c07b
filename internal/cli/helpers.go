// Package cli implements the Tabwise commands. Each command is a plain
// function over a params struct and a writer so the command surface
// stays testable without a terminal.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/config"
	"github.com/tabwise/tabwise/internal/fuzzy"
	"github.com/tabwise/tabwise/internal/history"
	"github.com/tabwise/tabwise/internal/logger"
	"github.com/tabwise/tabwise/internal/shell"
)

// components holds the initialized Tabwise components.
type components struct {
	cfg         *config.Config
	configPath  string
	log         *logger.Logger
	backend     complete.Backend
	scorer      fuzzy.Scorer
	store       *history.Store
	providers   []history.Provider
	sourcePaths map[string]string
	history     *history.Manager
	manager     *complete.Manager
}

// initializeComponents loads configuration and wires the engine. An
// empty configPath searches the user config directory; a missing file
// means built-in defaults. logLevel, when non-empty, overrides the
// configured level.
func initializeComponents(configPath, logLevel string) (*components, error) {
	c := &components{}

	if configPath == "" {
		if dir, err := config.DefaultDir(); err == nil {
			configPath = config.FindConfig(dir)
		}
	}

	c.cfg = config.Default()
	c.cfg.Expand()
	if configPath != "" {
		cfg, err := config.New().Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c.cfg = cfg
		c.configPath = configPath
	}

	if logLevel == "" {
		logLevel = c.cfg.Log.Level
	}
	c.log = logger.New(logLevel, os.Stderr)

	family := c.cfg.Shell.Family
	if family == "" {
		family = detectShellFamily()
	}
	backend, err := shell.New(family, c.log)
	if err != nil {
		c.log.Warn().Str("family", family).Err(err).Msg("falling back to generic backend")
	}
	c.backend = backend

	if c.cfg.Fuzzy.Enabled {
		scorer, err := fuzzy.Select(c.cfg.Fuzzy.Strategy, fuzzy.Options{
			MaxDistance:   c.cfg.Fuzzy.MaxDistance,
			HelperCommand: c.cfg.Fuzzy.Helper,
			HelperTimeout: c.cfg.HelperTimeout(),
		})
		if err != nil {
			c.log.Warn().Str("strategy", c.cfg.Fuzzy.Strategy).Err(err).Msg("falling back to reference scorer")
		}
		c.scorer = scorer
	}

	c.buildHistory(family)

	c.manager = complete.NewManager(c.backend, c.history, c.scorer, complete.Options{
		CacheTTL:       c.cfg.CacheTTL(),
		MaxSuggestions: c.cfg.Suggestions.Max,
		Fuzzy:          c.cfg.Fuzzy.Enabled,
	}, c.log)

	return c, nil
}

// buildHistory wires the owned store and enabled native providers.
func (c *components) buildHistory(family string) {
	c.store = history.NewStore(c.cfg.History.Path, c.cfg.History.MaxEntries, c.cfg.FlushWindow())
	c.sourcePaths = map[string]string{history.SourceOwned: c.cfg.History.Path}

	byName := map[string]history.Provider{}
	for name, path := range nativeHistoryPaths(c.cfg) {
		if !c.cfg.ProviderEnabled(name) {
			continue
		}
		var p history.Provider
		switch name {
		case history.SourceBash:
			p = history.NewBashProvider(path)
		case history.SourceZsh:
			p = history.NewZshProvider(path)
		case history.SourceFish:
			p = history.NewFishProvider(path)
		default:
			continue
		}
		byName[name] = p
		c.providers = append(c.providers, p)
		c.sourcePaths[name] = path
	}

	mode, err := history.ParseMode(c.cfg.History.Mode)
	if err != nil {
		c.log.Warn().Str("mode", c.cfg.History.Mode).Err(err).Msg("falling back to solo history mode")
	}

	c.history = history.NewManager(mode, c.store, byName[family], c.providers, c.log)
}

// allProviders lists the owned store followed by the native providers.
func (c *components) allProviders() []history.Provider {
	providers := make([]history.Provider, 0, len(c.providers)+1)
	if c.store != nil {
		providers = append(providers, c.store)
	}
	return append(providers, c.providers...)
}

// Close flushes the owned store.
func (c *components) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// nativeHistoryPaths returns the resolved history file per provider,
// honoring configured overrides.
func nativeHistoryPaths(cfg *config.Config) map[string]string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	paths := map[string]string{
		history.SourceBash: filepath.Join(home, ".bash_history"),
		history.SourceZsh:  filepath.Join(home, ".zsh_history"),
		history.SourceFish: filepath.Join(home, ".local", "share", "fish", "fish_history"),
	}
	for name, p := range cfg.History.Providers {
		if p.Path != "" {
			paths[name] = p.Path
		}
	}
	return paths
}

// detectShellFamily derives the shell family from the SHELL variable.
func detectShellFamily() string {
	base := filepath.Base(os.Getenv("SHELL"))
	switch {
	case strings.HasPrefix(base, "bash"):
		return shell.FamilyBash
	case strings.HasPrefix(base, "zsh"):
		return shell.FamilyZsh
	default:
		return shell.FamilyGeneric
	}
}

package status

import (
	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/config"
	"github.com/tabwise/tabwise/internal/fuzzy"
	"github.com/tabwise/tabwise/internal/history"
)

// topCommandCount bounds the frequency table shown in status output.
const topCommandCount = 5

// Inputs carries the already-constructed components the status report
// describes. Any field may be nil; the report simply omits that
// section.
type Inputs struct {
	Version    string
	CurrentDir string
	ConfigPath string
	Config     *config.Config
	Backend    complete.Backend
	Scorer     fuzzy.Scorer
	History    *history.Manager
	Providers  []history.Provider
	// SourcePaths maps provider names to their backing files.
	SourcePaths map[string]string
}

// Collect builds the status data from live components.
func Collect(in Inputs) *Data {
	data := &Data{
		Version:     in.Version,
		CurrentDir:  in.CurrentDir,
		ConfigPath:  in.ConfigPath,
		ConfigFound: in.ConfigPath != "",
	}

	if in.Config != nil {
		data.Shell = in.Config.Shell.Family
		if data.Shell == "" {
			data.Shell = "generic"
		}
		data.FuzzyEnabled = in.Config.Fuzzy.Enabled
		data.FuzzyStrategy = in.Config.Fuzzy.Strategy
		data.CacheTTL = in.Config.CacheTTL().String()
		data.MaxSuggestions = in.Config.Suggestions.Max
		data.StorePath = in.Config.History.Path
		data.HistoryMode = in.Config.History.Mode
	}

	if in.Backend != nil {
		data.BackendName = in.Backend.Name()
	}
	if in.Scorer != nil {
		data.FuzzyStrategy = in.Scorer.Name()
		data.FuzzyAvailable = in.Scorer.Available()
	}

	for _, p := range in.Providers {
		info := SourceInfo{
			Name:      p.Name(),
			Path:      in.SourcePaths[p.Name()],
			Available: p.Available(),
		}
		if info.Available {
			info.Entries = len(p.All())
		}
		data.Sources = append(data.Sources, info)
	}

	if in.History != nil {
		stats := in.History.Stats()
		data.TotalEntries = stats.Total
		data.UniqueCmds = stats.Unique
		for _, row := range stats.Top(topCommandCount) {
			data.TopCommands = append(data.TopCommands, CommandCount{
				Command: row.Command,
				Count:   row.Count,
			})
		}
	}

	return data
}

package status

// Data contains all the information to display in status.
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Engine
	Shell          string
	BackendName    string
	FuzzyEnabled   bool
	FuzzyStrategy  string
	FuzzyAvailable bool
	CacheTTL       string
	MaxSuggestions int

	// Configuration
	ConfigPath  string
	ConfigFound bool

	// History
	HistoryMode  string
	StorePath    string
	TotalEntries int
	UniqueCmds   int
	Sources      []SourceInfo
	TopCommands  []CommandCount
}

// SourceInfo describes one history source.
type SourceInfo struct {
	Name      string
	Path      string
	Available bool
	Entries   int
}

// CommandCount is one row of the frequency table.
type CommandCount struct {
	Command string
	Count   int
}

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/tabwise/tabwise/internal/history"
	"github.com/tabwise/tabwise/internal/status"
)

// HistoryParams carries common history command options.
type HistoryParams struct {
	ConfigPath string
	LogLevel   string
	Limit      int
	Query      string
}

// HistoryList writes the most recent merged entries, newest first.
func HistoryList(w io.Writer, params HistoryParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return writeEntries(w, c.history.Recent(params.Limit))
}

// HistorySearch writes entries whose command contains the query.
func HistorySearch(w io.Writer, params HistoryParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	entries := c.history.Search(params.Query, history.SearchOptions{
		Limit:       params.Limit,
		Deduplicate: true,
	})
	return writeEntries(w, entries)
}

// HistoryAddParams describes one command execution to record.
type HistoryAddParams struct {
	ConfigPath string
	LogLevel   string
	Command    string
	ExitCode   *int
	WorkDir    string
}

// HistoryAdd records a command in the owned store. Native shell logs
// are never written.
func HistoryAdd(params HistoryAddParams) error {
	if params.Command == "" {
		return fmt.Errorf("nothing to record: empty command")
	}

	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return c.history.Add(history.Entry{
		Command:   params.Command,
		Timestamp: time.Now().UnixMilli(),
		ExitCode:  params.ExitCode,
		Cwd:       params.WorkDir,
	})
}

// HistoryStats writes aggregated statistics across active sources.
func HistoryStats(w io.Writer, params HistoryParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	top := params.Limit
	if top <= 0 {
		top = 10
	}
	_, err = fmt.Fprint(w, status.RenderStats(c.history.Stats(), top))
	return err
}

// writeEntries prints one entry per line with a timestamp column when
// known.
func writeEntries(w io.Writer, entries []history.Entry) error {
	for _, e := range entries {
		ts := "                   "
		if e.HasTimestamp() {
			ts = time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", ts, e.Command); err != nil {
			return err
		}
	}
	return nil
}

package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultFlushWindow is how long the store coalesces appends before
// writing them out.
const DefaultFlushWindow = 200 * time.Millisecond

// Store is the owned rich-metadata history provider. It persists one
// self-describing JSON record per line; a line that does not parse as
// JSON is accepted as a bare legacy command. Appends are debounced:
// the in-memory view updates synchronously on Add while the
// write-through is coalesced within a flush window.
type Store struct {
	path       string
	maxEntries int
	window     time.Duration

	mu      sync.Mutex
	entries []Entry // chronological, oldest first
	pending []Entry
	timer   *time.Timer
	loaded  bool
}

// NewStore creates a store backed by path. maxEntries bounds how many
// entries are retained in memory (<= 0 means unbounded); window <= 0
// uses DefaultFlushWindow.
func NewStore(path string, maxEntries int, window time.Duration) *Store {
	if window <= 0 {
		window = DefaultFlushWindow
	}
	return &Store{path: path, maxEntries: maxEntries, window: window}
}

// Name implements Provider.
func (s *Store) Name() string { return SourceOwned }

// Available implements Provider. The owned store is considered
// available when its directory is usable; a not-yet-created file is
// fine, it appears on first flush.
func (s *Store) Available() bool {
	if _, err := os.Stat(s.path); err == nil {
		return true
	}
	_, err := os.Stat(filepath.Dir(s.path))
	return err == nil
}

// Add implements Provider. The entry lands in the in-memory view
// immediately; the durable append is coalesced. An Add identical to
// the most recent command is suppressed.
func (s *Store) Add(entry Entry) error {
	if entry.Command == "" {
		return nil
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	entry.Source = SourceOwned

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	if n := len(s.entries); n > 0 && s.entries[n-1].Command == entry.Command {
		return nil
	}

	s.entries = append(s.entries, entry)
	s.trimLocked()
	s.pending = append(s.pending, entry)
	s.scheduleFlushLocked()
	return nil
}

// Search implements Provider.
func (s *Store) Search(query string, opts SearchOptions) []Entry {
	return searchEntries(s.snapshot(), query, opts)
}

// Recent implements Provider.
func (s *Store) Recent(limit int) []Entry {
	return truncate(s.snapshot(), limit)
}

// All implements Provider.
func (s *Store) All() []Entry {
	return s.snapshot()
}

// Stats implements Provider.
func (s *Store) Stats() Stats {
	return statsFor(s.snapshot())
}

// Flush writes any coalesced appends out immediately.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Close flushes and stops the debounce timer.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.flushLocked()
}

// snapshot returns the entries newest first.
func (s *Store) snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	return out
}

// ensureLoaded parses the backing file once. Callers hold s.mu.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	file, err := os.Open(s.path)
	if err != nil {
		return
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.entries = append(s.entries, parseStoreLine(line))
	}
	s.trimLocked()
}

// parseStoreLine decodes one record line, falling back to a bare
// legacy command-only entry when it is not a JSON record.
func parseStoreLine(line string) Entry {
	if strings.HasPrefix(line, "{") {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err == nil && e.Command != "" {
			e.Source = SourceOwned
			return e
		}
	}
	return Entry{Command: line, Source: SourceOwned}
}

func (s *Store) trimLocked() {
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
}

// scheduleFlushLocked arms the debounce timer. Callers hold s.mu.
func (s *Store) scheduleFlushLocked() {
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.timer = nil
		_ = s.flushLocked()
	})
}

// flushLocked appends pending records to the backing file. Callers
// hold s.mu. Write failures drop the batch; history persistence is
// best-effort and must never break the interactive path.
func (s *Store) flushLocked() error {
	if len(s.pending) == 0 {
		return nil
	}
	batch := s.pending
	s.pending = nil

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := bufio.NewWriter(file)
	for _, e := range batch {
		data, err := json.Marshal(e)
		if err != nil {
			continue
		}
		_, _ = w.Write(data)
		_ = w.WriteByte('\n')
	}
	return w.Flush()
}

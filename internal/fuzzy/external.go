package fuzzy

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/tabwise/tabwise/internal/terrors"
)

const (
	// DefaultHelperCommand is the ranking helper probed when none is
	// configured.
	DefaultHelperCommand = "fzf"
	// DefaultHelperTimeout bounds one helper invocation.
	DefaultHelperTimeout = 2 * time.Second
)

// ExternalScorer delegates filtering and ordering to a helper process
// (fzf-style): candidates are streamed to its stdin, one per line, and
// its stdout order is taken as authoritative. The helper emits no
// numeric scores, so they are synthesized as 1 - index/resultCount.
// Any failure (absent binary, bad exit, timeout) makes the strategy
// report itself unavailable instead of erroring the request.
type ExternalScorer struct {
	command string
	args    []string
	timeout time.Duration

	probeOnce sync.Once
	probed    bool
}

// NewExternalScorer creates a helper-backed scorer. Empty command means
// DefaultHelperCommand with its filter flag.
func NewExternalScorer(command string, timeout time.Duration) *ExternalScorer {
	var args []string
	if command == "" {
		command = DefaultHelperCommand
	}
	if command == DefaultHelperCommand {
		args = []string{"--filter"}
	}
	if timeout <= 0 {
		timeout = DefaultHelperTimeout
	}
	return &ExternalScorer{command: command, args: args, timeout: timeout}
}

// Name implements Scorer.
func (e *ExternalScorer) Name() string { return StrategyExternal }

// Available reports whether the helper binary resolves on PATH. The
// lookup runs once and is cached for the process lifetime.
func (e *ExternalScorer) Available() bool {
	e.probeOnce.Do(func() {
		_, err := exec.LookPath(e.command)
		e.probed = err == nil
	})
	return e.probed
}

// Rank implements Scorer. The returned error is always a
// SourceUnavailableError; callers fall back to the reference scorer.
func (e *ExternalScorer) Rank(query string, texts []string) ([]Result, error) {
	if !e.Available() {
		return nil, terrors.NewSourceUnavailable(e.command, "ranking helper not on PATH", nil)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	args := make([]string, 0, len(e.args)+1)
	if len(e.args) > 0 {
		// fzf --filter=query prints the matching subset in rank order.
		args = append(args, e.args[0]+"="+query)
	} else {
		args = append(args, query)
	}

	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(texts, "\n") + "\n")

	output, err := cmd.Output()
	if err != nil {
		// fzf exits 1 when nothing matches; that is an empty result,
		// not an unavailable helper.
		var exitErr *exec.ExitError
		if ctx.Err() == nil && errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, terrors.NewSourceUnavailable(e.command, "ranking helper failed", err)
	}

	index := indexByText(texts)
	var results []Result

	scanner := bufio.NewScanner(bytes.NewReader(output))
	var ordered []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		ordered = append(ordered, line)
	}

	for rank, line := range ordered {
		idx, ok := index[line]
		if !ok {
			continue
		}
		results = append(results, Result{
			Index: idx,
			Score: 1 - float64(rank)/float64(len(ordered)),
		})
	}

	return results, nil
}

// indexByText maps candidate text to its first input index; the helper
// echoes lines verbatim so exact lookup suffices.
func indexByText(texts []string) map[string]int {
	m := make(map[string]int, len(texts))
	for i, t := range texts {
		if _, seen := m[t]; !seen {
			m[t] = i
		}
	}
	return m
}

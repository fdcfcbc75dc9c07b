package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/tabwise/tabwise/internal/status"
)

// CompleteParams carries one completion request from the shell hook.
type CompleteParams struct {
	ConfigPath string
	LogLevel   string
	Line       string
	Cursor     int
	WorkDir    string
	// Pretty renders a styled list instead of the plain protocol.
	Pretty bool
}

// Complete resolves one completion request and writes candidates to w.
// The plain protocol is one candidate text per line, ranked best first,
// ready for a shell's COMPREPLY-style consumption.
func Complete(w io.Writer, params CompleteParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if params.Cursor < 0 {
		params.Cursor = len(params.Line)
	}
	if params.WorkDir == "" {
		if params.WorkDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	candidates, _ := c.manager.CompleteLine(params.Line, params.Cursor, params.WorkDir)

	if params.Pretty {
		_, err = fmt.Fprint(w, status.RenderCandidates(candidates))
		return err
	}

	for _, candidate := range candidates {
		if _, err := fmt.Fprintln(w, candidate.Text); err != nil {
			return err
		}
	}
	return nil
}

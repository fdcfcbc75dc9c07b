package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/tabwise/tabwise/internal/status"
	"github.com/tabwise/tabwise/pkg/version"
)

// StatusParams carries status command options.
type StatusParams struct {
	ConfigPath string
	LogLevel   string
}

// Status writes a report of the engine's configuration and sources.
func Status(w io.Writer, params StatusParams) error {
	c, err := initializeComponents(params.ConfigPath, params.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	data := status.Collect(status.Inputs{
		Version:     version.Version,
		CurrentDir:  currentDir,
		ConfigPath:  c.configPath,
		Config:      c.cfg,
		Backend:     c.backend,
		Scorer:      c.scorer,
		History:     c.history,
		Providers:   c.allProviders(),
		SourcePaths: c.sourcePaths,
	})

	_, err = fmt.Fprint(w, status.Render(data))
	return err
}

package cli

import (
	"fmt"
	"io"

	"github.com/tabwise/tabwise/internal/setup"
)

// SetupParams carries setup command options.
type SetupParams struct {
	Shell  string
	RCFile string
	Remove bool
}

// Setup installs or removes the shell hook. An empty shell name uses
// the detected family; an empty RC file uses the shell's default.
func Setup(w io.Writer, params SetupParams) error {
	family := params.Shell
	if family == "" {
		family = detectShellFamily()
	}

	rcFile := params.RCFile
	if rcFile == "" {
		var err error
		if rcFile, err = setup.GetRCFilePath(family); err != nil {
			return err
		}
	}

	var result *setup.Result
	var err error
	if params.Remove {
		result, err = setup.Remove(rcFile)
	} else {
		result, err = setup.Setup(family, rcFile)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, result.Message)
	return nil
}

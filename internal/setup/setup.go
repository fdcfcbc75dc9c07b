// Package setup installs the Tabwise hook into a shell's RC file. The
// hook binds completion to the tabwise binary and records executed
// commands into the owned history store.
package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tabwise/tabwise/internal/shell"
)

const (
	// HookMarkerStart is the starting marker for the Tabwise hook in RC files.
	HookMarkerStart = "# Tabwise shell hook - START"
	// HookMarkerEnd is the ending marker for the Tabwise hook in RC files.
	HookMarkerEnd = "# Tabwise shell hook - END"
)

// Result represents the result of a setup operation.
type Result struct {
	RCFile  string
	Updated bool
	Message string
}

// GetRCFilePath returns the RC file path for the given shell family.
func GetRCFilePath(family string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch family {
	case shell.FamilyBash:
		return filepath.Join(home, ".bashrc"), nil
	case shell.FamilyZsh:
		return filepath.Join(home, ".zshrc"), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (use bash or zsh)", family)
	}
}

// bashHook wires command recording into PROMPT_COMMAND and registers
// tabwise as the default completer. Bash passes COMP_LINE/COMP_POINT in
// the environment of a -C completer.
const bashHook = `_tabwise_record() {
  local last
  last=$(HISTTIMEFORMAT= builtin history 1 | sed 's/^ *[0-9]* *//')
  [ -n "$last" ] && tabwise history add --exit-code $? --cwd "$PWD" -- "$last" >/dev/null 2>&1
}
if [[ ":$PROMPT_COMMAND:" != *":_tabwise_record:"* ]]; then
  PROMPT_COMMAND="_tabwise_record${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
complete -D -o default -C 'tabwise complete'`

// zshHook records through the zshaddhistory hook and completes via a
// widget that feeds the buffer and cursor to tabwise.
const zshHook = `autoload -Uz add-zsh-hook
_tabwise_record() {
  tabwise history add --cwd "$PWD" -- "${1%$'\n'}" >/dev/null 2>&1
  return 0
}
add-zsh-hook zshaddhistory _tabwise_record
_tabwise_complete() {
  local -a suggestions
  suggestions=("${(@f)$(tabwise complete --line "$BUFFER" --cursor "$CURSOR" --cwd "$PWD")}")
  (( ${#suggestions} )) && compadd -U -- "${suggestions[@]}"
}`

// hookFor returns the shell snippet for a family.
func hookFor(family string) (string, error) {
	switch family {
	case shell.FamilyBash:
		return bashHook, nil
	case shell.FamilyZsh:
		return zshHook, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", family)
	}
}

// IsInstalled reports whether an RC file already carries the hook.
func IsInstalled(rcFile string) bool {
	data, err := os.ReadFile(rcFile)
	if err != nil {
		return false
	}
	return containsMarkers(string(data), HookMarkerStart, HookMarkerEnd)
}

// Setup installs or refreshes the hook in rcFile. Installing twice is
// safe: the marked section is replaced, never duplicated.
func Setup(family, rcFile string) (*Result, error) {
	hook, err := hookFor(family)
	if err != nil {
		return nil, err
	}

	var content string
	if data, err := os.ReadFile(rcFile); err == nil {
		content = string(data)
	}

	updated := containsMarkers(content, HookMarkerStart, HookMarkerEnd)
	if updated {
		content = removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
	}

	if content != "" && content[len(content)-1] != '\n' {
		content += "\n"
	}
	content += "\n" + HookMarkerStart + "\n" + hook + "\n" + HookMarkerEnd + "\n"

	if err := os.WriteFile(rcFile, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", rcFile, err)
	}

	message := fmt.Sprintf("Hook installed in %s. Restart your shell or source the file.", rcFile)
	if updated {
		message = fmt.Sprintf("Hook refreshed in %s.", rcFile)
	}
	return &Result{RCFile: rcFile, Updated: updated, Message: message}, nil
}

// Remove deletes the hook from rcFile. Removing an absent hook is not
// an error.
func Remove(rcFile string) (*Result, error) {
	data, err := os.ReadFile(rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{RCFile: rcFile, Message: "Nothing to remove."}, nil
		}
		return nil, err
	}

	content := string(data)
	if !containsMarkers(content, HookMarkerStart, HookMarkerEnd) {
		return &Result{RCFile: rcFile, Message: "Nothing to remove."}, nil
	}

	content = removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
	if err := os.WriteFile(rcFile, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", rcFile, err)
	}
	return &Result{RCFile: rcFile, Updated: true, Message: fmt.Sprintf("Hook removed from %s.", rcFile)}, nil
}

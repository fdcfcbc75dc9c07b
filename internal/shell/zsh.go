package shell

import (
	"sync"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/logger"
)

var zshBuiltins = []string{
	"alias", "autoload", "bg", "bindkey", "break", "builtin", "cd",
	"command", "compdef", "continue", "declare", "dirs", "disown",
	"echo", "emulate", "eval", "exec", "exit", "export", "fc", "fg",
	"float", "functions", "getopts", "hash", "history", "integer",
	"jobs", "kill", "let", "local", "popd", "print", "printf", "pushd",
	"pwd", "read", "readonly", "rehash", "return", "set", "setopt",
	"shift", "source", "suspend", "test", "times", "trap", "type",
	"typeset", "ulimit", "umask", "unalias", "unset", "unsetopt",
	"vared", "wait", "whence", "where", "which", "zmodload", "zstyle",
}

// zshCommands reports once whether zsh can enumerate its command table.
var zshCommands = struct {
	once sync.Once
	ok   bool
}{}

// NewZshBackend creates the zsh-flavored backend. When zsh is present
// its command hash table supplies command names; otherwise behavior is
// identical to the generic backend.
func NewZshBackend(log *logger.Logger) *GenericBackend {
	b := newBackend(FamilyZsh, zshBuiltins, log)
	b.commands = listZshCommands
	return b
}

func listZshCommands(b *GenericBackend) []complete.Candidate {
	zshCommands.once.Do(func() {
		_, err := execWithTimeout(nil, "zsh", "-c", "print -l -- ${(k)commands} | head -1")
		zshCommands.ok = err == nil
		b.log.Debug().Str("backend", b.variant).Bool("commands", zshCommands.ok).Msg("native completion facility probed")
	})
	if !zshCommands.ok {
		return listPathCommands(b)
	}

	out, err := execWithTimeout(nil, "zsh", "-c", "print -l -- ${(k)commands}")
	if err != nil {
		return listPathCommands(b)
	}
	return linesToCandidates(out, complete.Candidate{
		Category: complete.CategoryCommand,
		Priority: complete.PriorityExecutable,
	})
}

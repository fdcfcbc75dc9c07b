package shell

import (
	"strings"
	"sync"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/logger"
)

var bashBuiltins = []string{
	"alias", "bg", "bind", "break", "builtin", "caller", "cd", "command",
	"compgen", "complete", "continue", "declare", "dirs", "disown",
	"echo", "enable", "eval", "exec", "exit", "export", "fc", "fg",
	"getopts", "hash", "help", "history", "jobs", "kill", "let", "local",
	"logout", "mapfile", "popd", "printf", "pushd", "pwd", "read",
	"readonly", "return", "set", "shift", "shopt", "source", "suspend",
	"test", "times", "trap", "type", "ulimit", "umask", "unalias",
	"unset", "wait",
}

// bashCompgen reports once whether bash's compgen facility is usable.
var bashCompgen = struct {
	once sync.Once
	ok   bool
}{}

// NewBashBackend creates the bash-flavored backend. When bash's own
// compgen is available, command names come from it (covering functions
// and aliases the PATH walk cannot see); otherwise behavior is
// identical to the generic backend.
func NewBashBackend(log *logger.Logger) *GenericBackend {
	b := newBackend(FamilyBash, bashBuiltins, log)
	b.commands = listBashCommands
	return b
}

func listBashCommands(b *GenericBackend) []complete.Candidate {
	bashCompgen.once.Do(func() {
		_, err := execWithTimeout(nil, "bash", "-c", "compgen -c cd")
		bashCompgen.ok = err == nil
		b.log.Debug().Str("backend", b.variant).Bool("compgen", bashCompgen.ok).Msg("native completion facility probed")
	})
	if !bashCompgen.ok {
		return listPathCommands(b)
	}

	out, err := execWithTimeout(nil, "bash", "-c", "compgen -c")
	if err != nil {
		return listPathCommands(b)
	}

	builtin := make(map[string]struct{}, len(b.builtins))
	for _, name := range b.builtins {
		builtin[name] = struct{}{}
	}

	candidates := linesToCandidates(out, complete.Candidate{
		Category: complete.CategoryCommand,
		Priority: complete.PriorityExecutable,
	})
	// compgen repeats the builtins; resolveCommands already ranks them.
	filtered := candidates[:0:0]
	for _, c := range candidates {
		if _, dup := builtin[c.Text]; dup {
			continue
		}
		if strings.HasPrefix(c.Text, "_") {
			continue // completion helper functions
		}
		filtered = append(filtered, c)
	}
	return filtered
}

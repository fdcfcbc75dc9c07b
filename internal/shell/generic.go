package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/logger"
	"github.com/tabwise/tabwise/internal/token"
)

// genericBuiltins is the portable builtin set shared by POSIX shells.
var genericBuiltins = []string{
	"alias", "bg", "cd", "command", "echo", "eval", "exec", "exit",
	"export", "fg", "jobs", "kill", "pwd", "read", "set", "source",
	"test", "trap", "type", "ulimit", "umask", "unalias", "unset", "wait",
}

// commonOptions is the static option list offered when the registry has
// nothing better for the command.
var commonOptions = []complete.Candidate{
	{Text: "--help", Description: "Show help", Category: complete.CategoryOption, Priority: complete.PriorityOption},
	{Text: "--version", Description: "Show version", Category: complete.CategoryOption, Priority: complete.PriorityOption},
	{Text: "--verbose", Description: "Verbose output", Category: complete.CategoryOption, Priority: complete.PriorityOption},
	{Text: "-h", Description: "Show help", Category: complete.CategoryOption, Priority: complete.PriorityOption},
}

// commandLister produces the command-name candidates for the command
// slot. Shell-flavored variants swap this for the shell's own facility
// when it is available.
type commandLister func(b *GenericBackend) []complete.Candidate

// GenericBackend resolves completions without assuming any particular
// shell. The bash and zsh variants embed it and override only the
// builtin list and the command lister.
type GenericBackend struct {
	variant   string
	builtins  []string
	resolvers map[string]resolverFunc
	commands  commandLister
	log       *logger.Logger

	initOnce sync.Once
	initErr  error
	registry *Registry
}

// NewGenericBackend creates the shell-agnostic backend.
func NewGenericBackend(log *logger.Logger) *GenericBackend {
	return newBackend(FamilyGeneric, genericBuiltins, log)
}

func newBackend(variant string, builtins []string, log *logger.Logger) *GenericBackend {
	if log == nil {
		log = logger.Nop()
	}
	return &GenericBackend{
		variant:   variant,
		builtins:  builtins,
		resolvers: defaultResolvers(),
		commands:  listPathCommands,
		log:       log,
	}
}

// Name implements complete.Backend.
func (b *GenericBackend) Name() string { return b.variant }

// Builtins implements complete.Backend.
func (b *GenericBackend) Builtins() []string { return b.builtins }

// Init loads the embedded registry. Resolve calls it lazily, so calling
// Init up front is optional.
func (b *GenericBackend) Init() error {
	b.initOnce.Do(func() {
		b.registry, b.initErr = loadRegistry()
		if b.initErr != nil {
			b.log.Warn().Str("backend", b.variant).Err(b.initErr).Msg("command registry unavailable")
		}
	})
	return b.initErr
}

// Resolve implements complete.Backend. Results are always filtered by
// prefix of the current word; a failing source contributes nothing.
func (b *GenericBackend) Resolve(ctx token.Context) []complete.Candidate {
	_ = b.Init()

	prefix := token.Unquote(ctx.CurrentWord)

	var candidates []complete.Candidate
	switch ctx.Slot {
	case token.SlotVariable:
		candidates = resolveVariables()
	case token.SlotOption:
		candidates = b.resolveOptions(ctx)
	case token.SlotPath:
		return resolvePath(ctx.CurrentWord, ctx.WorkDir)
	case token.SlotCommand:
		candidates = b.resolveCommands()
	default:
		candidates = b.resolveArguments(ctx)
	}

	return filterPrefix(candidates, prefix)
}

// resolveCommands merges builtins with the variant's command lister,
// keeping the first occurrence of each name.
func (b *GenericBackend) resolveCommands() []complete.Candidate {
	candidates := make([]complete.Candidate, 0, len(b.builtins))
	for _, name := range b.builtins {
		candidates = append(candidates, complete.Candidate{
			Text:        name,
			Description: "shell builtin",
			Category:    complete.CategoryCommand,
			Priority:    complete.PriorityBuiltin,
		})
	}
	candidates = append(candidates, b.commands(b)...)
	return dedupeByText(candidates)
}

// resolveOptions prefers the registry's option set for the command and
// falls back to the common static list.
func (b *GenericBackend) resolveOptions(ctx token.Context) []complete.Candidate {
	if b.registry != nil {
		if tool, ok := b.registry.Lookup(ctx.CommandName); ok && len(tool.Options) > 0 {
			candidates := make([]complete.Candidate, 0, len(tool.Options))
			for _, opt := range tool.Options {
				candidates = append(candidates, complete.Candidate{
					Text:        opt.Name,
					Description: opt.Description,
					Category:    complete.CategoryOption,
					Priority:    complete.PriorityOption,
				})
			}
			return candidates
		}
	}
	return commonOptions
}

// resolveArguments combines registry subcommands (when completing the
// first argument), the command's dynamic resolver, and plain files from
// the working directory.
func (b *GenericBackend) resolveArguments(ctx token.Context) []complete.Candidate {
	var candidates []complete.Candidate

	if b.registry != nil && argumentIndex(ctx) == 0 {
		if tool, ok := b.registry.Lookup(ctx.CommandName); ok {
			for _, sub := range tool.Subcommands {
				candidates = append(candidates, complete.Candidate{
					Text:        sub.Name,
					Description: sub.Description,
					Category:    complete.CategoryArgument,
					Priority:    complete.PrioritySubcommand,
				})
			}
		}
	}

	if resolver, ok := b.resolvers[ctx.CommandName]; ok {
		candidates = append(candidates, resolver(ctx)...)
	}

	candidates = append(candidates, listDir(ctx.WorkDir, "", "")...)
	return candidates
}

// argumentIndex is the zero-based position of the current word among
// the command's arguments, option words excluded.
func argumentIndex(ctx token.Context) int {
	if len(ctx.PreviousWords) == 0 {
		return 0
	}
	idx := 0
	for _, w := range ctx.PreviousWords[1:] {
		if !strings.HasPrefix(w, "-") {
			idx++
		}
	}
	return idx
}

// resolveVariables offers environment variable names, dollar prefix
// retained so the candidate replaces the typed word directly.
func resolveVariables() []complete.Candidate {
	env := os.Environ()
	candidates := make([]complete.Candidate, 0, len(env))
	for _, kv := range env {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		candidates = append(candidates, complete.Candidate{
			Text:     "$" + name,
			Category: complete.CategoryVariable,
			Priority: complete.PriorityVariable,
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Text < candidates[j].Text })
	return candidates
}

// resolvePath lists the directory named by the word's leading segment.
// Candidate text keeps the typed form (including an unexpanded ~) so
// accepting one replaces the word cleanly.
func resolvePath(currentWord, workDir string) []complete.Candidate {
	word := token.Unquote(currentWord)

	dirPart := ""
	basePrefix := word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dirPart = word[:i+1]
		basePrefix = word[i+1:]
	}

	listDirPath := dirPart
	if strings.HasPrefix(listDirPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		listDirPath = home + listDirPath[1:]
	}
	switch {
	case listDirPath == "":
		listDirPath = workDir
	case !filepath.IsAbs(listDirPath):
		listDirPath = filepath.Join(workDir, listDirPath)
	}

	return listDir(listDirPath, dirPart, basePrefix)
}

// listDir returns one candidate per entry of dir whose name starts with
// basePrefix, text prefixed with textPrefix. Hidden entries are offered
// only when explicitly asked for. Unreadable directories yield nothing.
func listDir(dir, textPrefix, basePrefix string) []complete.Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var candidates []complete.Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, basePrefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(basePrefix, ".") {
			continue
		}
		c := complete.Candidate{
			Text:     textPrefix + name,
			Category: complete.CategoryFile,
			Priority: complete.PriorityFile,
		}
		if entry.IsDir() {
			c.Text += "/"
			c.Category = complete.CategoryDirectory
			c.Priority = complete.PriorityDirectory
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Text < candidates[j].Text })
	return candidates
}

// listPathCommands walks every PATH directory for executables.
func listPathCommands(*GenericBackend) []complete.Candidate {
	var candidates []complete.Candidate
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			candidates = append(candidates, complete.Candidate{
				Text:     entry.Name(),
				Category: complete.CategoryCommand,
				Priority: complete.PriorityExecutable,
			})
		}
	}
	return candidates
}

// filterPrefix keeps only candidates whose text starts with prefix.
func filterPrefix(candidates []complete.Candidate, prefix string) []complete.Candidate {
	if prefix == "" {
		return candidates
	}
	filtered := candidates[:0:0]
	for _, c := range candidates {
		if strings.HasPrefix(c.Text, prefix) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// dedupeByText keeps the first occurrence of each candidate text.
func dedupeByText(candidates []complete.Candidate) []complete.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		if _, dup := seen[c.Text]; dup {
			continue
		}
		seen[c.Text] = struct{}{}
		out = append(out, c)
	}
	return out
}

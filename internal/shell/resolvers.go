package shell

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/token"
)

// resolverFunc queries the working environment for argument candidates
// of one command. Contract: short timeout on any external call, empty
// list on any failure, results deduplicated by text.
type resolverFunc func(ctx token.Context) []complete.Candidate

// defaultResolvers is the per-command dispatch table. Extend by adding
// an entry; the dispatch core never changes.
func defaultResolvers() map[string]resolverFunc {
	return map[string]resolverFunc{
		"git":    resolveGitRefs,
		"docker": resolveDockerContainers,
		"npm":    resolveNpmScripts,
		"kill":   resolveProcesses,
		"ssh":    resolveKnownHosts,
		"scp":    resolveKnownHosts,
		"ping":   resolveKnownHosts,
	}
}

// resolveGitRefs lists local and remote branch names of the repository
// containing the working directory.
func resolveGitRefs(ctx token.Context) []complete.Candidate {
	out, err := execWithTimeout(nil, "git", "-C", ctx.WorkDir,
		"for-each-ref", "--format=%(refname:short)", "refs/heads", "refs/remotes")
	if err != nil {
		return nil
	}
	return linesToCandidates(out, complete.Candidate{
		Description: "branch",
		Category:    complete.CategoryArgument,
		Priority:    complete.PrioritySubcommand,
	})
}

// resolveDockerContainers lists the names of known containers.
func resolveDockerContainers(ctx token.Context) []complete.Candidate {
	out, err := execWithTimeout(nil, "docker", "ps", "-a", "--format", "{{.Names}}")
	if err != nil {
		return nil
	}
	return linesToCandidates(out, complete.Candidate{
		Description: "container",
		Category:    complete.CategoryArgument,
		Priority:    complete.PrioritySubcommand,
	})
}

// resolveNpmScripts reads script names from package.json in the working
// directory.
func resolveNpmScripts(ctx token.Context) []complete.Candidate {
	data, err := os.ReadFile(filepath.Join(ctx.WorkDir, "package.json"))
	if err != nil {
		return nil
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}

	names := make([]string, 0, len(pkg.Scripts))
	for name := range pkg.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	candidates := make([]complete.Candidate, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, complete.Candidate{
			Text:        name,
			Description: pkg.Scripts[name],
			Category:    complete.CategoryArgument,
			Priority:    complete.PrioritySubcommand,
		})
	}
	return candidates
}

// resolveProcesses lists pid plus process name pairs from the process
// table.
func resolveProcesses(token.Context) []complete.Candidate {
	out, err := execWithTimeout(nil, "ps", "-eo", "pid=,comm=")
	if err != nil {
		return nil
	}

	var candidates []complete.Candidate
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		pid := fields[0]
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		candidates = append(candidates, complete.Candidate{
			Text:        pid,
			Display:     pid + " (" + fields[1] + ")",
			Description: fields[1],
			Category:    complete.CategoryOther,
			Priority:    complete.PriorityProcess,
		})
	}
	return candidates
}

// resolveKnownHosts gathers host names from the SSH client config,
// known_hosts and the system hosts file.
func resolveKnownHosts(token.Context) []complete.Candidate {
	var names []string
	if home, err := os.UserHomeDir(); err == nil {
		names = append(names, sshConfigHosts(filepath.Join(home, ".ssh", "config"))...)
		names = append(names, knownHostsNames(filepath.Join(home, ".ssh", "known_hosts"))...)
	}
	names = append(names, etcHostsNames("/etc/hosts")...)

	var candidates []complete.Candidate
	seen := make(map[string]struct{})
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		candidates = append(candidates, complete.Candidate{
			Text:     name,
			Category: complete.CategoryHostname,
			Priority: complete.PriorityHostname,
		})
	}
	return candidates
}

// sshConfigHosts extracts Host aliases, skipping wildcard patterns.
func sshConfigHosts(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Host") {
			continue
		}
		for _, name := range fields[1:] {
			if strings.ContainsAny(name, "*?!") {
				continue
			}
			names = append(names, name)
		}
	}
	return names
}

// knownHostsNames extracts host names from a known_hosts file, skipping
// hashed entries.
func knownHostsNames(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "|") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for _, name := range strings.Split(fields[0], ",") {
			name = strings.TrimPrefix(name, "[")
			if i := strings.Index(name, "]"); i >= 0 {
				name = name[:i]
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// etcHostsNames extracts names from an /etc/hosts style file.
func etcHostsNames(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		for _, name := range fields[1:] {
			if name != "localhost" && !strings.HasPrefix(name, "#") {
				names = append(names, name)
			}
		}
	}
	return names
}

// linesToCandidates converts newline-delimited tool output into
// candidates stamped from the template, deduplicated by text.
func linesToCandidates(out []byte, template complete.Candidate) []complete.Candidate {
	var candidates []complete.Candidate
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		c := template
		c.Text = text
		candidates = append(candidates, c)
	}
	return candidates
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabwise/tabwise/internal/shell"
)

// isolateEnv points HOME, XDG dirs, PATH and SHELL at temp locations so
// commands see a clean machine.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("PATH", filepath.Join(home, "bin"))
	t.Setenv("SHELL", "")
	require.NoError(t, os.MkdirAll(filepath.Join(home, "bin"), 0o755))
	return home
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestComplete_PlainProtocol(t *testing.T) {
	home := isolateEnv(t)
	for _, name := range []string{"foo", "foobar"} {
		require.NoError(t, os.WriteFile(filepath.Join(home, "bin", name), []byte("#!/bin/sh\n"), 0o755))
	}

	var buf bytes.Buffer
	err := Complete(&buf, CompleteParams{
		Line:    "fo",
		Cursor:  -1,
		WorkDir: home,
	})
	require.NoError(t, err)

	assert.Equal(t, "foo\nfoobar\n", buf.String())
}

func TestComplete_MaxSuggestionsFromConfig(t *testing.T) {
	home := isolateEnv(t)
	for _, name := range []string{"foo", "foobar", "fox"} {
		require.NoError(t, os.WriteFile(filepath.Join(home, "bin", name), []byte("#!/bin/sh\n"), 0o755))
	}

	cfgPath := writeTestConfig(t, `
suggestions:
  max: 1
fuzzy:
  enabled: false
`)

	var buf bytes.Buffer
	err := Complete(&buf, CompleteParams{
		ConfigPath: cfgPath,
		Line:       "fo",
		Cursor:     -1,
		WorkDir:    home,
	})
	require.NoError(t, err)

	assert.Equal(t, "foo\n", buf.String())
}

func TestComplete_PrettyOutput(t *testing.T) {
	home := isolateEnv(t)

	var buf bytes.Buffer
	err := Complete(&buf, CompleteParams{
		Line:    "cd",
		Cursor:  -1,
		WorkDir: home,
		Pretty:  true,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cd")
}

func TestHistoryAddSearchList(t *testing.T) {
	home := isolateEnv(t)
	storePath := filepath.Join(home, "history.jsonl")
	cfgPath := writeTestConfig(t, `
history:
  mode: solo
  path: `+storePath+`
`)

	require.NoError(t, HistoryAdd(HistoryAddParams{
		ConfigPath: cfgPath,
		Command:    "make install",
		WorkDir:    home,
	}))
	require.NoError(t, HistoryAdd(HistoryAddParams{
		ConfigPath: cfgPath,
		Command:    "git status",
	}))

	var list bytes.Buffer
	require.NoError(t, HistoryList(&list, HistoryParams{ConfigPath: cfgPath, Limit: 10}))
	assert.Contains(t, list.String(), "make install")
	assert.Contains(t, list.String(), "git status")

	var search bytes.Buffer
	require.NoError(t, HistorySearch(&search, HistoryParams{ConfigPath: cfgPath, Query: "make", Limit: 10}))
	assert.Contains(t, search.String(), "make install")
	assert.NotContains(t, search.String(), "git status")
}

func TestHistoryAdd_EmptyCommand(t *testing.T) {
	isolateEnv(t)
	assert.Error(t, HistoryAdd(HistoryAddParams{Command: ""}))
}

func TestHistoryStats(t *testing.T) {
	home := isolateEnv(t)
	cfgPath := writeTestConfig(t, `
history:
  mode: solo
  path: `+filepath.Join(home, "history.jsonl")+`
`)
	require.NoError(t, HistoryAdd(HistoryAddParams{ConfigPath: cfgPath, Command: "ls"}))

	var buf bytes.Buffer
	require.NoError(t, HistoryStats(&buf, HistoryParams{ConfigPath: cfgPath}))
	assert.Contains(t, buf.String(), "ls")
}

func TestStatus(t *testing.T) {
	isolateEnv(t)

	var buf bytes.Buffer
	require.NoError(t, Status(&buf, StatusParams{}))
	assert.Contains(t, buf.String(), "generic")
	assert.Contains(t, buf.String(), "subsequence")
}

func TestValidateCommand(t *testing.T) {
	isolateEnv(t)

	var buf bytes.Buffer
	err := Validate(&buf, writeTestConfig(t, "suggestions:\n  max: 5\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "valid")

	buf.Reset()
	err = Validate(&buf, writeTestConfig(t, "history:\n  mode: turbo\n"))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "errors")
}

func TestInitConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, InitConfig(&buf, dir))
	assert.FileExists(t, filepath.Join(dir, "config.yml"))

	// Starter config must validate cleanly.
	var out bytes.Buffer
	require.NoError(t, Validate(&out, filepath.Join(dir, "config.yml")))

	assert.Error(t, InitConfig(&buf, dir), "refuses to clobber")
}

func TestSchemaCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Schema(&buf))
	assert.Contains(t, buf.String(), "Tabwise configuration")
}

func TestDetectShellFamily(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, shell.FamilyZsh, detectShellFamily())

	t.Setenv("SHELL", "/bin/bash")
	assert.Equal(t, shell.FamilyBash, detectShellFamily())

	t.Setenv("SHELL", "/bin/fish")
	assert.Equal(t, shell.FamilyGeneric, detectShellFamily())
}

package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRCFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetRCFilePath("bash")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bashrc"), path)

	path, err = GetRCFilePath("zsh")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".zshrc"), path)

	_, err = GetRCFilePath("fish")
	assert.Error(t, err)
}

func TestSetup_InstallAndRefresh(t *testing.T) {
	rcFile := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(rcFile, []byte("export EDITOR=vim\n"), 0o644))

	result, err := Setup("bash", rcFile)
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.True(t, IsInstalled(rcFile))

	data, err := os.ReadFile(rcFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export EDITOR=vim", "existing content preserved")
	assert.Contains(t, string(data), "tabwise complete")

	// A second install replaces the section instead of duplicating it.
	result, err = Setup("bash", rcFile)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err = os.ReadFile(rcFile)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), HookMarkerStart))
}

func TestSetup_CreatesMissingRCFile(t *testing.T) {
	rcFile := filepath.Join(t.TempDir(), ".zshrc")

	_, err := Setup("zsh", rcFile)
	require.NoError(t, err)
	assert.True(t, IsInstalled(rcFile))

	data, err := os.ReadFile(rcFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zshaddhistory")
}

func TestSetup_UnsupportedShell(t *testing.T) {
	_, err := Setup("powershell", filepath.Join(t.TempDir(), "rc"))
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	rcFile := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(rcFile, []byte("alias ll='ls -la'\n"), 0o644))

	_, err := Setup("bash", rcFile)
	require.NoError(t, err)

	result, err := Remove(rcFile)
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.False(t, IsInstalled(rcFile))

	data, err := os.ReadFile(rcFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alias ll", "unrelated content preserved")
	assert.NotContains(t, string(data), "tabwise")

	// Removing again is a no-op.
	result, err = Remove(rcFile)
	require.NoError(t, err)
	assert.False(t, result.Updated)
}

func TestRemove_MissingFile(t *testing.T) {
	result, err := Remove(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.False(t, result.Updated)
}

func TestRemoveMarkedSection(t *testing.T) {
	content := "before\n" + HookMarkerStart + "\nhook\n" + HookMarkerEnd + "\nafter\n"
	got := removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
	assert.Equal(t, "before\nafter\n", got)
}

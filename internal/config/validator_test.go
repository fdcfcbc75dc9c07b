package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingFile(t *testing.T) {
	_, err := Validate("/nonexistent/config.yml")
	assert.ErrorContains(t, err, "not found")
}

func TestValidate_ValidFile(t *testing.T) {
	path := writeConfig(t, "config.yml", `
suggestions:
  max: 20
fuzzy:
  strategy: external
  helper: fzf
shell:
  family: zsh
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidate_SchemaViolation(t *testing.T) {
	path := writeConfig(t, "config.yml", "history:\n  mode: turbo\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidate_ExternalStrategyNeedsHelper(t *testing.T) {
	path := writeConfig(t, "config.yml", `
fuzzy:
  strategy: external
  helper: ""
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "fuzzy/helper", result.Errors[0].Field)
}

func TestValidate_TOMLGoesThroughLoader(t *testing.T) {
	path := writeConfig(t, "config.toml", "[history]\nmode = \"solo\"\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

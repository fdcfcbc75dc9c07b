package config

import (
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// expandTemplate renders a configured string value as a text template
// with the sprig function set. Available variables: HOME, CONFIG_DIR,
// WORK_DIR. A value that fails to parse or render is returned
// unchanged; configuration mistakes degrade, they never crash loading.
func (c *Config) expandTemplate(value string) string {
	if !strings.Contains(value, "{{") {
		return value
	}

	tmpl, err := template.New("value").Funcs(sprig.TxtFuncMap()).Parse(value)
	if err != nil {
		return value
	}

	home, _ := os.UserHomeDir()
	workDir, _ := os.Getwd()
	data := map[string]string{
		"HOME":       home,
		"CONFIG_DIR": c.ConfigDir,
		"WORK_DIR":   workDir,
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return value
	}
	return out.String()
}

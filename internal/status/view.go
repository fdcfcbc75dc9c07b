// Package status collects and renders a human-readable report of the
// completion engine: active backend, ranking strategy, history sources
// and their health.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/history"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))
)

// Render renders the status data to a string.
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderEngine(data))
	b.WriteString("\n")

	b.WriteString(renderHistory(data))

	if len(data.TopCommands) > 0 {
		b.WriteString("\n")
		b.WriteString(renderTopCommands(data))
	}

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")
	if data.ConfigFound {
		b.WriteString(titleStyle.Render("📝 Config: ") + subtleStyle.Render(data.ConfigPath) + "\n")
	} else {
		b.WriteString(titleStyle.Render("📝 Config: ") + subtleStyle.Render("built-in defaults") + "\n")
	}
	return b.String()
}

func renderEngine(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Completion engine:") + "\n")

	b.WriteString("   " + keyStyle.Render("Shell: ") + valueStyle.Render(data.Shell) + "\n")
	b.WriteString("   " + keyStyle.Render("Backend: ") + valueStyle.Render(data.BackendName) + "\n")

	if data.FuzzyEnabled {
		availability := successStyle.Render("✓")
		if !data.FuzzyAvailable {
			availability = errorStyle.Render("✗ unavailable")
		}
		b.WriteString("   " + keyStyle.Render("Fuzzy: ") +
			valueStyle.Render(data.FuzzyStrategy) + " " + availability + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("Fuzzy: ") + subtleStyle.Render("disabled") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Cache TTL: ") + valueStyle.Render(data.CacheTTL) + "\n")
	b.WriteString("   " + keyStyle.Render("Max suggestions: ") +
		valueStyle.Render(fmt.Sprintf("%d", data.MaxSuggestions)) + "\n")

	return b.String()
}

func renderHistory(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕘 History:") + "\n")

	b.WriteString("   " + keyStyle.Render("Mode: ") + valueStyle.Render(data.HistoryMode) + "\n")
	b.WriteString("   " + keyStyle.Render("Store: ") + subtleStyle.Render(data.StorePath) + "\n")
	b.WriteString("   " + keyStyle.Render("Entries: ") +
		valueStyle.Render(fmt.Sprintf("%d (%d unique)", data.TotalEntries, data.UniqueCmds)) + "\n")

	for _, src := range data.Sources {
		status := successStyle.Render("✓")
		detail := fmt.Sprintf(" %d entries", src.Entries)
		if !src.Available {
			status = errorStyle.Render("✗")
			detail = " unavailable"
		}
		line := fmt.Sprintf("   %s %s%s", status, valueStyle.Render(src.Name), subtleStyle.Render(detail))
		if src.Path != "" {
			line += " " + subtleStyle.Render("("+src.Path+")")
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func renderTopCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🏆 Most used commands:") + "\n")
	for i, row := range data.TopCommands {
		b.WriteString(fmt.Sprintf("   %d. %s %s\n",
			i+1,
			valueStyle.Render(row.Command),
			subtleStyle.Render(fmt.Sprintf("(%d)", row.Count))))
	}
	return b.String()
}

// RenderStats renders aggregated history statistics.
func RenderStats(stats history.Stats, topN int) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("🕘 History statistics:") + "\n")
	b.WriteString("   " + keyStyle.Render("Total commands: ") +
		valueStyle.Render(fmt.Sprintf("%d", stats.Total)) + "\n")
	b.WriteString("   " + keyStyle.Render("Unique commands: ") +
		valueStyle.Render(fmt.Sprintf("%d", stats.Unique)) + "\n")

	top := stats.Top(topN)
	if len(top) > 0 {
		b.WriteString(sectionStyle.Render("🏆 Most used:") + "\n")
		for i, row := range top {
			b.WriteString(fmt.Sprintf("   %d. %s %s\n",
				i+1,
				valueStyle.Render(row.Command),
				subtleStyle.Render(fmt.Sprintf("(%d)", row.Count))))
		}
	}

	return b.String()
}

// RenderCandidates renders a ranked candidate list for interactive
// inspection. The plain completion protocol prints bare text instead.
func RenderCandidates(candidates []complete.Candidate) string {
	if len(candidates) == 0 {
		return subtleStyle.Render("No candidates")
	}

	var b strings.Builder
	for _, c := range candidates {
		line := valueStyle.Render(c.Label())
		if c.Category != "" {
			line += " " + categoryStyle.Render("["+string(c.Category)+"]")
		}
		if c.Description != "" {
			line += " " + subtleStyle.Render(c.Description)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

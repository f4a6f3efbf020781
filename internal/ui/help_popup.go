package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#BD93F9")).
	Padding(1, 2)

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD")).Render("⌨️  Keyboard Shortcuts")
	content.WriteString(title)
	content.WriteString("\n\n")

	keys := m.cfg.Keys

	section := func(name string, bindings []struct{ key, desc string }) {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C")).Render(name)
		content.WriteString(header + "\n")
		for _, b := range bindings {
			keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Width(18)
			descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9"))
			content.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(b.key), descStyle.Render(b.desc)))
		}
		content.WriteString("\n")
	}

	section("Form", []struct{ key, desc string }{
		{strings.Join(keys.NextEditor, "/"), "Switch field (commits edits)"},
		{strings.Join(keys.Reload, "/"), "Reload stored values"},
		{strings.Join(keys.Exit, "/"), "Quit (flushes edits)"},
	})

	section("Editing", []struct{ key, desc string }{
		{strings.Join(keys.Complete, "/"), "Trigger completion"},
		{strings.Join(keys.Format, "/"), "Format buffer"},
		{strings.Join(keys.Snippets, "/"), "Snippet palette"},
		{"." + " (script)", "Sandbox member list"},
		{"esc", "Dismiss popup"},
	})

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc to close"))

	popupBox := popupStyle.
		Width(46).
		MaxHeight(m.height - 4).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}

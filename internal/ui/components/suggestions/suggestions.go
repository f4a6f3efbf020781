// Package suggestions provides the completion dropdown rendered under the
// code editor's cursor line.
package suggestions

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/viethqb/pydbapi-admin/internal/complete"
)

// Styles for the suggestions dropdown
type Styles struct {
	Box      lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Kind     lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#282A36")).
			Background(lipgloss.Color("#8BE9FD")),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			Italic(true),
		Kind: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")),
	}
}

// Model represents the dropdown state
type Model struct {
	items    []complete.Suggestion
	selected int
	visible  bool
	maxShow  int
	styles   Styles
}

// New creates a new suggestions model
func New() Model {
	return Model{
		maxShow: 6,
		styles:  DefaultStyles(),
	}
}

// SetItems sets the suggestion items and clamps the selection.
func (m Model) SetItems(items []complete.Suggestion) Model {
	m.items = items
	if m.selected >= len(items) || m.selected < 0 {
		m.selected = 0
	}
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	return m
}

// Show makes the dropdown visible
func (m Model) Show() Model {
	m.visible = true
	return m
}

// Hide hides the dropdown
func (m Model) Hide() Model {
	m.visible = false
	m.selected = 0
	return m
}

// Visible returns visibility state
func (m Model) Visible() bool {
	return m.visible
}

// Selected returns the currently selected suggestion, if any.
func (m Model) Selected() (complete.Suggestion, bool) {
	if m.selected >= 0 && m.selected < len(m.items) {
		return m.items[m.selected], true
	}
	return complete.Suggestion{}, false
}

// Len returns number of items
func (m Model) Len() int {
	return len(m.items)
}

// MoveUp moves selection up
func (m Model) MoveUp() Model {
	if m.selected > 0 {
		m.selected--
	}
	return m
}

// MoveDown moves selection down
func (m Model) MoveDown() Model {
	if m.selected < len(m.items)-1 {
		m.selected++
	}
	return m
}

func kindTag(k complete.Kind) string {
	switch k {
	case complete.KindMethod:
		return "ƒ"
	case complete.KindGlobal:
		return "g"
	case complete.KindSnippet:
		return "✂"
	default:
		return "k"
	}
}

// View renders the suggestions dropdown
func (m Model) View() string {
	if !m.visible || len(m.items) == 0 {
		return ""
	}

	// Calculate visible window
	start := 0
	if m.selected > m.maxShow/2 {
		start = m.selected - m.maxShow/2
	}
	end := start + m.maxShow
	if end > len(m.items) {
		end = len(m.items)
		if end-m.maxShow >= 0 {
			start = end - m.maxShow
		} else {
			start = 0
		}
	}

	var views []string
	for i := start; i < end; i++ {
		s := m.items[i]
		style := m.styles.Item
		prefix := "  "
		if i == m.selected {
			style = m.styles.Selected
			prefix = "> "
		}
		line := prefix + m.styles.Kind.Render(kindTag(s.Kind)) + " " + style.Render(s.Text)
		if s.Detail != "" {
			line += " " + m.styles.Detail.Render(s.Detail)
		}
		views = append(views, line)
	}

	return m.styles.Box.Render(strings.Join(views, "\n"))
}

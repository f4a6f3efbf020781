package codeeditor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viethqb/pydbapi-admin/internal/snippet"
	"github.com/viethqb/pydbapi-admin/internal/ui/highlight"
)

// paletteModel is the searchable snippet picker popup. Selection inserts
// the snippet at the caret through the editor's normal change path.
type paletteModel struct {
	open    bool
	input   textinput.Model
	entries []snippet.Entry
	idx     int
}

func newPalette() paletteModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search snippets..."
	ti.CharLimit = 60
	ti.Width = 30
	return paletteModel{input: ti}
}

func (p paletteModel) openPalette() paletteModel {
	p.open = true
	p.input.SetValue("")
	p.input.Focus()
	p.entries = snippet.Catalog()
	p.idx = 0
	return p
}

func (p paletteModel) close() paletteModel {
	p.open = false
	p.input.Blur()
	return p
}

// updatePalette handles keys while the palette is open.
func (m Model) updatePalette(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.palette = m.palette.close()
		return m, nil
	case "up", "ctrl+p":
		if m.palette.idx > 0 {
			m.palette.idx--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.palette.idx < len(m.palette.entries)-1 {
			m.palette.idx++
		}
		return m, nil
	case "enter":
		if m.palette.idx >= 0 && m.palette.idx < len(m.palette.entries) {
			m = m.InsertSnippet(m.palette.entries[m.palette.idx].Insert)
		}
		m.palette = m.palette.close()
		return m, nil
	}

	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	m.palette.entries = snippet.Filter(m.palette.input.Value())
	if m.palette.idx >= len(m.palette.entries) {
		m.palette.idx = 0
	}
	return m, cmd
}

var (
	paletteBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)
	paletteTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))
	paletteItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))
	paletteSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#50FA7B")).
				Bold(true)
	paletteFaintStyle = lipgloss.NewStyle().Faint(true)
)

func (p paletteModel) view(width int) string {
	var b strings.Builder
	b.WriteString(paletteTitleStyle.Render("Insert template snippet"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	if len(p.entries) == 0 {
		b.WriteString(paletteFaintStyle.Render("no matches"))
	}
	for i, e := range p.entries {
		style := paletteItemStyle
		prefix := "  "
		if i == p.idx {
			style = paletteSelectedStyle
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Render(e.ID) + " " + paletteFaintStyle.Render(e.Label))
		b.WriteString("\n    " + highlight.SQL(e.Insert))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(paletteFaintStyle.Render("Enter: insert • Esc: cancel"))

	w := 56
	if w > width-4 {
		w = width - 4
	}
	return paletteBoxStyle.Width(w).Render(b.String())
}

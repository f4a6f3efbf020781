// Package ui hosts the API-body editing form: one editor for the SQL
// body content and one for the result-transform script, sharing a
// completion registry and format dispatcher.
package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viethqb/pydbapi-admin/internal/complete"
	"github.com/viethqb/pydbapi-admin/internal/config"
	"github.com/viethqb/pydbapi-admin/internal/format"
	"github.com/viethqb/pydbapi-admin/internal/lang"
	"github.com/viethqb/pydbapi-admin/internal/ui/components/codeeditor"
)

const (
	sampleContent = `SELECT id, name, created_at
FROM users
WHERE 1=1
{% if name %}AND name LIKE {{ name | sql_str }}{% endif %}
{% if status %}AND status = {{ status | sql_int }}{% endif %}`

	sampleTransform = `let rows = db.query(sql, params);
map(rows, {
  {id: .id, name: .name}
})`
)

// apiBody is the form state the editors are bound to. It stands in for
// the endpoint record the admin dashboard would persist.
type apiBody struct {
	Content   string
	Transform string
}

// Model is the root TUI model.
type Model struct {
	cfg  *config.Config
	body *apiBody

	editors []codeeditor.Model
	labels  []string
	focus   int

	width    int
	height   int
	showHelp bool
}

// NewModel builds the form with both editors mounted and the first
// focused.
func NewModel(cfg *config.Config) Model {
	body := &apiBody{Content: sampleContent, Transform: sampleTransform}

	reg := complete.NewRegistry()
	disp := format.NewDispatcher()

	opts := cfg.Editor
	newProps := func(l lang.Language, value, placeholder string, onChange func(string)) codeeditor.Props {
		return codeeditor.Props{
			Language:     l,
			Value:        value,
			Placeholder:  placeholder,
			OnChange:     onChange,
			AutoHeight:   opts.AutoHeight,
			MinHeight:    opts.MinHeight,
			MaxHeight:    opts.MaxHeight,
			LineHeight:   opts.LineHeight,
			ChromeRows:   opts.ChromeRows,
			FormatKeys:   cfg.Keys.Format,
			CompleteKeys: cfg.Keys.Complete,
			SnippetKeys:  cfg.Keys.Snippets,
		}
	}

	editors := []codeeditor.Model{
		codeeditor.New(newProps(lang.SQL, body.Content, "SELECT ...",
			func(v string) {
				body.Content = v
				log.Printf("content committed (%d bytes)", len(v))
			}), reg, disp),
		codeeditor.New(newProps(lang.Script, body.Transform, "// transform the result rows",
			func(v string) {
				body.Transform = v
				log.Printf("transform committed (%d bytes)", len(v))
			}), reg, disp),
	}

	m := Model{
		cfg:     cfg,
		body:    body,
		editors: editors,
		labels:  []string{"Content", "Result transform"},
	}
	m.editors[0], _ = m.editors[0].Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.editors[0].Init()
}

func keyMatches(msg tea.KeyMsg, keys []string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.editors {
			m.editors[i] = m.editors[i].SetWidth(msg.Width - 4)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "esc" || keyMatches(msg, m.cfg.Keys.Help) {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case keyMatches(msg, m.cfg.Keys.Help):
			m.showHelp = true
			return m, nil

		case keyMatches(msg, m.cfg.Keys.Exit):
			// Flush unsaved edits before the program goes away.
			for i := range m.editors {
				m.editors[i].Close()
			}
			return m, tea.Quit

		case keyMatches(msg, m.cfg.Keys.NextEditor):
			m.editors[m.focus] = m.editors[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.editors)
			var cmd tea.Cmd
			m.editors[m.focus], cmd = m.editors[m.focus].Focus()
			return m, cmd

		case keyMatches(msg, m.cfg.Keys.Reload):
			// Pretend the record was re-fetched from the backend: push
			// the stored values back into both editors.
			var cmds []tea.Cmd
			for i := range m.editors {
				var cmd tea.Cmd
				switch i {
				case 0:
					m.editors[i], cmd = m.editors[i].SetExternalValue(m.body.Content)
				case 1:
					m.editors[i], cmd = m.editors[i].SetExternalValue(m.body.Transform)
				}
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	// Everything else goes to every editor: the focused one consumes
	// keystrokes, and deferred sync messages find their session by
	// pointer regardless of focus.
	var cmds []tea.Cmd
	for i := range m.editors {
		var cmd tea.Cmd
		m.editors[i], cmd = m.editors[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	focusLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{titleStyle.Render("Edit API endpoint body"), ""}
	for i, ed := range m.editors {
		label := labelStyle
		if i == m.focus {
			label = focusLabel
		}
		sections = append(sections, label.Render(m.labels[i]), ed.View(), "")
	}
	sections = append(sections, helpStyle.Render(
		"tab: switch field • ctrl+space: complete • ctrl+f: format • ctrl+t: snippets • ctrl+h: help • ctrl+c: quit"))
	main := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.showHelp {
		return m.renderHelpPopup(main)
	}
	return main
}

// Package codeeditor is the embeddable editor for API bodies: templated
// SQL content and sandboxed transform scripts. The hosting form owns the
// value; the component owns the buffer and keeps the two converged across
// focus, blur, external updates, and unmount.
package codeeditor

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/viethqb/pydbapi-admin/internal/complete"
	"github.com/viethqb/pydbapi-admin/internal/format"
	"github.com/viethqb/pydbapi-admin/internal/lang"
	"github.com/viethqb/pydbapi-admin/internal/ui/components/suggestions"
	"github.com/viethqb/pydbapi-admin/internal/ui/highlight"
)

// Props is the contract the hosting form passes in. Value is the
// controlled string the form treats as ground truth; the buffer is a
// synchronized mirror of it.
type Props struct {
	Language    lang.Language
	Value       string
	Placeholder string
	Disabled    bool

	// OnChange receives committed buffer content: on blur with changes,
	// and once more from Close when unsaved edits remain.
	OnChange func(string)
	// OnBlur, when set, fires after the blur commit.
	OnBlur func()
	// OnReady hands the host a getter for imperative pre-unmount reads.
	OnReady func(getValue func() string)

	// Auto-height sizing. Zero values take defaults.
	AutoHeight bool
	MinHeight  int
	MaxHeight  int
	LineHeight int
	ChromeRows int

	// Key bindings, usually from the keys section of the config file.
	// Empty slices take defaults.
	FormatKeys   []string
	CompleteKeys []string
	SnippetKeys  []string
}

func (p *Props) applyDefaults() {
	if p.MinHeight == 0 {
		p.MinHeight = 3
	}
	if p.MaxHeight == 0 {
		p.MaxHeight = 15
	}
	if p.LineHeight == 0 {
		p.LineHeight = 1
	}
	if p.ChromeRows == 0 {
		p.ChromeRows = 2
	}
	if len(p.FormatKeys) == 0 {
		p.FormatKeys = []string{"ctrl+f"}
	}
	if len(p.CompleteKeys) == 0 {
		// ctrl+space arrives as ctrl+@ on most terminals.
		p.CompleteKeys = []string{"ctrl+@", "ctrl+space"}
	}
	if len(p.SnippetKeys) == 0 {
		p.SnippetKeys = []string{"ctrl+t"}
	}
}

func matchesKey(msg tea.KeyMsg, keys []string) bool {
	s := msg.String()
	for _, k := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// statusExpireMsg clears a transient status notice. It carries the
// generation of the notice it belongs to, so an expiry from an earlier
// notice cannot clear a newer one early.
type statusExpireMsg struct {
	sess *session
	gen  int
}

// Model is the Bubble Tea component. It carries a pointer session so the
// buffer survives the value-copy churn of the Elm update loop.
type Model struct {
	props      Props
	sess       *session
	provider   *complete.Provider
	dispatcher *format.Dispatcher

	width   int
	focused bool

	sugg    suggestions.Model
	palette paletteModel

	status    string
	statusGen int
}

// New mounts a session: the buffer is seeded from the external value, not
// from an empty default, and the mirror is set before anything else runs.
func New(props Props, reg *complete.Registry, disp *format.Dispatcher) Model {
	props.applyDefaults()

	ta := textarea.New()
	ta.Placeholder = props.Placeholder
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(78)
	ta.SetValue(props.Value)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	sess := &session{buffer: &ta, lastExternal: props.Value}

	m := Model{
		props:      props,
		sess:       sess,
		provider:   reg.EnsureRegistered(props.Language),
		dispatcher: disp,
		width:      80,
		sugg:       suggestions.New(),
		palette:    newPalette(),
	}
	m.refreshHeight()

	if props.OnReady != nil {
		props.OnReady(func() string {
			if sess.buffer == nil {
				return sess.lastExternal
			}
			return sess.buffer.Value()
		})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textarea.Blink }

// Value returns the current buffer content, falling back to the last
// external value once the session is torn down.
func (m Model) Value() string {
	if m.sess.buffer == nil {
		return m.sess.lastExternal
	}
	return m.sess.buffer.Value()
}

// Focused reports whether the editor has input focus.
func (m Model) Focused() bool { return m.focused }

// Focus gives the editor input focus.
func (m Model) Focus() (Model, tea.Cmd) {
	if m.sess.closed || m.props.Disabled {
		return m, nil
	}
	m.focused = true
	return m, m.sess.buffer.Focus()
}

// Blur drops focus and commits the buffer if it diverged from the
// external value (and is non-empty). Unchanged content commits nothing.
func (m Model) Blur() Model {
	if m.sess.buffer != nil {
		m.sess.buffer.Blur()
	}
	m.focused = false
	m.sugg = m.sugg.Hide()
	m.palette = m.palette.close()
	m.sess.commit(m.props.OnChange)
	if m.props.OnBlur != nil {
		m.props.OnBlur()
	}
	return m
}

// SetWidth resizes the editor surface.
func (m Model) SetWidth(w int) Model {
	if w < 20 {
		w = 20
	}
	m.width = w
	if m.sess.buffer != nil {
		m.sess.buffer.SetWidth(w - 2)
	}
	return m
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyExternalValueMsg:
		s := m.sess
		// Stale generations lose: a newer external value or teardown
		// already superseded this write.
		if msg.sess == s && msg.gen == s.syncGen && !s.closed && s.buffer != nil {
			s.buffer.SetValue(msg.value)
			// Reassert the mirror: a blur commit between scheduling and
			// delivery moved it, and without this the programmatic write
			// would read as a user edit at the next blur.
			s.lastExternal = msg.value
			s.dirty = false
			m.refreshHeight()
		}
		return m, nil

	case statusExpireMsg:
		if msg.sess == m.sess && msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused || m.props.Disabled || m.sess.closed {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.palette.open {
		return m.updatePalette(msg)
	}

	if m.sugg.Visible() {
		switch msg.String() {
		case "up", "ctrl+p":
			m.sugg = m.sugg.MoveUp()
			return m, nil
		case "down", "ctrl+n":
			m.sugg = m.sugg.MoveDown()
			return m, nil
		case "enter", "tab":
			if s, ok := m.sugg.Selected(); ok {
				m = m.applySuggestion(s)
			}
			m.sugg = m.sugg.Hide()
			return m, nil
		case "esc":
			m.sugg = m.sugg.Hide()
			return m, nil
		}
	}

	switch {
	case matchesKey(msg, m.props.CompleteKeys):
		m.sugg = m.sugg.SetItems(m.provider.Suggest(m.lineBeforeCursor())).Show()
		return m, nil
	case matchesKey(msg, m.props.FormatKeys):
		return m.formatBuffer()
	case matchesKey(msg, m.props.SnippetKeys):
		m.palette = m.palette.openPalette()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.sess.buffer.Value()
	ta := *m.sess.buffer
	ta, cmd = ta.Update(msg)
	*m.sess.buffer = ta
	if m.sess.buffer.Value() != before {
		m.sess.dirty = true
	}
	m.refreshHeight()

	// Typing "." after a sandbox handle pops the member list; while the
	// dropdown is up, every keystroke re-filters it.
	line := m.lineBeforeCursor()
	if m.sugg.Visible() {
		items := m.provider.Suggest(line)
		m.sugg = m.sugg.SetItems(items)
		if len(items) == 0 {
			m.sugg = m.sugg.Hide()
		}
	} else if msg.String() == "." && m.props.Language == lang.Script && complete.NamespaceTriggered(line) {
		m.sugg = m.sugg.SetItems(m.provider.Suggest(line)).Show()
	}
	return m, cmd
}

// formatBuffer runs the dispatcher over the whole buffer. On failure the
// buffer is left exactly as it was and the error shows as a transient
// notice.
func (m Model) formatBuffer() (Model, tea.Cmd) {
	src := m.sess.buffer.Value()
	out, err := m.dispatcher.Format(src, m.props.Language)
	if err != nil {
		return m.notify(err.Error())
	}
	if out != src {
		m.sess.buffer.SetValue(out)
		m.sess.dirty = true
		m.refreshHeight()
	}
	return m.notify("formatted")
}

func (m Model) notify(msg string) (Model, tea.Cmd) {
	m.status = msg
	m.statusGen++
	sess, gen := m.sess, m.statusGen
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusExpireMsg{sess: sess, gen: gen}
	})
}

// lineBeforeCursor approximates the text preceding the cursor as the whole
// current line. The same end-of-line approximation backs the completion
// heuristic; inaccuracy mid-line is an accepted limitation.
func (m Model) lineBeforeCursor() string {
	if m.sess.buffer == nil {
		return ""
	}
	row := m.sess.buffer.Line()
	lines := strings.Split(m.sess.buffer.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return ""
	}
	return lines[row]
}

// applySuggestion replaces the partially typed word at the cursor with the
// suggestion's insert text.
func (m Model) applySuggestion(s complete.Suggestion) Model {
	if m.sess.buffer == nil {
		return m
	}
	row := m.sess.buffer.Line()
	lines := strings.Split(m.sess.buffer.Value(), "\n")
	if row < 0 || row >= len(lines) {
		return m
	}
	line := lines[row]
	_, start := complete.WordAt(line)
	lines[row] = line[:start] + s.Insert
	m.sess.buffer.SetValue(strings.Join(lines, "\n"))
	m.sess.dirty = true
	return m
}

// InsertSnippet puts insert text at the caret and routes the result
// through the same buffer path a keystroke takes: no commit until blur.
func (m Model) InsertSnippet(insert string) Model {
	if m.sess.buffer == nil || m.sess.closed {
		return m
	}
	m.sess.buffer.InsertString(insert)
	m.sess.dirty = true
	m.refreshHeight()
	return m
}

func (m *Model) refreshHeight() {
	if !m.props.AutoHeight || m.sess.buffer == nil {
		return
	}
	h := Height(m.sess.buffer.Value(), m.props.Placeholder,
		m.props.LineHeight, m.props.ChromeRows, m.props.MinHeight, m.props.MaxHeight)
	rows := h - m.props.ChromeRows
	if rows < 1 {
		rows = 1
	}
	m.sess.buffer.SetHeight(rows)
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4"))
	boxFocusedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8BE9FD"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Italic(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.sess.buffer == nil {
		return ""
	}

	var content string
	switch {
	case m.props.Language == lang.Script && !m.focused && m.sess.buffer.Value() != "":
		// No cursor to draw, so the whole buffer can go through chroma.
		content = highlight.Script(m.sess.buffer.Value())
	case m.props.Language == lang.SQL:
		content = highlight.SQLPreserveANSI(m.sess.buffer.View())
	default:
		content = m.sess.buffer.View()
	}

	box := boxStyle
	if m.focused {
		box = boxFocusedStyle
	}
	view := box.Width(m.width - 2).Render(content)

	if m.sugg.Visible() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.sugg.View())
	}
	if m.status != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, statusStyle.Render(m.status))
	}
	if m.palette.open {
		view = overlay.Composite(m.palette.view(m.width), view, overlay.Center, overlay.Center, 0, 0)
	}
	return view
}

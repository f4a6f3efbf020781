package codeeditor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/viethqb/pydbapi-admin/internal/lang"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDotAfterSandboxHandleOpensDropdown(t *testing.T) {
	m := newTestEditor(t, lang.Script, "let rows = db", nil)
	m, _ = m.Focus()
	m = typeRune(m, '.')

	if !m.sugg.Visible() {
		t.Fatal("dropdown not shown after typing '.' on a sandbox handle")
	}

	// Enter accepts the highlighted member and replaces the partial word.
	m, _ = m.Update(keyMsg("enter"))
	if got := m.Value(); got != "let rows = db.query(sql, params)" {
		t.Errorf("buffer = %q after accepting suggestion", got)
	}
	if m.sugg.Visible() {
		t.Error("dropdown still open after accept")
	}
}

func TestDropdownNarrowsWhileTyping(t *testing.T) {
	m := newTestEditor(t, lang.Script, "db", nil)
	m, _ = m.Focus()
	m = typeRune(m, '.')
	m = typeRune(m, 'q')
	m = typeRune(m, 'u')

	if !m.sugg.Visible() {
		t.Fatal("dropdown closed while narrowing")
	}
	m, _ = m.Update(keyMsg("enter"))
	if got := m.Value(); got != "db.query(sql, params)" {
		t.Errorf("buffer = %q", got)
	}
}

func TestDropdownDismissOnEscape(t *testing.T) {
	m := newTestEditor(t, lang.Script, "db", nil)
	m, _ = m.Focus()
	m = typeRune(m, '.')
	m, _ = m.Update(keyMsg("esc"))
	if m.sugg.Visible() {
		t.Error("dropdown survived esc")
	}
	if got := m.Value(); got != "db." {
		t.Errorf("esc mutated the buffer: %q", got)
	}
}

func TestDotInSQLEditorDoesNotOpenDropdown(t *testing.T) {
	m := newTestEditor(t, lang.SQL, "SELECT t", nil)
	m, _ = m.Focus()
	m = typeRune(m, '.')
	if m.sugg.Visible() {
		t.Error("SQL editor opened the sandbox member list")
	}
}

func TestInsertSnippetDoesNotCommit(t *testing.T) {
	var log commitLog
	m := newTestEditor(t, lang.SQL, "SELECT * FROM t WHERE 1=1 ", &log)
	m, _ = m.Focus()
	m = m.InsertSnippet("{% if name %}AND name = {{ name | sql_str }}{% endif %}")

	if log.calls != 0 {
		t.Fatalf("snippet insertion committed immediately: %d calls", log.calls)
	}
	if !strings.Contains(m.Value(), "sql_str") {
		t.Errorf("snippet not in buffer: %q", m.Value())
	}

	m = m.Blur()
	if log.calls != 1 {
		t.Errorf("blur after snippet committed %d times, want 1", log.calls)
	}
}

func TestInsertSnippetOnClosedSessionIsNoOp(t *testing.T) {
	m := newTestEditor(t, lang.SQL, "SELECT 1", nil)
	m.Close()
	m = m.InsertSnippet("{{ x }}")
	if m.Value() != "SELECT 1" {
		t.Errorf("closed editor mutated: %q", m.Value())
	}
}

func TestFormatFailureLeavesBufferUntouched(t *testing.T) {
	const broken = "SELECT FROM WHERE ((("
	m := newTestEditor(t, lang.SQL, broken, nil)
	m, _ = m.Focus()
	m, _ = m.Update(keyMsg("ctrl+f"))

	if got := m.Value(); got != broken {
		t.Errorf("failed format mutated buffer: %q", got)
	}
	if m.status == "" {
		t.Error("no notice shown for a failed format")
	}
}

func TestFormatRewritesBufferOnSuccess(t *testing.T) {
	m := newTestEditor(t, lang.SQL, "select id from t where x = {{ x | sql_int }}", nil)
	m, _ = m.Focus()
	m, _ = m.Update(keyMsg("ctrl+f"))

	got := m.Value()
	if !strings.Contains(got, "{{ x | sql_int }}") {
		t.Errorf("template block lost in format: %q", got)
	}
	if !strings.Contains(got, "SELECT") {
		t.Errorf("buffer not formatted: %q", got)
	}
}

func TestPaletteInsertGoesThroughBuffer(t *testing.T) {
	var log commitLog
	m := newTestEditor(t, lang.SQL, "", &log)
	m, _ = m.Focus()
	m, _ = m.Update(keyMsg("ctrl+t"))
	if !m.palette.open {
		t.Fatal("palette did not open")
	}
	m, _ = m.Update(keyMsg("enter"))
	if m.palette.open {
		t.Error("palette still open after insert")
	}
	if m.Value() == "" {
		t.Error("palette insert left buffer empty")
	}
	if log.calls != 0 {
		t.Errorf("palette insert committed immediately: %d calls", log.calls)
	}
}

func TestStaleStatusExpiryKeepsNewerNotice(t *testing.T) {
	m := newTestEditor(t, lang.SQL, "SELECT 1", nil)
	m, _ = m.notify("first")
	firstGen := m.statusGen
	m, _ = m.notify("second")

	m, _ = m.Update(statusExpireMsg{sess: m.sess, gen: firstGen})
	if m.status != "second" {
		t.Errorf("stale expiry cleared the newer notice: status = %q", m.status)
	}
	m, _ = m.Update(statusExpireMsg{sess: m.sess, gen: m.statusGen})
	if m.status != "" {
		t.Errorf("status not cleared by its own expiry: %q", m.status)
	}
}

func TestConfiguredKeyBindingsOverrideDefaults(t *testing.T) {
	m := newTestEditorProps(t, Props{
		Language:    lang.SQL,
		Value:       "select id from t",
		FormatKeys:  []string{"ctrl+g"},
		SnippetKeys: []string{"ctrl+y"},
	})
	m, _ = m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	if !strings.Contains(m.Value(), "SELECT") {
		t.Errorf("configured format key did nothing: %q", m.Value())
	}

	// The stock bindings are replaced, not supplemented.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.palette.open {
		t.Error("stock snippet key still opens the palette")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if !m.palette.open {
		t.Error("configured snippet key did not open the palette")
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := newTestEditor(t, lang.SQL, "SELECT 1", nil)
	m, _ = m.Focus()
	m, _ = m.Update(keyMsg("ctrl+t"))
	m, _ = m.Update(keyMsg("esc"))
	if m.palette.open {
		t.Error("palette survived esc")
	}
	if m.Value() != "SELECT 1" {
		t.Errorf("esc mutated buffer: %q", m.Value())
	}
}

package codeeditor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textarea"
)

// session reconciles the editor buffer with the externally owned value.
// It is the only writer to the buffer and the only caller of OnChange.
//
// lastExternal mirrors the host's controlled value. It is updated
// synchronously BEFORE any deferred buffer write and reasserted when that
// write lands, so the session never mistakes its own programmatic write
// for a user edit. syncGen implements last-write-wins for deferred
// overwrites: a scheduled write carries the generation it was issued under
// and is dropped if a newer external value (or teardown) has bumped the
// counter since. dirty is set by user edits only; programmatic writes
// clear it, so a buffer that is merely stale (a scheduled overwrite has
// not landed yet) is never committed back to the host.
type session struct {
	buffer       *textarea.Model
	lastExternal string
	syncGen      int
	dirty        bool
	closed       bool
}

// applyExternalValueMsg is the deferred buffer overwrite for an external
// value change. Delivery on the next event-loop pass guarantees the
// textarea has finished mounting before the programmatic write.
type applyExternalValueMsg struct {
	sess  *session
	gen   int
	value string
}

// commit pushes the buffer content out through onChange iff the user
// edited it, it diverged from the external value, and it is non-empty. An
// empty buffer at commit time is treated as "not yet ready" rather than a
// deliberate clear, so a remount cannot clobber the form state. The dirty
// requirement keeps a stale buffer (overwrite scheduled but not yet
// landed) from being committed over the host's newer value. Returns
// whether a call was made.
func (s *session) commit(onChange func(string)) bool {
	if s.closed || s.buffer == nil {
		// Buffer already torn down; racing with unmount is expected.
		return false
	}
	if !s.dirty {
		return false
	}
	v := s.buffer.Value()
	if v == "" || v == s.lastExternal {
		return false
	}
	s.lastExternal = v
	s.dirty = false
	if onChange != nil {
		onChange(v)
	}
	return true
}

// SetExternalValue tells the session the controlled value changed while
// mounted. The mirror updates immediately; the buffer overwrite is
// deferred to the next event-loop pass and cancels any still-pending one.
func (m Model) SetExternalValue(v string) (Model, tea.Cmd) {
	s := m.sess
	if s.closed || s.buffer == nil {
		return m, nil
	}
	s.lastExternal = v
	if s.buffer.Value() == v {
		return m, nil
	}
	s.syncGen++
	gen := s.syncGen
	return m, func() tea.Msg {
		return applyExternalValueMsg{sess: s, gen: gen, value: v}
	}
}

// Close flushes and destroys the session. If the buffer still differs from
// the external value and is non-empty, exactly one final OnChange fires so
// unmounting (tab switches, dialog dismissal) never drops typed content.
// Closing twice, or closing a session whose buffer is already gone, is a
// silent no-op.
func (m Model) Close() {
	s := m.sess
	if s.closed {
		return
	}
	s.commit(m.props.OnChange)
	s.closed = true
	s.syncGen++ // cancels any in-flight deferred overwrite
	s.buffer = nil
}

// Closed reports whether the session has been destroyed.
func (m Model) Closed() bool { return m.sess.closed }

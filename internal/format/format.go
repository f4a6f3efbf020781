// Package format produces formatted text for both editor languages.
//
// SQL goes through the CockroachDB pretty-printer with template blocks
// masked out; scripts go through a lazily constructed normalizer that is
// initialized at most once per process.
package format

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/cockroachdb-parser/pkg/sql/sem/tree"
	"github.com/mjibson/sqlfmt"

	"github.com/viethqb/pydbapi-admin/internal/lang"
	"github.com/viethqb/pydbapi-admin/internal/mask"
)

// Error is returned when a formatter rejects the text, typically on a
// syntax error. The caller is expected to leave the buffer untouched and
// surface the message as a transient notice.
type Error struct {
	Lang lang.Language
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("format %s: %v", e.Lang, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// InitError is returned when the script formatter failed to construct.
// The failure is not cached: the next format attempt retries.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("script formatter init: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Dispatcher routes format requests by language. One Dispatcher is shared
// by every mounted editor session; the script formatter inside it is
// constructed once, on first use, no matter how many sessions ask
// concurrently.
type Dispatcher struct {
	script *scriptLoader
}

// NewDispatcher returns a Dispatcher with an uninitialized script path.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{script: newScriptLoader(newScriptFormatter)}
}

// Format returns the formatted text, or an *Error / *InitError leaving the
// input untouched on the caller's side.
func (d *Dispatcher) Format(text string, l lang.Language) (string, error) {
	switch l {
	case lang.SQL:
		return d.formatSQL(text)
	case lang.Script:
		return d.formatScript(text)
	default:
		return "", &Error{Lang: l, Err: fmt.Errorf("unknown language %q", l)}
	}
}

// formatSQL masks template blocks, pretty-prints, and restores the blocks.
// The block count is invariant across the round trip because placeholders
// are single identifiers to the formatter.
func (d *Dispatcher) formatSQL(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	res := mask.Mask(text)

	cfg := tree.DefaultPrettyCfg()
	cfg.LineWidth = 80
	cfg.TabWidth = 2
	cfg.Simplify = true

	formatted, err := sqlfmt.FmtSQL(cfg, []string{res.Masked})
	if err != nil {
		return "", &Error{Lang: lang.SQL, Err: err}
	}
	return mask.Unmask(strings.TrimSpace(formatted), res.Blocks), nil
}

func (d *Dispatcher) formatScript(text string) (string, error) {
	f, err := d.script.get()
	if err != nil {
		return "", &InitError{Err: err}
	}
	out, err := f.Format(text)
	if err != nil {
		return "", &Error{Lang: lang.Script, Err: err}
	}
	return out, nil
}

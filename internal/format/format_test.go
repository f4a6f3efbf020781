package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/viethqb/pydbapi-admin/internal/lang"
)

func TestFormatSQLPreservesTemplateBlocks(t *testing.T) {
	d := NewDispatcher()
	const block = "{% if name %}AND name = {{ name | sql_str }}{% endif %}"
	in := "SELECT id FROM users WHERE 1=1 " + block

	out, err := d.Format(in, lang.SQL)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if strings.Count(out, block) != 1 {
		t.Errorf("statement block not restored verbatim: %q", out)
	}
	if strings.Contains(out, "__tplblock_") {
		t.Errorf("placeholder leaked into output: %q", out)
	}

	// Formatting may only move whitespace and re-case keywords: with the
	// block and all whitespace removed, input and output must match. This
	// catches the formatter injecting tokens (an alias AS, a leftover
	// conjunction) around the block, not just losing it.
	strip := func(s string) string {
		s = strings.ReplaceAll(s, block, "")
		return strings.ToUpper(strings.Join(strings.Fields(s), ""))
	}
	got := strings.TrimSuffix(strip(out), ";")
	if want := strip(in); got != want {
		t.Errorf("non-block text rewritten:\n got %q\nwant %q\nfull output: %q", got, want, out)
	}
}

func TestFormatSQLRefusesAliasPositionBlock(t *testing.T) {
	// A statement block directly after a FROM item would be re-read by
	// the grammar as a table alias and rewritten with an injected AS.
	// That position must fail, leaving the text untouched, not rewrite.
	d := NewDispatcher()
	_, err := d.Format("SELECT id FROM t {% if x %}AND x{% endif %}", lang.SQL)
	if err == nil {
		t.Fatal("expected refusal for a block in alias position")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *format.Error, got %T", err)
	}
	if fe.Lang != lang.SQL {
		t.Errorf("error language = %q", fe.Lang)
	}
}

func TestFormatSQLTemplatedIdempotent(t *testing.T) {
	d := NewDispatcher()
	in := "SELECT id, name FROM users WHERE 1=1\n" +
		"{% if name %}AND name LIKE {{ name | sql_str }}{% endif %}"
	once, err := d.Format(in, lang.SQL)
	if err != nil {
		t.Fatalf("first format: %v", err)
	}
	twice, err := d.Format(once, lang.SQL)
	if err != nil {
		t.Fatalf("second format: %v", err)
	}
	if once != twice {
		t.Errorf("templated formatting not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestFormatSQLIdempotent(t *testing.T) {
	d := NewDispatcher()
	once, err := d.Format("select a, b from t where a > 1 order by b", lang.SQL)
	if err != nil {
		t.Fatalf("first format: %v", err)
	}
	twice, err := d.Format(once, lang.SQL)
	if err != nil {
		t.Fatalf("second format: %v", err)
	}
	if once != twice {
		t.Errorf("formatting not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestFormatSQLSyntaxError(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Format("selec ((( nope", lang.SQL)
	if err == nil {
		t.Fatal("expected error for invalid SQL")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *format.Error, got %T", err)
	}
	if fe.Lang != lang.SQL {
		t.Errorf("error language = %q", fe.Lang)
	}
}

func TestFormatSQLEmptyInput(t *testing.T) {
	d := NewDispatcher()
	out, err := d.Format("   ", lang.SQL)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != "   " {
		t.Errorf("blank input changed: %q", out)
	}
}

func TestFormatUnknownLanguage(t *testing.T) {
	d := NewDispatcher()
	if _, err := d.Format("x", lang.Language("yaml")); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestFormatScriptSyntaxError(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Format("1 +", lang.Script)
	if err == nil {
		t.Fatal("expected error for invalid script")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *format.Error, got %T", err)
	}
	if fe.Lang != lang.Script {
		t.Errorf("error language = %q", fe.Lang)
	}
}

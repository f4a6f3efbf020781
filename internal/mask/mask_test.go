package mask

import (
	"strings"
	"testing"
)

func TestMaskRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"SELECT * FROM users",
		"SELECT {{ id | sql_int }} FROM t",
		"{% if active %}WHERE active = 1{% endif %}",
		"{# hidden note #}SELECT 1",
		"SELECT {{ a }} FROM t {% if x %}AND x{% endif %} {# note #}",
		"no closer here {{ oops",
		"stray braces } { }} intact",
	}
	for _, in := range inputs {
		res := Mask(in)
		if got := Unmask(res.Masked, res.Blocks); got != in {
			t.Errorf("round trip failed\n in: %q\nout: %q", in, got)
		}
	}
}

func TestMaskExtractsBlocksInOrder(t *testing.T) {
	in := "SELECT {{ id | sql_int }} FROM t {% if x %}AND x{% endif %}"
	res := Mask(in)

	if len(res.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %q", len(res.Blocks), res.Blocks)
	}
	if res.Blocks[0] != "{{ id | sql_int }}" {
		t.Errorf("block 0 = %q", res.Blocks[0])
	}
	if res.Blocks[1] != "{% if x %}AND x{% endif %}" {
		t.Errorf("block 1 = %q", res.Blocks[1])
	}

	want := "SELECT " + Placeholder(0) + " FROM t and " + Placeholder(1)
	if res.Masked != want {
		t.Errorf("masked = %q, want %q", res.Masked, want)
	}
	if i0, i1 := strings.Index(res.Masked, Placeholder(0)), strings.Index(res.Masked, Placeholder(1)); i0 > i1 {
		t.Errorf("placeholders out of order in %q", res.Masked)
	}
}

func TestMaskStatementBlocksAreGreedy(t *testing.T) {
	// The span between paired statement delimiters masks as one block.
	in := "{% for r in rows %}{{ r.id }}{% endfor %}"
	res := Mask(in)
	if len(res.Blocks) != 1 {
		t.Fatalf("expected 1 greedy block, got %d: %q", len(res.Blocks), res.Blocks)
	}
	if res.Blocks[0] != in {
		t.Errorf("block = %q", res.Blocks[0])
	}
	if res.Masked != Placeholder(0) {
		t.Errorf("masked = %q", res.Masked)
	}
}

func TestMaskStatementBlocksParseAsConjuncts(t *testing.T) {
	// Statement and comment blocks get a synthetic conjunction so a block
	// after a complete WHERE predicate still parses; expression blocks
	// stay bare identifiers.
	in := "WHERE 1=1 {% if x %}AND x = {{ x }}{% endif %}"
	res := Mask(in)
	if len(res.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d: %q", len(res.Blocks), res.Blocks)
	}
	want := "WHERE 1=1 and " + Placeholder(0)
	if res.Masked != want {
		t.Errorf("masked = %q, want %q", res.Masked, want)
	}
	if got := Unmask(res.Masked, res.Blocks); got != in {
		t.Errorf("round trip = %q", got)
	}
}

func TestUnmaskStripsGlueAcrossFormatting(t *testing.T) {
	// The formatter may uppercase the synthetic conjunction and move it
	// onto its own indented line; unmask still finds and removes it,
	// keeping the line's leading whitespace.
	blocks := []string{"{% if x %}AND x{% endif %}"}
	text := "WHERE 1 = 1\n  AND " + Placeholder(0)
	got := Unmask(text, blocks)
	want := "WHERE 1 = 1\n  {% if x %}AND x{% endif %}"
	if got != want {
		t.Errorf("unmask = %q, want %q", got, want)
	}
}

func TestUnmaskKeepsUserWrittenConjunctions(t *testing.T) {
	// Only the synthetic conjunction is stripped: an AND the user wrote
	// before a statement block comes back with the round trip.
	in := "WHERE a = 1 AND {% if x %}x > 2{% endif %}"
	res := Mask(in)
	if got := Unmask(res.Masked, res.Blocks); got != in {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}

func TestMaskNoTemplateSyntax(t *testing.T) {
	in := "SELECT a, b FROM t WHERE a > 1"
	res := Mask(in)
	if res.Masked != in {
		t.Errorf("masked = %q, want unchanged input", res.Masked)
	}
	if len(res.Blocks) != 0 {
		t.Errorf("expected no blocks, got %q", res.Blocks)
	}
}

func TestPlaceholderShape(t *testing.T) {
	// Placeholders must survive a SQL tokenizer as a single lowercase
	// identifier: no spaces, no uppercase, only identifier characters.
	p := Placeholder(42)
	if p != strings.ToLower(p) {
		t.Errorf("placeholder %q is not lowercase", p)
	}
	for _, r := range p {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			t.Errorf("placeholder %q contains non-identifier rune %q", p, r)
		}
	}
}

func TestUnmaskSubstitutesByIndex(t *testing.T) {
	blocks := []string{"{{ a }}", "{{ b }}"}
	text := "x " + Placeholder(1) + " y " + Placeholder(0)
	got := Unmask(text, blocks)
	if got != "x {{ b }} y {{ a }}" {
		t.Errorf("unmask = %q", got)
	}
}

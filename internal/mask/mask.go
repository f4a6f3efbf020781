// Package mask hides template blocks from the SQL formatter.
//
// API bodies mix plain SQL with a templating syntax the SQL parser cannot
// read: {{ expression }}, {% statement %}, and {# comment #} blocks. Before
// formatting, each block is replaced with an identifier-shaped placeholder;
// after formatting the placeholders are substituted back verbatim.
//
// Expression blocks sit in expression positions, so a bare identifier
// stands in for them. Statement and comment blocks sit between clauses,
// where a bare identifier either fails to parse (after a complete WHERE
// predicate) or is silently re-read as a table alias (after a FROM item,
// where the pretty-printer then injects AS). Those blocks are masked as a
// synthetic conjunct, "and" plus the placeholder, which parses in
// predicate position and round-trips untouched; Unmask strips the
// synthetic conjunction again. Statement blocks in positions where no
// conjunct parses make the formatter refuse, leaving the text as it was,
// rather than rewrite it.
package mask

import (
	"fmt"
	"strings"
)

// Result pairs the masked text with the blocks that were cut out of it.
// Blocks are stored in order of first appearance; Unmask consumes them 1:1.
type Result struct {
	Masked string
	Blocks []string
}

// delimiters for the three block shapes. Each shape is matched greedily:
// a block runs from its opener to the LAST closer of the same shape in the
// remaining text. Two statement blocks and the SQL between them therefore
// mask as a single block, which keeps conditional fragments like
// {% if x %}AND x{% endif %} intact through formatting.
var delimiters = []struct {
	open, close string
}{
	{"{{", "}}"},
	{"{%", "%}"},
	{"{#", "#}"},
}

// Placeholder returns the masked stand-in for block i. It is all lowercase
// and uses only characters legal in a SQL identifier, so the formatter's
// tokenizer treats it as one opaque atom and its identifier normalization
// cannot alter it.
func Placeholder(i int) string {
	return fmt.Sprintf("__tplblock_%d__", i)
}

// glued reports whether block was masked with a synthetic conjunction.
// Blocks carry their own delimiters, so the shape is recoverable from the
// second byte: expression blocks start "{{", the others "{%" or "{#".
func glued(block string) bool {
	return len(block) > 1 && block[1] != '{'
}

// Mask scans text left to right and replaces every template block with a
// placeholder. Text without template syntax passes through unchanged.
func Mask(text string) Result {
	var out strings.Builder
	var blocks []string

	i := 0
	for i < len(text) {
		at, d := nextOpener(text, i)
		if at < 0 {
			out.WriteString(text[i:])
			break
		}
		out.WriteString(text[i:at])

		rest := text[at+len(d.open):]
		end := strings.LastIndex(rest, d.close)
		if end < 0 {
			// Unterminated opener: plain text, keep scanning after it.
			out.WriteString(d.open)
			i = at + len(d.open)
			continue
		}
		stop := at + len(d.open) + end + len(d.close)
		blocks = append(blocks, text[at:stop])
		if glued(blocks[len(blocks)-1]) {
			out.WriteString("and ")
		}
		out.WriteString(Placeholder(len(blocks) - 1))
		i = stop
	}

	return Result{Masked: out.String(), Blocks: blocks}
}

// Unmask restores the blocks cut out by Mask, by index. The formatted text
// must still contain every placeholder exactly once; formatting cannot
// split or merge them because they are single identifiers to the formatter.
// Statement and comment blocks also drop the synthetic conjunction Mask
// put in front of them, wherever the formatter ended up placing it.
func Unmask(text string, blocks []string) string {
	for i, blk := range blocks {
		ph := Placeholder(i)
		at := strings.Index(text, ph)
		if at < 0 {
			continue
		}
		start := at
		if glued(blk) {
			start = glueStart(text, at)
		}
		text = text[:start] + blk + text[at+len(ph):]
	}
	return text
}

// glueStart walks back from the placeholder at to the start of the
// synthetic conjunction: whitespace, then an isolated "and" token in any
// case. The whitespace before the token is kept, so a conjunct the
// formatter moved to its own line keeps that line's indentation. When no
// conjunction precedes the placeholder (the formatter dropped it), the
// placeholder position is returned unchanged.
func glueStart(text string, at int) int {
	j := at
	for j > 0 && isSpace(text[j-1]) {
		j--
	}
	if j < 3 || !strings.EqualFold(text[j-3:j], "and") {
		return at
	}
	if j > 3 && isWordByte(text[j-4]) {
		return at
	}
	return j - 3
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// nextOpener finds the earliest opening delimiter at or after position from.
func nextOpener(text string, from int) (int, struct{ open, close string }) {
	best := -1
	var bestDelim struct{ open, close string }
	for _, d := range delimiters {
		at := strings.Index(text[from:], d.open)
		if at < 0 {
			continue
		}
		if best < 0 || from+at < best {
			best = from + at
			bestDelim = d
		}
	}
	return best, bestDelim
}

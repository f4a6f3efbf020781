package format

import (
	"strings"
	"sync"

	"github.com/expr-lang/expr/parser"
	"golang.org/x/sync/singleflight"
)

// scriptLoader constructs the script formatter on first use. Concurrent
// callers share one in-flight construction via singleflight; the result is
// cached only on success so a failed init re-attempts on the next call.
type scriptLoader struct {
	initFn func() (*scriptFormatter, error)
	group  singleflight.Group

	mu     sync.RWMutex
	cached *scriptFormatter
}

func newScriptLoader(initFn func() (*scriptFormatter, error)) *scriptLoader {
	return &scriptLoader{initFn: initFn}
}

func (l *scriptLoader) get() (*scriptFormatter, error) {
	l.mu.RLock()
	f := l.cached
	l.mu.RUnlock()
	if f != nil {
		return f, nil
	}

	v, err, _ := l.group.Do("script-formatter", func() (any, error) {
		f, err := l.initFn()
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cached = f
		l.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*scriptFormatter), nil
}

// scriptFormatter validates transform scripts with the sandbox expression
// parser and normalizes their whitespace. Normalization ignores existing
// indentation entirely, so formatting already-formatted text is a no-op.
type scriptFormatter struct {
	indent string
}

func newScriptFormatter() (*scriptFormatter, error) {
	return &scriptFormatter{indent: "  "}, nil
}

// Format returns the normalized script, or the parser's syntax error.
func (f *scriptFormatter) Format(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return src, nil
	}
	if _, err := parser.Parse(src); err != nil {
		return "", err
	}
	return f.reindent(src), nil
}

// reindent rewrites each line's leading whitespace from bracket depth.
// Trailing whitespace is stripped and runs of blank lines collapse to one.
func (f *scriptFormatter) reindent(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	depth := 0
	blank := false
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false

		level := depth - leadingClosers(t)
		if level < 0 {
			level = 0
		}
		out = append(out, strings.Repeat(f.indent, level)+t)

		depth += bracketDelta(t)
		if depth < 0 {
			depth = 0
		}
	}

	// Drop a trailing blank line left by the collapse pass.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// leadingClosers counts closing brackets at the start of a trimmed line, so
// a line that only closes a block dedents itself.
func leadingClosers(t string) int {
	n := 0
	for _, r := range t {
		switch r {
		case ')', ']', '}':
			n++
		default:
			return n
		}
	}
	return n
}

// bracketDelta is the net bracket depth change of a line, ignoring
// brackets inside string literals.
func bracketDelta(line string) int {
	delta := 0
	var quote rune
	escaped := false
	for _, r := range line {
		if escaped {
			escaped = false
			continue
		}
		if quote != 0 {
			switch r {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		case '(', '[', '{':
			delta++
		case ')', ']', '}':
			delta--
		}
	}
	return delta
}

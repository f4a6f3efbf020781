// Package complete supplies context-aware suggestions for the API-body
// editor. Providers are registered per language, at most once, so two
// co-mounted editors sharing a language never produce duplicate entries.
package complete

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/viethqb/pydbapi-admin/internal/lang"
)

// Kind indicates what a suggestion is, mostly for display styling.
type Kind int

const (
	KindKeyword Kind = iota
	KindMethod
	KindGlobal
	KindSnippet
)

// Suggestion is a single completion entry. Insert is what goes into the
// buffer; Detail is a one-line description shown next to the label.
type Suggestion struct {
	Text   string
	Insert string
	Detail string
	Kind   Kind
}

// Registry owns the completion providers. It is an explicit object passed
// by reference, not module state, so tests can use a fresh one per run.
type Registry struct {
	mu        sync.Mutex
	providers map[lang.Language]*Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[lang.Language]*Provider)}
}

// EnsureRegistered returns the provider for l, creating it on first call.
// Second and later calls for the same language return the existing handle
// without re-registering.
func (r *Registry) EnsureRegistered(l lang.Language) *Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[l]; ok {
		return p
	}
	p := &Provider{language: l}
	r.providers[l] = p
	return p
}

// Provider produces suggestions for one language.
type Provider struct {
	language lang.Language
}

// Language returns the language this provider serves.
func (p *Provider) Language() lang.Language { return p.language }

// Suggest inspects the text before the cursor on the current line and
// returns matching suggestions.
//
// For scripts, if the text ahead of the partially typed word ends with a
// known namespace prefix (db., http., cache., log., tx.) the namespace's
// member catalog is returned; otherwise the global catalog plus reusable
// snippets. This is a string-suffix heuristic, not a parse: it will also
// fire on a prefix inside a string literal or comment, an accepted
// limitation of the small fixed sandbox surface.
//
// SQL suggestions are a flat keyword list with no contextual branching.
func (p *Provider) Suggest(lineBeforeCursor string) []Suggestion {
	word, start := WordAt(lineBeforeCursor)
	head := lineBeforeCursor[:start]

	if p.language == lang.Script {
		for _, ns := range scriptNamespaces {
			if strings.HasSuffix(head, ns.prefix) {
				return filterSuggestions(ns.members, word)
			}
		}
		return filterSuggestions(scriptGlobals, word)
	}

	return filterSuggestions(sqlKeywordSuggestions, word)
}

// NamespaceTriggered reports whether the text before the cursor (minus the
// partially typed word) ends in a registered namespace prefix. The editor
// uses it to pop completions automatically when "." is typed.
func NamespaceTriggered(lineBeforeCursor string) bool {
	_, start := WordAt(lineBeforeCursor)
	head := lineBeforeCursor[:start]
	for _, ns := range scriptNamespaces {
		if strings.HasSuffix(head, ns.prefix) {
			return true
		}
	}
	return false
}

// WordAt returns the identifier being typed at the end of line and the
// byte index where it starts.
func WordAt(line string) (string, int) {
	start := len(line)
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	return line[start:], start
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// filterSuggestions keeps entries whose text starts with the typed word,
// case-insensitively. An empty word keeps everything.
func filterSuggestions(items []Suggestion, word string) []Suggestion {
	if word == "" {
		out := make([]Suggestion, len(items))
		copy(out, items)
		return out
	}
	upper := strings.ToUpper(word)
	var out []Suggestion
	for _, s := range items {
		if strings.HasPrefix(strings.ToUpper(s.Text), upper) {
			out = append(out, s)
		}
	}
	return out
}

// Package lang enumerates the editing languages supported by the API-body
// editor: templated SQL statements and sandboxed transform scripts.
package lang

// Language selects which formatter, completion provider, and highlighter
// an editor session uses.
type Language string

const (
	SQL    Language = "sql"
	Script Language = "script"
)

// Valid reports whether l is one of the known languages.
func (l Language) Valid() bool {
	return l == SQL || l == Script
}

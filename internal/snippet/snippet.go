// Package snippet holds the fixed catalog of templating snippets the
// palette offers for insertion into SQL bodies.
package snippet

import "strings"

// Entry is one insertable snippet. The catalog is compiled in and
// read-only at runtime.
type Entry struct {
	ID     string
	Label  string
	Insert string
}

var catalog = []Entry{
	{ID: "if", Label: "conditional fragment", Insert: "{% if cond %} {% endif %}"},
	{ID: "if-else", Label: "conditional with fallback", Insert: "{% if cond %} {% else %} {% endif %}"},
	{ID: "for", Label: "loop over a parameter list", Insert: "{% for item in items %} {% endfor %}"},
	{ID: "set", Label: "bind a template variable", Insert: "{% set name = value %}"},
	{ID: "comment", Label: "template comment", Insert: "{# note #}"},
	{ID: "param", Label: "raw parameter value", Insert: "{{ name }}"},
	{ID: "sql_int", Label: "parameter as integer literal", Insert: "{{ name | sql_int }}"},
	{ID: "sql_float", Label: "parameter as float literal", Insert: "{{ name | sql_float }}"},
	{ID: "sql_str", Label: "parameter as quoted string", Insert: "{{ name | sql_str }}"},
	{ID: "sql_date", Label: "parameter as date literal", Insert: "{{ name | sql_date }}"},
	{ID: "sql_in", Label: "parameter list for IN (...)", Insert: "{{ names | sql_in }}"},
	{ID: "like", Label: "parameter wrapped for LIKE", Insert: "{{ name | sql_like }}"},
}

// Catalog returns the full snippet list.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Filter returns entries whose id or label contains query,
// case-insensitively. An empty query returns the whole catalog.
func Filter(query string) []Entry {
	if query == "" {
		return Catalog()
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(e.ID), q) || strings.Contains(strings.ToLower(e.Label), q) {
			out = append(out, e)
		}
	}
	return out
}

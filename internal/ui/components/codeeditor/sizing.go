package codeeditor

import "strings"

// Height derives the auto-height-mode editor height from content. Blank
// content measures the placeholder instead, so an empty editor is sized
// for its hint text. Pure function; the component recomputes it whenever
// content, placeholder, or bounds change.
func Height(content, placeholder string, lineHeight, chrome, minHeight, maxHeight int) int {
	src := content
	if strings.TrimSpace(src) == "" {
		src = placeholder
	}
	lines := strings.Count(src, "\n") + 1
	if lines < 1 {
		lines = 1
	}
	h := lines*lineHeight + chrome
	if h < minHeight {
		h = minHeight
	}
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
	}
	return h
}

package compiler

import "strings"

// segment is the raw text of one slide between two separators, with the
// 1-based line its text starts on within the post-frontmatter body.
type segment struct {
	text string
	line int
}

// isSeparator reports whether a line is a slide separator: three or more
// hyphens and nothing else.
func isSeparator(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// splitSlides divides the body into ordered raw slide segments. Segments
// containing only blank lines are dropped; order is preserved.
func splitSlides(body string) []segment {
	lines := strings.Split(body, "\n")

	var segments []segment
	start := 0
	flush := func(end int) {
		text := strings.Join(lines[start:end], "\n")
		if strings.TrimSpace(text) != "" {
			segments = append(segments, segment{text: text, line: start + 1})
		}
	}
	for i, line := range lines {
		if isSeparator(line) {
			flush(i)
			start = i + 1
		}
	}
	flush(len(lines))
	return segments
}

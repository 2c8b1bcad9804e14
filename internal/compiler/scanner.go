package compiler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/deckforge/deckforge/internal/deck"
)

// Tag patterns of the extended-Markdown dialect.
var patterns = struct {
	directive *regexp.Regexp
	duration  *regexp.Regexp
	span      *regexp.Regexp
	image     *regexp.Regexp
	heading   *regexp.Regexp
	bullet    *regexp.Regexp
	attr      *regexp.Regexp
}{
	directive: regexp.MustCompile(`^\s*<!--\s*([A-Za-z][\w-]*)\s*:\s*(.*?)\s*-->\s*$`),
	duration:  regexp.MustCompile(`^(.*\S)\s+(\d+)$`),
	span:      regexp.MustCompile(`\{([A-Za-z][\w-]*)\s*:\s*([^{}]+)\}`),
	image:     regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)(?:\{([^}]*)\})?`),
	heading:   regexp.MustCompile(`^(#{1,6})\s+(.+)$`),
	bullet:    regexp.MustCompile(`^(\s*)[-*+]\s+(.+)$`),
	attr:      regexp.MustCompile(`^\s*([\w-]+)\s*=\s*(.+?)\s*$`),
}

// directive is one parsed <!-- key: value --> line. It is consumed by the
// binder and not retained in the final document.
type directive struct {
	key         string
	value       string
	duration    int
	hasDuration bool
	line        int
}

// scanDirectives extracts every full-line directive from a segment in source
// order and returns the remaining body text with those lines removed.
// baseLine is the 1-based line the segment starts on.
func scanDirectives(text string, baseLine int) ([]directive, string) {
	var dirs []directive
	var body []string

	for i, line := range strings.Split(text, "\n") {
		m := patterns.directive.FindStringSubmatch(line)
		if m == nil {
			body = append(body, line)
			continue
		}
		d := directive{key: m[1], value: m[2], line: baseLine + i}
		// Only transition and animate carry a trailing duration token; other
		// values (timer seconds, free poll text) are taken whole.
		if d.key == "transition" || d.key == "animate" {
			if dm := patterns.duration.FindStringSubmatch(d.value); dm != nil {
				if n, err := strconv.Atoi(dm[2]); err == nil {
					d.value = dm[1]
					d.duration = n
					d.hasDuration = true
				}
			}
		}
		dirs = append(dirs, d)
	}
	return dirs, strings.Join(body, "\n")
}

// parseInlineStyle strips every {key:value} span from text and folds the
// recognized keys into one style. Spans apply in source order; later spans
// override earlier ones per attribute. Unknown keys are cosmetic hints from
// a newer dialect and are dropped without error.
func parseInlineStyle(text string) (string, deck.InlineStyle) {
	var style deck.InlineStyle
	stripped := patterns.span.ReplaceAllStringFunc(text, func(m string) string {
		sm := patterns.span.FindStringSubmatch(m)
		applySpan(&style, sm[1], strings.TrimSpace(sm[2]))
		return ""
	})
	return strings.TrimSpace(stripped), style
}

// parseRuns splits paragraph text into styled runs. A span attaches to the
// text run immediately preceding it; stacked spans accumulate on that run.
func parseRuns(text string) []deck.TextRun {
	matches := patterns.span.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []deck.TextRun{{Text: text}}
	}

	var runs []deck.TextRun
	last := 0
	for _, m := range matches {
		chunk := text[last:m[0]]
		if chunk != "" {
			runs = append(runs, deck.TextRun{Text: chunk})
		}
		key := text[m[2]:m[3]]
		val := strings.TrimSpace(text[m[4]:m[5]])
		if len(runs) > 0 {
			applySpan(&runs[len(runs)-1].Style, key, val)
		}
		last = m[1]
	}
	if tail := text[last:]; tail != "" {
		runs = append(runs, deck.TextRun{Text: tail})
	}
	if len(runs) == 0 {
		runs = []deck.TextRun{{Text: ""}}
	}
	return runs
}

func applySpan(style *deck.InlineStyle, key, value string) {
	switch key {
	case "color":
		style.Color = value
	case "size":
		style.Size = value
	case "align":
		style.Align = value
	case "font":
		style.Font = value
	}
}

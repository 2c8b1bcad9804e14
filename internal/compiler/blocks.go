package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deckforge/deckforge/internal/deck"
)

var (
	columnsOpenPattern = regexp.MustCompile(`^:::\s*columns\s*$`)
	boxOpenPattern     = regexp.MustCompile(`^:::\s*box(?:\s+([\w-]+))?\s*$`)
	tableDividerRow    = regexp.MustCompile(`^\s*\|?[\s:|-]+\|?\s*$`)
)

// resolveBlocks parses one segment's directive-stripped body into an ordered
// element list. Resolution is first-match top-to-bottom: fenced blocks,
// column and box blocks, images, then the plain Markdown leaf productions.
// Consumed spans are never reconsidered.
func resolveBlocks(body string, slideNo, baseLine int) (deck.ElementList, error) {
	lines := strings.Split(body, "\n")
	var elements deck.ElementList

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		lineNo := baseLine + i

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			tag := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			end := findFenceClose(lines, i)
			if end < 0 {
				return nil, &Error{
					Kind: ErrMalformedBlock, Slide: slideNo, Line: lineNo,
					Key: fenceKind(tag), Detail: "unterminated fenced block",
				}
			}
			el, err := parseFenced(tag, strings.Join(lines[i+1:end], "\n"), slideNo, lineNo)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			i = end + 1

		case strings.HasPrefix(trimmed, "$$"):
			el, next, err := parseMath(lines, i, slideNo, lineNo)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			i = next

		case columnsOpenPattern.MatchString(trimmed):
			end := findColonClose(lines, i)
			if end < 0 {
				return nil, &Error{Kind: ErrMalformedColumns, Slide: slideNo, Line: lineNo, Detail: "unterminated columns block"}
			}
			el, err := parseColumns(lines[i+1:end], slideNo, lineNo+1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			i = end + 1

		case boxOpenPattern.MatchString(trimmed):
			m := boxOpenPattern.FindStringSubmatch(trimmed)
			kind := m[1]
			if kind == "" {
				kind = "info"
			}
			end := findColonClose(lines, i)
			if end < 0 {
				return nil, &Error{
					Kind: ErrMalformedBlock, Slide: slideNo, Line: lineNo,
					Key: "box", Detail: "unterminated box block",
				}
			}
			children, err := resolveBlocks(strings.Join(lines[i+1:end], "\n"), slideNo, lineNo+1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, &deck.Box{BoxKind: kind, Children: children})
			i = end + 1

		case strings.HasPrefix(trimmed, "![") && patterns.image.MatchString(trimmed):
			for _, m := range patterns.image.FindAllStringSubmatch(trimmed, -1) {
				elements = append(elements, parseImage(m))
			}
			i++

		case strings.HasPrefix(trimmed, "|") && i+1 < len(lines) &&
			strings.Contains(lines[i+1], "-") && tableDividerRow.MatchString(lines[i+1]):
			table, next := parsePipeTable(lines, i)
			elements = append(elements, table)
			i = next

		case patterns.heading.MatchString(trimmed):
			m := patterns.heading.FindStringSubmatch(trimmed)
			text, style := parseInlineStyle(m[2])
			elements = append(elements, &deck.Heading{Level: len(m[1]), Text: text, Style: style})
			i++

		case strings.HasPrefix(trimmed, ">"):
			quote, next := parseQuote(lines, i)
			elements = append(elements, quote)
			i = next

		case patterns.bullet.MatchString(lines[i]):
			list, next := parseBullets(lines, i)
			elements = append(elements, list)
			i = next

		default:
			elements = append(elements, &deck.Paragraph{Runs: parseRuns(trimmed)})
			i++
		}
	}
	return elements, nil
}

// findFenceClose returns the index of the closing ``` line, or -1.
func findFenceClose(lines []string, open int) int {
	for j := open + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "```" {
			return j
		}
	}
	return -1
}

// findColonClose returns the index of the ::: line closing the block opened
// at open, accounting for nested ::: blocks.
func findColonClose(lines []string, open int) int {
	depth := 0
	for j := open + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if t == ":::" {
			if depth == 0 {
				return j
			}
			depth--
		} else if strings.HasPrefix(t, ":::") {
			depth++
		}
	}
	return -1
}

// parseColumns resolves the inner lines of a columns block. The ||| divider
// must appear at the block's own nesting depth.
func parseColumns(inner []string, slideNo, baseLine int) (*deck.TwoColumn, error) {
	depth := 0
	divider := -1
	for j, line := range inner {
		t := strings.TrimSpace(line)
		switch {
		case t == ":::":
			depth--
		case strings.HasPrefix(t, ":::"):
			depth++
		case t == "|||" && depth == 0:
			divider = j
		}
		if divider >= 0 {
			break
		}
	}
	if divider < 0 {
		return nil, &Error{
			Kind: ErrMalformedColumns, Slide: slideNo, Line: baseLine - 1,
			Detail: "missing ||| divider between columns",
		}
	}

	left, err := resolveBlocks(strings.Join(inner[:divider], "\n"), slideNo, baseLine)
	if err != nil {
		return nil, err
	}
	right, err := resolveBlocks(strings.Join(inner[divider+1:], "\n"), slideNo, baseLine+divider+1)
	if err != nil {
		return nil, err
	}
	return &deck.TwoColumn{Left: left, Right: right}, nil
}

// parseMath consumes a $$...$$ block starting at line i and returns the
// element plus the index of the first unconsumed line.
func parseMath(lines []string, i, slideNo, lineNo int) (deck.ContentElement, int, error) {
	trimmed := strings.TrimSpace(lines[i])
	if len(trimmed) > 4 && strings.HasSuffix(trimmed, "$$") {
		tex := strings.TrimSpace(trimmed[2 : len(trimmed)-2])
		return &deck.MathBlock{TeX: tex}, i + 1, nil
	}
	var parts []string
	if rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "$$")); rest != "" {
		parts = append(parts, rest)
	}
	for j := i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if strings.HasSuffix(t, "$$") {
			if head := strings.TrimSpace(strings.TrimSuffix(t, "$$")); head != "" {
				parts = append(parts, head)
			}
			return &deck.MathBlock{TeX: strings.Join(parts, "\n")}, j + 1, nil
		}
		parts = append(parts, t)
	}
	return nil, 0, &Error{
		Kind: ErrMalformedBlock, Slide: slideNo, Line: lineNo,
		Key: "math", Detail: "unterminated math block",
	}
}

// parseImage builds an Image element from an image pattern match, splitting
// the trailing {key=value, ...} attribute span.
func parseImage(m []string) *deck.Image {
	img := &deck.Image{Alt: m[1], Source: strings.TrimSpace(m[2])}
	if m[3] == "" {
		return img
	}
	for _, attr := range strings.Split(m[3], ",") {
		am := patterns.attr.FindStringSubmatch(attr)
		if am == nil {
			continue
		}
		key, val := am[1], am[2]
		switch key {
		case "width":
			img.Width = val
		case "height":
			img.Height = val
		case "position":
			img.Position = val
		default:
			if img.Hints == nil {
				img.Hints = make(map[string]string)
			}
			img.Hints[key] = val
		}
	}
	return img
}

// parsePipeTable consumes a Markdown pipe table starting at line i.
func parsePipeTable(lines []string, i int) (*deck.Table, int) {
	headers := splitTableRow(lines[i])
	rows := make([][]string, 0)
	j := i + 2
	for ; j < len(lines); j++ {
		if !strings.Contains(lines[j], "|") || strings.TrimSpace(lines[j]) == "" {
			break
		}
		rows = append(rows, splitTableRow(lines[j]))
	}
	return &deck.Table{Headers: headers, Rows: rows, Style: "default"}, j
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// parseQuote consumes consecutive > lines plus an optional attribution line
// introduced by an em dash or double hyphen.
func parseQuote(lines []string, i int) (*deck.Quote, int) {
	var quoted []string
	j := i
	for ; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(t, ">") {
			break
		}
		quoted = append(quoted, strings.TrimSpace(strings.TrimPrefix(t, ">")))
	}
	quote := &deck.Quote{Text: strings.Join(quoted, " ")}
	if j < len(lines) {
		t := strings.TrimSpace(lines[j])
		if strings.HasPrefix(t, "—") {
			quote.Attribution = strings.TrimSpace(strings.TrimPrefix(t, "—"))
			j++
		} else if strings.HasPrefix(t, "--") {
			quote.Attribution = strings.TrimSpace(strings.TrimLeft(t, "- "))
			j++
		}
	}
	return quote, j
}

// parseBullets consumes a contiguous run of bullet lines. Two spaces of
// indentation make one nesting level.
func parseBullets(lines []string, i int) (*deck.BulletList, int) {
	var items []deck.BulletItem
	j := i
	for ; j < len(lines); j++ {
		m := patterns.bullet.FindStringSubmatch(lines[j])
		if m == nil {
			break
		}
		text, style := parseInlineStyle(m[2])
		items = append(items, deck.BulletItem{
			Text:  text,
			Level: len(strings.ReplaceAll(m[1], "\t", "  ")) / 2,
			Style: style,
		})
	}
	return &deck.BulletList{Items: items}, j
}

// fenceKind normalizes a fence tag for error reporting.
func fenceKind(tag string) string {
	if tag == "" {
		return "code"
	}
	return tag
}

// Fenced sub-language specs. The structured kinds carry YAML bodies, the same
// shape the dialect has always used.

type chartSpec struct {
	Type string `yaml:"type"`
	Data struct {
		Categories []string     `yaml:"categories"`
		Series     []seriesSpec `yaml:"series"`
	} `yaml:"data"`
	Options map[string]any `yaml:"options"`
}

type seriesSpec struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

type tableSpec struct {
	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
	Style   string     `yaml:"style"`
}

type timelineSpec struct {
	Style  string               `yaml:"style"`
	Events []deck.TimelineEvent `yaml:"events"`
}

type teamSpec struct {
	Layout  string            `yaml:"layout"`
	Members []deck.TeamMember `yaml:"members"`
}

// parseFenced dispatches a fenced block to its sub-language grammar. A tag
// outside the structured set is a code language.
func parseFenced(tag, content string, slideNo, lineNo int) (deck.ContentElement, error) {
	blockErr := func(kind, detail string) error {
		return &Error{Kind: ErrMalformedBlock, Slide: slideNo, Line: lineNo, Key: kind, Detail: detail}
	}

	switch tag {
	case "chart":
		var spec chartSpec
		if err := yaml.Unmarshal([]byte(content), &spec); err != nil {
			return nil, blockErr("chart", err.Error())
		}
		if spec.Type == "" {
			spec.Type = "column"
		}
		if len(spec.Data.Categories) == 0 {
			return nil, blockErr("chart", "missing data.categories")
		}
		if len(spec.Data.Series) == 0 {
			return nil, blockErr("chart", "missing data.series")
		}
		series := make([]deck.ChartSeries, 0, len(spec.Data.Series))
		for idx, s := range spec.Data.Series {
			if s.Name == "" {
				return nil, blockErr("chart", fmt.Sprintf("series %d is missing a name", idx+1))
			}
			series = append(series, deck.ChartSeries{Name: s.Name, Values: s.Values})
		}
		return &deck.Chart{
			ChartType:  spec.Type,
			Categories: spec.Data.Categories,
			Series:     series,
			Options:    spec.Options,
		}, nil

	case "table":
		var spec tableSpec
		if err := yaml.Unmarshal([]byte(content), &spec); err != nil {
			return nil, blockErr("table", err.Error())
		}
		if len(spec.Headers) == 0 {
			return nil, blockErr("table", "missing headers")
		}
		if spec.Style == "" {
			spec.Style = "default"
		}
		if spec.Rows == nil {
			spec.Rows = [][]string{}
		}
		return &deck.Table{Headers: spec.Headers, Rows: spec.Rows, Style: spec.Style}, nil

	case "timeline":
		var spec timelineSpec
		if err := yaml.Unmarshal([]byte(content), &spec); err != nil {
			return nil, blockErr("timeline", err.Error())
		}
		if len(spec.Events) == 0 {
			return nil, blockErr("timeline", "missing events")
		}
		if spec.Style == "" {
			spec.Style = "horizontal"
		}
		return &deck.Timeline{Style: spec.Style, Events: spec.Events}, nil

	case "team":
		var spec teamSpec
		if err := yaml.Unmarshal([]byte(content), &spec); err != nil {
			return nil, blockErr("team", err.Error())
		}
		if len(spec.Members) == 0 {
			return nil, blockErr("team", "missing members")
		}
		if spec.Layout == "" {
			spec.Layout = "grid"
		}
		return &deck.TeamRoster{Layout: spec.Layout, Members: spec.Members}, nil

	case "mermaid":
		return &deck.Mermaid{Source: content}, nil

	default:
		return &deck.CodeBlock{Language: tag, Text: content}, nil
	}
}

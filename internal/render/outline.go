// Package render holds rendering backends for compiled documents. The
// outline renderer is the textual one: it summarizes each slide so a caller
// can review deck structure without a visual backend.
package render

import (
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/deck"
)

// outlineSlide is the built-slide handle the outline renderer produces.
type outlineSlide struct {
	text string
}

func (s *outlineSlide) Describe() string { return s.text }

// OutlineRenderer implements deck.Renderer by describing slides as indented
// text.
type OutlineRenderer struct{}

// NewOutline creates an outline renderer.
func NewOutline() *OutlineRenderer {
	return &OutlineRenderer{}
}

// BuildSlide renders one slide as a text summary.
func (r *OutlineRenderer) BuildSlide(index int, slide *deck.SlideConfig) (deck.BuiltSlide, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. [%s]", index+1, slide.Type)

	if title := firstHeading(slide.Elements); title != "" {
		b.WriteString(" " + title)
	}
	b.WriteString("\n")

	for _, el := range slide.Elements {
		describeElement(&b, el, 1)
	}
	if slide.Notes != "" {
		b.WriteString("   notes: " + slide.Notes + "\n")
	}
	return &outlineSlide{text: b.String()}, nil
}

// Document renders a whole document with r, one slide after another, headed
// by the title and slide count.
func Document(r deck.Renderer, doc *deck.PresentationDocument) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d slides)\n", doc.Config.Title, len(doc.Slides))
	for i, slide := range doc.Slides {
		built, err := r.BuildSlide(i, slide)
		if err != nil {
			return "", fmt.Errorf("render slide %d: %w", i+1, err)
		}
		b.WriteString(built.Describe())
	}
	return b.String(), nil
}

func firstHeading(elements deck.ElementList) string {
	for _, el := range elements {
		if h, ok := el.(*deck.Heading); ok {
			return h.Text
		}
	}
	return ""
}

func describeElement(b *strings.Builder, el deck.ContentElement, depth int) {
	indent := strings.Repeat("   ", depth)
	switch e := el.(type) {
	case *deck.Heading:
		// Already shown as the slide title when it is the first heading.
		fmt.Fprintf(b, "%s%s %s\n", indent, strings.Repeat("#", e.Level), e.Text)
	case *deck.Paragraph:
		fmt.Fprintf(b, "%s%s\n", indent, e.Text())
	case *deck.BulletList:
		for _, item := range e.Items {
			fmt.Fprintf(b, "%s%s- %s\n", indent, strings.Repeat("  ", item.Level), item.Text)
		}
	case *deck.Image:
		fmt.Fprintf(b, "%simage: %s\n", indent, e.Source)
	case *deck.Chart:
		fmt.Fprintf(b, "%schart(%s): %d categories, %d series\n",
			indent, e.ChartType, len(e.Categories), len(e.Series))
	case *deck.Table:
		fmt.Fprintf(b, "%stable: %d columns, %d rows\n", indent, len(e.Headers), len(e.Rows))
	case *deck.CodeBlock:
		fmt.Fprintf(b, "%scode(%s): %d lines\n", indent, e.Language, countLines(e.Text))
	case *deck.Quote:
		fmt.Fprintf(b, "%squote: %s\n", indent, e.Text)
	case *deck.Timeline:
		fmt.Fprintf(b, "%stimeline(%s): %d events\n", indent, e.Style, len(e.Events))
	case *deck.TeamRoster:
		fmt.Fprintf(b, "%steam(%s): %d members\n", indent, e.Layout, len(e.Members))
	case *deck.TwoColumn:
		fmt.Fprintf(b, "%scolumns:\n", indent)
		for _, child := range e.Left {
			describeElement(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s|||\n", indent)
		for _, child := range e.Right {
			describeElement(b, child, depth+1)
		}
	case *deck.Box:
		fmt.Fprintf(b, "%sbox(%s):\n", indent, e.BoxKind)
		for _, child := range e.Children {
			describeElement(b, child, depth+1)
		}
	case *deck.Mermaid:
		fmt.Fprintf(b, "%smermaid diagram\n", indent)
	case *deck.MathBlock:
		fmt.Fprintf(b, "%smath: %s\n", indent, e.TeX)
	}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

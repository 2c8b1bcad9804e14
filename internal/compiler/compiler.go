// Package compiler turns extended-Markdown slide-deck source into a
// validated deck.PresentationDocument. The pipeline runs frontmatter reading,
// slide splitting, per-segment tag scanning and block resolution, directive
// binding, variable substitution, and whole-document validation, in that
// order. Compilation is pure: the same source always yields a structurally
// identical document, and a failure yields exactly one *Error.
package compiler

import (
	"fmt"
	"strings"

	"github.com/deckforge/deckforge/internal/deck"
)

// Compile parses source into a complete presentation document or fails with
// a single structured *Error. There is no partial output: a document with one
// bad slide refuses to compile rather than silently dropping content.
func Compile(source string) (*deck.PresentationDocument, error) {
	src := strings.ReplaceAll(source, "\r\n", "\n")

	cfg, body, fmLines, err := readFrontmatter(src)
	if err != nil {
		return nil, err
	}

	segments := splitSlides(body)
	if len(segments) == 0 {
		return nil, &Error{Kind: ErrEmptyPresentation, Detail: "source contains no slide content"}
	}

	doc := &deck.PresentationDocument{
		Config: cfg,
		Slides: make([]*deck.SlideConfig, 0, len(segments)),
	}

	for i, seg := range segments {
		slide, err := compileSegment(seg, i+1, fmLines)
		if err != nil {
			return nil, err
		}
		doc.Slides = append(doc.Slides, slide)
	}

	if err := resolveVariables(doc); err != nil {
		return nil, err
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// compileSegment builds one slide from its raw segment. slideNo is 1-based;
// fmLines is the number of source lines the frontmatter consumed, so error
// lines refer to the original document.
func compileSegment(seg segment, slideNo, fmLines int) (*deck.SlideConfig, error) {
	slide := &deck.SlideConfig{Type: deck.SlideContent}

	baseLine := fmLines + seg.line
	dirs, body := scanDirectives(seg.text, baseLine)
	typeSet := bindDirectives(slide, dirs)

	elements, err := resolveBlocks(body, slideNo, baseLine)
	if err != nil {
		return nil, err
	}
	slide.Elements = elements

	if !typeSet {
		slide.Type = inferSlideType(body, elements)
	}
	return slide, nil
}

// inferSlideType guesses the slide type from content when no slide directive
// is present. The first fenced or structured element decides; before that,
// short heading-led segments become title or section slides.
func inferSlideType(body string, elements deck.ElementList) deck.SlideType {
	lines := nonEmptyLines(body)

	if len(lines) > 0 && len(lines) <= 3 && strings.HasPrefix(lines[0], "# ") {
		return deck.SlideTitle
	}
	if len(lines) > 0 && len(lines) <= 2 && strings.HasPrefix(lines[0], "## ") {
		return deck.SlideSection
	}

	for _, el := range elements {
		switch el.(type) {
		case *deck.Chart:
			return deck.SlideChart
		case *deck.Table:
			return deck.SlideTable
		case *deck.Timeline:
			return deck.SlideTimeline
		case *deck.TeamRoster:
			return deck.SlideTeam
		case *deck.CodeBlock, *deck.Mermaid:
			return deck.SlideCode
		case *deck.TwoColumn:
			return deck.SlideTwoColumn
		case *deck.Quote:
			return deck.SlideQuote
		}
	}

	if imagesOnly(elements) {
		return deck.SlideImage
	}
	return deck.SlideContent
}

func nonEmptyLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func imagesOnly(elements deck.ElementList) bool {
	sawImage := false
	for _, el := range elements {
		switch el.(type) {
		case *deck.Image:
			sawImage = true
		case *deck.Heading:
			// A caption heading does not change an image slide.
		default:
			return false
		}
	}
	return sawImage
}

// validate runs whole-document checks in deterministic order: slides in
// source order, elements in resolved order.
func validate(doc *deck.PresentationDocument) error {
	for i, slide := range doc.Slides {
		if err := validateElements(slide.Elements, i+1); err != nil {
			return err
		}
	}
	return nil
}

func validateElements(elements deck.ElementList, slideNo int) error {
	for _, el := range elements {
		switch e := el.(type) {
		case *deck.Chart:
			for _, s := range e.Series {
				if len(s.Values) != len(e.Categories) {
					return &Error{
						Kind:  ErrChartSeriesLengthMismatch,
						Slide: slideNo,
						Key:   s.Name,
						Detail: fmt.Sprintf("series %q has %d values for %d categories",
							s.Name, len(s.Values), len(e.Categories)),
					}
				}
			}
		case *deck.Image:
			if e.Source == "" {
				return &Error{
					Kind:   ErrMissingImageSource,
					Slide:  slideNo,
					Detail: "image reference has an empty source",
				}
			}
		case *deck.TwoColumn:
			if err := validateElements(e.Left, slideNo); err != nil {
				return err
			}
			if err := validateElements(e.Right, slideNo); err != nil {
				return err
			}
		case *deck.Box:
			if err := validateElements(e.Children, slideNo); err != nil {
				return err
			}
		}
	}
	return nil
}

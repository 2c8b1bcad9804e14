package compiler

import (
	"fmt"
	"regexp"

	"github.com/deckforge/deckforge/internal/deck"
)

var variablePattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// resolveVariables substitutes {{name}} references across every element text
// field and the config footer. It runs after structural parsing, so
// substitution can never corrupt grammar delimiters, and it is single-pass: a
// substituted value containing {{...}} is not expanded again.
func resolveVariables(doc *deck.PresentationDocument) error {
	r := varResolver{vars: &doc.Config.Variables}

	footer, err := r.expand(doc.Config.Footer, "footer", 0)
	if err != nil {
		return err
	}
	doc.Config.Footer = footer

	for i, slide := range doc.Slides {
		if err := r.expandElements(slide.Elements, i+1); err != nil {
			return err
		}
	}
	return nil
}

type varResolver struct {
	vars *deck.Variables
}

// expand replaces every reference in text, failing on the first undefined
// name with its location.
func (r *varResolver) expand(text, location string, slideNo int) (string, error) {
	var undefined string
	out := variablePattern.ReplaceAllStringFunc(text, func(m string) string {
		name := variablePattern.FindStringSubmatch(m)[1]
		val, ok := r.vars.Get(name)
		if !ok {
			if undefined == "" {
				undefined = name
			}
			return m
		}
		return val
	})
	if undefined != "" {
		return "", &Error{
			Kind:   ErrUndefinedVariable,
			Slide:  slideNo,
			Key:    undefined,
			Detail: fmt.Sprintf("{{%s}} in %s is not defined in frontmatter variables", undefined, location),
		}
	}
	return out, nil
}

func (r *varResolver) expandElements(elements deck.ElementList, slideNo int) error {
	for idx, el := range elements {
		loc := fmt.Sprintf("element %d (%s)", idx+1, el.Kind())
		if err := r.expandElement(el, loc, slideNo); err != nil {
			return err
		}
	}
	return nil
}

func (r *varResolver) expandElement(el deck.ContentElement, loc string, slideNo int) error {
	set := func(target *string) error {
		out, err := r.expand(*target, loc, slideNo)
		if err != nil {
			return err
		}
		*target = out
		return nil
	}

	switch e := el.(type) {
	case *deck.Heading:
		return set(&e.Text)
	case *deck.Paragraph:
		for i := range e.Runs {
			if err := set(&e.Runs[i].Text); err != nil {
				return err
			}
		}
	case *deck.BulletList:
		for i := range e.Items {
			if err := set(&e.Items[i].Text); err != nil {
				return err
			}
		}
	case *deck.Image:
		if err := set(&e.Source); err != nil {
			return err
		}
		return set(&e.Alt)
	case *deck.Chart:
		for i := range e.Categories {
			if err := set(&e.Categories[i]); err != nil {
				return err
			}
		}
		for i := range e.Series {
			if err := set(&e.Series[i].Name); err != nil {
				return err
			}
		}
	case *deck.Table:
		for i := range e.Headers {
			if err := set(&e.Headers[i]); err != nil {
				return err
			}
		}
		for _, row := range e.Rows {
			for i := range row {
				if err := set(&row[i]); err != nil {
					return err
				}
			}
		}
	case *deck.CodeBlock:
		return set(&e.Text)
	case *deck.Quote:
		if err := set(&e.Text); err != nil {
			return err
		}
		return set(&e.Attribution)
	case *deck.Timeline:
		for i := range e.Events {
			if err := set(&e.Events[i].Date); err != nil {
				return err
			}
			if err := set(&e.Events[i].Title); err != nil {
				return err
			}
			if err := set(&e.Events[i].Description); err != nil {
				return err
			}
		}
	case *deck.TeamRoster:
		for i := range e.Members {
			m := &e.Members[i]
			for _, f := range []*string{&m.Name, &m.Role, &m.Photo, &m.Email, &m.Bio} {
				if err := set(f); err != nil {
					return err
				}
			}
		}
	case *deck.TwoColumn:
		if err := r.expandElements(e.Left, slideNo); err != nil {
			return err
		}
		return r.expandElements(e.Right, slideNo)
	case *deck.Box:
		return r.expandElements(e.Children, slideNo)
	case *deck.Mermaid:
		return set(&e.Source)
	case *deck.MathBlock:
		return set(&e.TeX)
	}
	return nil
}

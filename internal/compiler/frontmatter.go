package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deckforge/deckforge/internal/deck"
)

// frontmatter mirrors the recognized keys of the leading metadata block.
// Unknown keys are tolerated and ignored.
type frontmatter struct {
	Title        string    `yaml:"title"`
	Author       string    `yaml:"author"`
	Company      string    `yaml:"company"`
	Theme        string    `yaml:"theme"`
	AspectRatio  string    `yaml:"aspect_ratio"`
	Footer       string    `yaml:"footer"`
	SlideNumbers *bool     `yaml:"slide_numbers"`
	Date         bool      `yaml:"date"`
	Logo         string    `yaml:"logo"`
	Colors       yaml.Node `yaml:"colors"`
	Font         string    `yaml:"font"`
	Variables    yaml.Node `yaml:"variables"`
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// readFrontmatter detects and decodes the optional leading metadata block.
// It returns the decoded config, the remaining body text, and the number of
// source lines the block consumed (for error line accounting).
func readFrontmatter(src string) (deck.PresentationConfig, string, int, error) {
	cfg := deck.DefaultPresentationConfig()

	lines := strings.Split(src, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return cfg, src, 0, nil
	}

	// The block is only a frontmatter block if it closes; a lone --- at the
	// top of the document is a slide separator.
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return cfg, src, 0, nil
	}

	block := strings.Join(lines[1:end], "\n")
	rest := strings.Join(lines[end+1:], "\n")
	consumed := end + 1

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return cfg, "", 0, &Error{Kind: ErrMalformedFrontmatter, Detail: err.Error()}
	}

	if fm.Title != "" {
		cfg.Title = fm.Title
	}
	cfg.Author = fm.Author
	cfg.Company = fm.Company
	if fm.Theme != "" {
		cfg.Theme = fm.Theme
	}
	if fm.AspectRatio != "" {
		switch deck.AspectRatio(fm.AspectRatio) {
		case deck.Aspect16x9, deck.Aspect4x3:
			cfg.AspectRatio = deck.AspectRatio(fm.AspectRatio)
		default:
			return cfg, "", 0, &Error{
				Kind:   ErrMalformedFrontmatter,
				Key:    "aspect_ratio",
				Detail: fmt.Sprintf("unsupported aspect ratio %q (want 16:9 or 4:3)", fm.AspectRatio),
			}
		}
	}
	cfg.Footer = fm.Footer
	if fm.SlideNumbers != nil {
		cfg.SlideNumbers = *fm.SlideNumbers
	}
	cfg.Date = fm.Date
	cfg.Logo = fm.Logo
	cfg.FontFamily = fm.Font

	colors, err := decodeColors(&fm.Colors)
	if err != nil {
		return cfg, "", 0, err
	}
	cfg.Colors = colors

	vars, err := decodeVariables(&fm.Variables)
	if err != nil {
		return cfg, "", 0, err
	}
	cfg.Variables = vars

	return cfg, rest, consumed, nil
}

// decodeColors validates every provided color as a 6-hex-digit value with a
// leading #, then maps the semantic roles onto the scheme. Roles outside the
// known five are validated but dropped.
func decodeColors(node *yaml.Node) (deck.ColorScheme, error) {
	var scheme deck.ColorScheme
	if node.IsZero() {
		return scheme, nil
	}
	if node.Kind != yaml.MappingNode {
		return scheme, &Error{Kind: ErrMalformedFrontmatter, Key: "colors", Detail: "expected a mapping of role to color"}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1].Value
		if !hexColorPattern.MatchString(val) {
			return scheme, &Error{
				Kind: ErrInvalidColorValue,
				Key:  key,
				// Node lines are relative to the block, which opens on line 1
				// of the document.
				Line: node.Content[i+1].Line + 1,
				Detail: fmt.Sprintf("%q is not a #RRGGBB color", val),
			}
		}
		switch key {
		case "primary":
			scheme.Primary = val
		case "secondary":
			scheme.Secondary = val
		case "accent":
			scheme.Accent = val
		case "background":
			scheme.Background = val
		case "text":
			scheme.Text = val
		}
	}
	return scheme, nil
}

// decodeVariables walks the variables mapping node directly so that insertion
// order is preserved and scalar values keep their textual form.
func decodeVariables(node *yaml.Node) (deck.Variables, error) {
	var vars deck.Variables
	if node.IsZero() {
		return vars, nil
	}
	if node.Kind != yaml.MappingNode {
		return vars, &Error{Kind: ErrMalformedFrontmatter, Key: "variables", Detail: "expected a mapping of name to scalar"}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		val := node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return vars, &Error{
				Kind:   ErrMalformedFrontmatter,
				Key:    "variables." + key.Value,
				Line:   val.Line + 1,
				Detail: "variable values must be scalars",
			}
		}
		vars.Set(key.Value, val.Value)
	}
	return vars, nil
}

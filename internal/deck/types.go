// Package deck defines the presentation-agnostic document model produced by
// the compiler: a presentation config plus an ordered list of slide configs,
// each holding typed content elements.
package deck

// AspectRatio is the slide aspect ratio.
type AspectRatio string

const (
	Aspect16x9 AspectRatio = "16:9"
	Aspect4x3  AspectRatio = "4:3"
)

// ColorScheme maps semantic color roles to #RRGGBB values.
type ColorScheme struct {
	Primary    string `json:"primary,omitempty" yaml:"primary"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary"`
	Accent     string `json:"accent,omitempty" yaml:"accent"`
	Background string `json:"background,omitempty" yaml:"background"`
	Text       string `json:"text,omitempty" yaml:"text"`
}

// PresentationConfig is the document-level configuration decoded from
// frontmatter. It is immutable once the document is assembled.
type PresentationConfig struct {
	Title        string      `json:"title"`
	Author       string      `json:"author,omitempty"`
	Company      string      `json:"company,omitempty"`
	Theme        string      `json:"theme"`
	AspectRatio  AspectRatio `json:"aspect_ratio"`
	Footer       string      `json:"footer,omitempty"`
	SlideNumbers bool        `json:"slide_numbers"`
	Date         bool        `json:"date"`
	Logo         string      `json:"logo,omitempty"`
	Colors       ColorScheme `json:"colors"`
	FontFamily   string      `json:"font,omitempty"`
	Variables    Variables   `json:"variables"`
}

// DefaultPresentationConfig returns the config used when no frontmatter block
// is present.
func DefaultPresentationConfig() PresentationConfig {
	return PresentationConfig{
		Title:        "Presentation",
		Theme:        "default",
		AspectRatio:  Aspect16x9,
		SlideNumbers: true,
	}
}

// SlideType identifies the layout family a slide belongs to.
type SlideType string

const (
	SlideTitle     SlideType = "title"
	SlideSection   SlideType = "section"
	SlideContent   SlideType = "content"
	SlideTwoColumn SlideType = "two_column"
	SlideChart     SlideType = "chart"
	SlideTable     SlideType = "table"
	SlideCode      SlideType = "code"
	SlideQuote     SlideType = "quote"
	SlideTimeline  SlideType = "timeline"
	SlideImage     SlideType = "image"
	SlideTeam      SlideType = "team"
)

// ParseSlideType maps a directive value to a SlideType. Unknown values fall
// back to content, mirroring the permissive handling of authored input.
func ParseSlideType(s string) (SlideType, bool) {
	switch SlideType(s) {
	case SlideTitle, SlideSection, SlideContent, SlideTwoColumn, SlideChart,
		SlideTable, SlideCode, SlideQuote, SlideTimeline, SlideImage, SlideTeam:
		return SlideType(s), true
	}
	return SlideContent, false
}

// Transition describes a slide transition effect.
type Transition struct {
	Kind     string `json:"kind"`
	Duration int    `json:"duration,omitempty"`
}

// Animation describes a content animation effect.
type Animation struct {
	Kind  string `json:"kind"`
	Delay int    `json:"delay,omitempty"`
}

// ExtraDirective is an unrecognized directive preserved verbatim for the
// rendering collaborator to interpret.
type ExtraDirective struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SlideConfig is one slide: its type, ordered content elements, and the
// slide-scoped directives bound while its segment was assembled.
type SlideConfig struct {
	Type          SlideType        `json:"type"`
	Elements      ElementList      `json:"elements"`
	Background    string           `json:"background,omitempty"`
	BgImage       string           `json:"bg_image,omitempty"`
	BgVideo       string           `json:"bg_video,omitempty"`
	Transition    *Transition      `json:"transition,omitempty"`
	Animation     *Animation       `json:"animation,omitempty"`
	Layout        string           `json:"layout,omitempty"`
	ThemeOverride string           `json:"theme,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Speaker       string           `json:"speaker,omitempty"`
	TimerSeconds  int              `json:"timer_seconds,omitempty"`
	Poll          string           `json:"poll,omitempty"`
	QR            string           `json:"qr,omitempty"`
	Includes      []string         `json:"includes,omitempty"`
	Extra         []ExtraDirective `json:"extra,omitempty"`
}

// PresentationDocument is the compiler's output: the config plus slides in
// source order.
type PresentationDocument struct {
	Config PresentationConfig `json:"config"`
	Slides []*SlideConfig     `json:"slides"`
}

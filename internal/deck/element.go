package deck

import "encoding/json"

// ElementKind discriminates the ContentElement variants.
type ElementKind string

const (
	KindHeading    ElementKind = "heading"
	KindParagraph  ElementKind = "paragraph"
	KindBulletList ElementKind = "bullet_list"
	KindImage      ElementKind = "image"
	KindChart      ElementKind = "chart"
	KindTable      ElementKind = "table"
	KindCodeBlock  ElementKind = "code"
	KindQuote      ElementKind = "quote"
	KindTimeline   ElementKind = "timeline"
	KindTeamRoster ElementKind = "team"
	KindTwoColumn  ElementKind = "two_column"
	KindBox        ElementKind = "box"
	KindMermaid    ElementKind = "mermaid"
	KindMathBlock  ElementKind = "math"
)

// ContentElement is one typed unit of slide content. TwoColumn and Box are
// the only recursive containers; all other variants are leaves.
type ContentElement interface {
	Kind() ElementKind
}

// ElementList is an ordered sequence of content elements. It marshals each
// element as a JSON object carrying a "kind" discriminator so consumers can
// tell the variants apart.
type ElementList []ContentElement

// MarshalJSON implements json.Marshaler.
func (l ElementList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l))
	for _, el := range l {
		raw, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		kind, err := json.Marshal(el.Kind())
		if err != nil {
			return nil, err
		}
		obj["kind"] = kind
		tagged, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, tagged)
	}
	return json.Marshal(out)
}

// InlineStyle carries the cosmetic hints parsed from inline style spans.
type InlineStyle struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Align string `json:"align,omitempty"`
	Font  string `json:"font,omitempty"`
}

// IsZero reports whether no style attribute is set.
func (s InlineStyle) IsZero() bool {
	return s == InlineStyle{}
}

// TextRun is a span of paragraph text with one style applied.
type TextRun struct {
	Text  string      `json:"text"`
	Style InlineStyle `json:"style,omitzero"`
}

// Heading is a Markdown heading, levels 1-6.
type Heading struct {
	Level int         `json:"level"`
	Text  string      `json:"text"`
	Style InlineStyle `json:"style,omitzero"`
}

func (*Heading) Kind() ElementKind { return KindHeading }

// Paragraph is a run of plain text, split into styled runs.
type Paragraph struct {
	Runs []TextRun `json:"runs"`
}

func (*Paragraph) Kind() ElementKind { return KindParagraph }

// Text returns the paragraph's visible text with styles dropped.
func (p *Paragraph) Text() string {
	var out string
	for _, r := range p.Runs {
		out += r.Text
	}
	return out
}

// BulletItem is one entry of a bullet list. Level is the nesting depth,
// starting at zero.
type BulletItem struct {
	Text  string      `json:"text"`
	Level int         `json:"level"`
	Style InlineStyle `json:"style,omitzero"`
}

// BulletList is a contiguous group of bullet items.
type BulletList struct {
	Items []BulletItem `json:"items"`
}

func (*BulletList) Kind() ElementKind { return KindBulletList }

// Image is a Markdown image reference with optional layout attributes.
// Unrecognized attribute keys are preserved as free-form position hints.
type Image struct {
	Source   string            `json:"source"`
	Alt      string            `json:"alt,omitempty"`
	Width    string            `json:"width,omitempty"`
	Height   string            `json:"height,omitempty"`
	Position string            `json:"position,omitempty"`
	Hints    map[string]string `json:"hints,omitempty"`
}

func (*Image) Kind() ElementKind { return KindImage }

// ChartSeries is one named series of a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart is a chart specification from a fenced chart block. Every series must
// have exactly one value per category.
type Chart struct {
	ChartType  string         `json:"chart_type"`
	Categories []string       `json:"categories"`
	Series     []ChartSeries  `json:"series"`
	Options    map[string]any `json:"options,omitempty"`
}

func (*Chart) Kind() ElementKind { return KindChart }

// Table is a table from a fenced table block or a Markdown pipe table.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Style   string     `json:"style"`
}

func (*Table) Kind() ElementKind { return KindTable }

// CodeBlock is a fenced code listing.
type CodeBlock struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

func (*CodeBlock) Kind() ElementKind { return KindCodeBlock }

// Quote is a blockquote with optional attribution.
type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution,omitempty"`
}

func (*Quote) Kind() ElementKind { return KindQuote }

// TimelineEvent is one event on a timeline.
type TimelineEvent struct {
	Date        string `json:"date" yaml:"date"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Timeline is a timeline from a fenced timeline block.
type Timeline struct {
	Style  string          `json:"style"`
	Events []TimelineEvent `json:"events"`
}

func (*Timeline) Kind() ElementKind { return KindTimeline }

// TeamMember is one entry of a team roster.
type TeamMember struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role,omitempty" yaml:"role"`
	Photo string `json:"photo,omitempty" yaml:"photo"`
	Email string `json:"email,omitempty" yaml:"email"`
	Bio   string `json:"bio,omitempty" yaml:"bio"`
}

// TeamRoster is a team slide body from a fenced team block.
type TeamRoster struct {
	Layout  string       `json:"layout"`
	Members []TeamMember `json:"members"`
}

func (*TeamRoster) Kind() ElementKind { return KindTeamRoster }

// TwoColumn splits content into left and right columns, each side its own
// ordered element list.
type TwoColumn struct {
	Left  ElementList `json:"left"`
	Right ElementList `json:"right"`
}

func (*TwoColumn) Kind() ElementKind { return KindTwoColumn }

// Box is a boxed callout wrapping nested content.
type Box struct {
	BoxKind  string      `json:"box_kind"`
	Children ElementList `json:"children"`
}

func (*Box) Kind() ElementKind { return KindBox }

// Mermaid is a fenced mermaid diagram, passed through to the renderer.
type Mermaid struct {
	Source string `json:"source"`
}

func (*Mermaid) Kind() ElementKind { return KindMermaid }

// MathBlock is a $$...$$ display-math block.
type MathBlock struct {
	TeX string `json:"tex"`
}

func (*MathBlock) Kind() ElementKind { return KindMathBlock }

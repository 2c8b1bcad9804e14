package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const deckforgeScheme = "deckforge://"

// getAllResources returns the list of static resource metadata.
func getAllResources() []ResourceListItem {
	return []ResourceListItem{
		{
			URI:         "deckforge://docs/syntax",
			Name:        "Slide Markdown Syntax",
			Description: "The extended-Markdown dialect the compiler accepts",
			MimeType:    "text/markdown",
		},
		{
			URI:         "deckforge://docs/errors",
			Name:        "Compile Error Reference",
			Description: "Every compile error kind and how to fix it",
			MimeType:    "text/plain",
		},
		{
			URI:         "deckforge://docs/directives",
			Name:        "Directive Reference",
			Description: "Per-slide <!-- key: value --> directives",
			MimeType:    "text/plain",
		},
	}
}

// readResource returns content for a known URI. For unknown URI returns error with ResourceNotFound.
func readResource(uri string) ([]ResourceContent, error) {
	if !strings.HasPrefix(uri, deckforgeScheme) {
		return nil, resourceNotFoundError(uri)
	}
	path := strings.TrimPrefix(uri, deckforgeScheme)
	path = strings.Trim(path, "/")
	// Disallow path traversal
	if strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		return nil, resourceNotFoundError(uri)
	}
	switch path {
	case "docs/syntax":
		return []ResourceContent{{URI: uri, MimeType: "text/markdown", Text: staticSyntax}}, nil
	case "docs/errors":
		return []ResourceContent{{URI: uri, MimeType: "text/plain", Text: staticErrors}}, nil
	case "docs/directives":
		return []ResourceContent{{URI: uri, MimeType: "text/plain", Text: staticDirectives}}, nil
	default:
		return nil, resourceNotFoundError(uri)
	}
}

func resourceNotFoundError(uri string) error {
	return &ResourceNotFoundError{URI: uri}
}

// ResourceNotFoundError is returned for unknown resource URIs.
type ResourceNotFoundError struct {
	URI string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URI)
}

// handleResourcesList returns the list of static resources
func (s *Server) handleResourcesList(_ *Request, id any) *Response {
	return successResponse(id, map[string]any{
		"resources": getAllResources(),
	})
}

// handleResourcesRead returns the content of one resource
func (s *Server) handleResourcesRead(req *Request, id any) *Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(id, InvalidParams, "Invalid parameters: "+err.Error())
	}
	if params.URI == "" {
		return errorResponse(id, InvalidParams, "uri is required")
	}

	contents, err := readResource(params.URI)
	if err != nil {
		var nf *ResourceNotFoundError
		if errors.As(err, &nf) {
			return errorResponse(id, ResourceNotFound, err.Error())
		}
		return errorResponse(id, InternalError, err.Error())
	}

	return successResponse(id, map[string]any{
		"contents": contents,
	})
}

// Static doc content.
//
//nolint:lll // long single-line content strings for static docs
const staticSyntax = `# Slide Markdown

Frontmatter: an optional YAML block fenced by --- lines at the very top. Keys: title, subtitle, author, date, theme, aspect_ratio (16:9 or 4:3), footer, logo, slide_numbers, colors (primary/secondary/accent/background/text as #rrggbb), variables (name: value pairs usable as {{name}} anywhere).

Slides: separated by lines of three or more hyphens. Each slide holds Markdown content plus optional directive comments.

Content: # headings, - bullets (indent two spaces per level), > quotes with an optional attribution line starting with -- after the quote, images as ![alt](url){width=50% position=center}, pipe tables, and $...$ math.

Inline spans: {color: #ff0000}, {size: large}, {align: center}, {font: mono} after the text they style. Variables: {{name}}.

Layout: ::: columns ... ||| ... ::: for two columns, ::: box info|warning|success ... ::: for callouts.

Data blocks, fenced with a tag and a YAML body:
- chart: type (column/bar/line/pie/area/scatter/doughnut), categories, series ([{name, values}]), options
- table: headers, rows, style
- timeline: events ([{date, title, description}]), style
- team: members ([{name, role, photo, email, bio}]), layout
- mermaid: raw diagram source
- any other tag: a plain code block in that language

Includes: <!-- include: path.md --> splices another file in before compiling.`

//nolint:lll // static doc string for the error reference
const staticErrors = `malformed_frontmatter: the YAML block at the top failed to parse, or a key has an unsupported value (key names the field). invalid_color_value: a colors entry is not a #rrggbb hex string. empty_presentation: no slide has any content. malformed_block: a fenced chart/table/timeline/team block is unterminated or its YAML body is missing a required field (key names the block kind). malformed_columns: a ::: columns block has no ||| divider or no closing :::. undefined_variable: a {{name}} has no binding in frontmatter variables (key names the variable). chart_series_length_mismatch: a series values list is shorter or longer than categories (key names the series). missing_image_source: an image has an empty url. include_not_found / include_cycle / include_too_deep: an include target is missing, includes itself transitively, or nests past the depth limit. Each error carries slide and line numbers where known.`

//nolint:lll // static doc string for the directive reference
const staticDirectives = `slide: force the slide type (title, section, content, two_column, chart, table, code, quote, timeline, image, team); unknown values fall back to content. background: color or image for this slide. bg-image / bg-video: media background. transition / animate: effect name with an optional trailing duration in ms (e.g. fade 500). layout: named layout override. theme: per-slide theme override. notes / speaker: presenter notes, kept out of rendered content. timer: seconds for a timed slide. poll: poll question. qr: URL to render as a QR code. include: splice another file (resolved before compiling). Repeated directives keep the last value. Unknown keys are preserved verbatim for downstream renderers.`

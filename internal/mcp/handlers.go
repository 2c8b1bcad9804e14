package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/deckforge/deckforge/internal/compiler"
	"github.com/deckforge/deckforge/internal/include"
	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/render"
)

// Compilation tool handlers

func (s *Server) handleCreatePresentation(id any, arguments json.RawMessage) *Response {
	var args struct {
		Markdown       string `json:"markdown"`
		ExpandIncludes bool   `json:"expand_includes"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.Markdown == "" {
		return errorResponse(id, InvalidParams, "markdown is required")
	}

	source := args.Markdown
	if args.ExpandIncludes {
		expanded, err := s.expander.Expand(source)
		if err != nil {
			return toolErrorResult(id, errorPayloadText(err))
		}
		source = expanded
	}

	doc, err := compiler.Compile(source)
	if err != nil {
		return toolErrorResult(id, errorPayloadText(err))
	}

	presentationID := s.store.Put(doc)
	s.log.Info("presentation created",
		logger.String("id", presentationID),
		logger.Int("slides", len(doc.Slides)))

	return toolJSONResult(id, map[string]any{
		"presentation_id": presentationID,
		"title":           doc.Config.Title,
		"slide_count":     len(doc.Slides),
	})
}

func (s *Server) handleCreatePresentationFromFile(id any, arguments json.RawMessage) *Response {
	var args struct {
		Path string `json:"path"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.Path == "" {
		return errorResponse(id, InvalidParams, "path is required")
	}

	// Loading the file is itself an include expansion of a single directive,
	// which gets cycle and depth checks for free.
	source, err := s.expander.Expand(fmt.Sprintf("<!-- include: %s -->", args.Path))
	if err != nil {
		return toolErrorResult(id, errorPayloadText(err))
	}

	doc, err := compiler.Compile(source)
	if err != nil {
		return toolErrorResult(id, errorPayloadText(err))
	}

	presentationID := s.store.Put(doc)
	s.log.Info("presentation created from file",
		logger.String("id", presentationID),
		logger.String("path", args.Path),
		logger.Int("slides", len(doc.Slides)))

	return toolJSONResult(id, map[string]any{
		"presentation_id": presentationID,
		"title":           doc.Config.Title,
		"slide_count":     len(doc.Slides),
		"source_path":     args.Path,
	})
}

func (s *Server) handleValidateMarkdown(id any, arguments json.RawMessage) *Response {
	var args struct {
		Markdown string `json:"markdown"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.Markdown == "" {
		return errorResponse(id, InvalidParams, "markdown is required")
	}

	doc, err := compiler.Compile(args.Markdown)
	if err != nil {
		return toolJSONResult(id, map[string]any{
			"valid": false,
			"error": errorPayload(err),
		})
	}

	return toolJSONResult(id, map[string]any{
		"valid":       true,
		"title":       doc.Config.Title,
		"slide_count": len(doc.Slides),
	})
}

func (s *Server) handleListSlideTypes(id any, _ json.RawMessage) *Response {
	types := []map[string]string{
		{"type": "title", "inferred_when": "at most 3 non-empty lines led by a level-1 heading"},
		{"type": "section", "inferred_when": "at most 2 non-empty lines led by a level-2 heading"},
		{"type": "chart", "inferred_when": "first typed element is a chart block"},
		{"type": "table", "inferred_when": "first typed element is a table block or pipe table"},
		{"type": "timeline", "inferred_when": "first typed element is a timeline block"},
		{"type": "team", "inferred_when": "first typed element is a team block"},
		{"type": "code", "inferred_when": "first typed element is a code fence or mermaid diagram"},
		{"type": "two_column", "inferred_when": "first typed element is a columns container"},
		{"type": "quote", "inferred_when": "first typed element is a blockquote"},
		{"type": "image", "inferred_when": "slide holds only images, headings aside"},
		{"type": "content", "inferred_when": "no other rule matched; also the fallback for unknown slide directive values"},
	}

	return toolJSONResult(id, map[string]any{
		"slide_types": types,
		"note":        "an explicit <!-- slide: type --> directive always wins over inference",
	})
}

// Stored presentation tool handlers

func (s *Server) handleGetPresentation(id any, arguments json.RawMessage) *Response {
	stored, resp := s.lookupPresentation(id, arguments)
	if resp != nil {
		return resp
	}

	return toolJSONResult(id, map[string]any{
		"presentation_id": stored.ID,
		"created_at":      stored.CreatedAt,
		"config":          stored.Doc.Config,
		"slides":          stored.Doc.Slides,
	})
}

func (s *Server) handleGetPresentationOutline(id any, arguments json.RawMessage) *Response {
	stored, resp := s.lookupPresentation(id, arguments)
	if resp != nil {
		return resp
	}

	outline, err := render.Document(s.renderer, stored.Doc)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to render outline: %v", err))
	}

	return toolTextResult(id, outline)
}

func (s *Server) handleGetSlide(id any, arguments json.RawMessage) *Response {
	var args struct {
		PresentationID string `json:"presentation_id"`
		Index          int    `json:"index"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.PresentationID == "" {
		return errorResponse(id, InvalidParams, "presentation_id is required")
	}

	stored, ok := s.store.Get(args.PresentationID)
	if !ok {
		return toolErrorResult(id, "No presentation with id "+args.PresentationID)
	}

	if args.Index < 1 || args.Index > len(stored.Doc.Slides) {
		return toolErrorResult(id, fmt.Sprintf("Slide index %d out of range, presentation has %d slides", args.Index, len(stored.Doc.Slides)))
	}

	return toolJSONResult(id, map[string]any{
		"presentation_id": stored.ID,
		"index":           args.Index,
		"slide":           stored.Doc.Slides[args.Index-1],
	})
}

func (s *Server) handleListPresentations(id any, _ json.RawMessage) *Response {
	items := []map[string]any{}
	for _, stored := range s.store.List() {
		items = append(items, map[string]any{
			"presentation_id": stored.ID,
			"title":           stored.Doc.Config.Title,
			"slide_count":     len(stored.Doc.Slides),
			"created_at":      stored.CreatedAt,
		})
	}

	return toolJSONResult(id, map[string]any{
		"presentations": items,
		"count":         len(items),
	})
}

func (s *Server) handleDeletePresentation(id any, arguments json.RawMessage) *Response {
	var args struct {
		PresentationID string `json:"presentation_id"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.PresentationID == "" {
		return errorResponse(id, InvalidParams, "presentation_id is required")
	}

	if !s.store.Delete(args.PresentationID) {
		return toolErrorResult(id, "No presentation with id "+args.PresentationID)
	}

	s.log.Info("presentation deleted", logger.String("id", args.PresentationID))

	return toolTextResult(id, "Deleted presentation "+args.PresentationID)
}

// lookupPresentation decodes a presentation_id argument and fetches the
// stored document. The second return value is non-nil when the caller
// should return it as-is.
func (s *Server) lookupPresentation(id any, arguments json.RawMessage) (*StoredPresentation, *Response) {
	var args struct {
		PresentationID string `json:"presentation_id"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return nil, errorResponse(id, InvalidParams, "Invalid arguments: "+err.Error())
	}

	if args.PresentationID == "" {
		return nil, errorResponse(id, InvalidParams, "presentation_id is required")
	}

	stored, ok := s.store.Get(args.PresentationID)
	if !ok {
		return nil, toolErrorResult(id, "No presentation with id "+args.PresentationID)
	}

	return stored, nil
}

// errorPayload shapes a compile or include failure so callers can locate
// and fix the offending source instead of parsing a message string.
func errorPayload(err error) map[string]any {
	if ce, ok := compiler.AsError(err); ok {
		payload := map[string]any{
			"kind":    string(ce.Kind),
			"message": ce.Error(),
		}
		if ce.Slide > 0 {
			payload["slide"] = ce.Slide
		}
		if ce.Line > 0 {
			payload["line"] = ce.Line
		}
		if ce.Key != "" {
			payload["key"] = ce.Key
		}
		if ce.Detail != "" {
			payload["detail"] = ce.Detail
		}
		return payload
	}

	if ie, ok := include.AsError(err); ok {
		payload := map[string]any{
			"kind":    string(ie.Kind),
			"message": ie.Error(),
			"path":    ie.Path,
		}
		if len(ie.Chain) > 0 {
			payload["chain"] = ie.Chain
		}
		return payload
	}

	return map[string]any{
		"kind":    "internal",
		"message": err.Error(),
	}
}

func errorPayloadText(err error) string {
	data, jerr := json.MarshalIndent(errorPayload(err), "", "  ")
	if jerr != nil {
		return err.Error()
	}
	return string(data)
}

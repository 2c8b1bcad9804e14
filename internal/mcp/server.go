package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/deckforge/deckforge/internal/deck"
	"github.com/deckforge/deckforge/internal/include"
	"github.com/deckforge/deckforge/internal/logger"
)

// Server handles MCP protocol requests
type Server struct {
	store    *Store
	expander *include.Expander
	renderer deck.Renderer
	log      logger.Logger
	name     string
	version  string
}

// NewServer creates a new MCP server
func NewServer(
	store *Store,
	expander *include.Expander,
	renderer deck.Renderer,
	log logger.Logger,
	name string,
	version string,
) *Server {
	return &Server{
		store:    store,
		expander: expander,
		renderer: renderer,
		log:      log,
		name:     name,
		version:  version,
	}
}

// HandleRequest processes an MCP request and returns a response
// Returns nil for notifications (requests without ID) - they don't require responses
func (s *Server) HandleRequest(req *Request) *Response {
	// For notifications (no ID), we can still process but caller should not send response
	// Use the request ID if present, otherwise nil (caller will handle)
	requestID := req.ID

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req, requestID)
	case "tools/list":
		return s.handleToolsList(req, requestID)
	case "tools/call":
		return s.handleToolsCall(req, requestID)
	case "prompts/list":
		return s.handlePromptsList(req, requestID)
	case "prompts/get":
		return s.handlePromptsGet(req, requestID)
	case "resources/list":
		return s.handleResourcesList(req, requestID)
	case "resources/read":
		return s.handleResourcesRead(req, requestID)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      requestID,
			Result:  json.RawMessage(`"pong"`),
		}
	}

	// Unknown method - only return error if this was a request (has ID)
	// Notifications (no ID) don't require responses
	if requestID == nil {
		return nil
	}

	return errorResponse(requestID, MethodNotFound, "Method not found")
}

// handleInitialize handles the initialize request
func (s *Server) handleInitialize(_ *Request, id any) *Response {
	capabilities := map[string]any{
		"tools":     map[string]any{},
		"prompts":   map[string]any{},
		"resources": map[string]any{},
	}

	serverInfo := map[string]any{
		"name":    s.name,
		"version": s.version,
	}

	result := map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    capabilities,
		"serverInfo":      serverInfo,
	}

	return successResponse(id, result)
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(_ *Request, id any) *Response {
	result := map[string]any{
		"tools": getAllTools(),
	}

	return successResponse(id, result)
}

// handleToolsCall executes a tool call
func (s *Server) handleToolsCall(req *Request, id any) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(id, InvalidParams, "Invalid parameters")
	}

	s.log.Debug("tool call", logger.String("tool", params.Name))

	switch params.Name {
	// Compilation tools
	case "create_presentation":
		return s.handleCreatePresentation(id, params.Arguments)
	case "create_presentation_from_file":
		return s.handleCreatePresentationFromFile(id, params.Arguments)
	case "validate_markdown":
		return s.handleValidateMarkdown(id, params.Arguments)
	case "list_slide_types":
		return s.handleListSlideTypes(id, params.Arguments)

	// Stored presentation tools
	case "get_presentation":
		return s.handleGetPresentation(id, params.Arguments)
	case "get_presentation_outline":
		return s.handleGetPresentationOutline(id, params.Arguments)
	case "get_slide":
		return s.handleGetSlide(id, params.Arguments)
	case "list_presentations":
		return s.handleListPresentations(id, params.Arguments)
	case "delete_presentation":
		return s.handleDeletePresentation(id, params.Arguments)

	default:
		return errorResponse(id, InvalidParams, "Unknown tool: "+params.Name)
	}
}

// errorResponse builds a JSON-RPC error response
func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}

// successResponse marshals result into a JSON-RPC success response
func successResponse(id any, result any) *Response {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  json.RawMessage(resultJSON),
	}
}

// toolTextResult wraps plain text in an MCP tool call result
func toolTextResult(id any, text string) *Response {
	result := map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": text,
			},
		},
		"isError": false,
	}

	return successResponse(id, result)
}

// toolJSONResult marshals a value and wraps it as text content
func toolJSONResult(id any, v any) *Response {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}

	return toolTextResult(id, string(data))
}

// toolErrorResult reports a tool-level failure the caller can act on,
// as opposed to a protocol error
func toolErrorResult(id any, text string) *Response {
	result := map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": text,
			},
		},
		"isError": true,
	}

	return successResponse(id, result)
}
